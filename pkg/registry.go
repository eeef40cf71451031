package pkg

import (
	"errors"
	"fmt"
)

var ErrDuplicateClient = errors.New("client already registered")

// Registry tracks every currently connected client by id. It is not
// internally locked; the Relay serializes access to it.
type Registry struct {
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

func (r *Registry) Add(c *Client) error {
	if _, ok := r.clients[c.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClient, c.ID)
	}
	r.clients[c.ID] = c
	return nil
}

// Remove deletes the client and reports whether it was registered.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.clients[id]; !ok {
		return false
	}
	delete(r.clients, id)
	return true
}

func (r *Registry) Get(id string) (*Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

func (r *Registry) Count() int {
	return len(r.clients)
}
