package pkg

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Config holds the server's runtime configuration.
type Config struct {
	ListenAddress  string
	MetricsAddress string
	LogLevel       string

	// AutoRequeueOnPartnerLeave puts the surviving member of a torn-down
	// room back in the waiting queue. Off by default: the survivor stays
	// idle until it reconnects.
	AutoRequeueOnPartnerLeave bool
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddress:             ":8080",
		MetricsAddress:            ":8081",
		LogLevel:                  "info",
		AutoRequeueOnPartnerLeave: false,
	}
}

// LoadConfig reads server.ini (or the file named by SERVER_CONFIG) and
// falls back to defaults for anything missing, including the whole file.
func LoadConfig() *Config {
	configLocation := "server.ini"
	if os.Getenv("SERVER_CONFIG") != "" {
		configLocation = os.Getenv("SERVER_CONFIG")
	}

	config := DefaultConfig()

	file, err := ini.Load(configLocation)
	if err != nil {
		log.WithField("config", configLocation).WithError(err).Warn("Failed to load configuration file, using defaults.")
		return config
	}

	section := file.Section("server")
	config.ListenAddress = section.Key("listen_address").MustString(config.ListenAddress)
	config.MetricsAddress = section.Key("metrics_address").MustString(config.MetricsAddress)
	config.LogLevel = section.Key("log_level").MustString(config.LogLevel)
	config.AutoRequeueOnPartnerLeave = section.Key("auto_requeue_on_partner_leave").MustBool(false)

	return config
}
