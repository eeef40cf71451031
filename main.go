package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/randomchat/signaling-server/pkg"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	config := pkg.LoadConfig()
	if level, err := log.ParseLevel(config.LogLevel); err == nil {
		log.SetLevel(level)
	}

	relay := pkg.NewRelay(config)

	signalingRouter := mux.NewRouter()
	signalingRouter.HandleFunc("/api/v1/health", relay.HealthHandler)
	signalingRouter.HandleFunc("/api/v1/stats", relay.StatsHandler)
	signalingRouter.HandleFunc("/api/v1/socket", relay.SocketHandler)

	signalingServer := &http.Server{
		Addr: config.ListenAddress,
		Handler: promhttp.InstrumentHandlerInFlight(pkg.SignalingInFlightGauge,
			promhttp.InstrumentHandlerCounter(pkg.SignalingRequestsCounter,
				signalingRouter)),
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    config.MetricsAddress,
		Handler: metricsRouter,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("Starting signaling server on ", config.ListenAddress, "...")
	go func() {
		err := signalingServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Signaling server failed: ", err)
		}
	}()

	log.Info("Starting metrics server on ", config.MetricsAddress, "...")
	go func() {
		err := metricsServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Metrics server failed: ", err)
		}
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down signaling server...")
	if err := signalingServer.Shutdown(ctx); err != nil {
		log.Fatal("Signaling server shutdown failed: ", err)
	}

	log.Info("Shutting down metrics server...")
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Fatal("Metrics server shutdown failed: ", err)
	}
}
