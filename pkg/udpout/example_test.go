package udpout_test

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/pkg/udpout"
)

// Example_basic demonstrates basic usage of udpout as a library.
func Example_basic() {
	// Create configuration
	cfg := udpout.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = "5140"
	cfg.RetryCount = 3

	f, err := udpout.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create forwarder: %v", err)
	}
	defer f.Close()

	f.Receive(context.Background(), udpout.Event{
		"message": "user signed in",
		"user_id": 42,
	})
}

// Example_templatePort routes each event to the port named in its fields.
func Example_templatePort() {
	cfg := udpout.DefaultConfig()
	cfg.Host = "collector.internal"
	cfg.Port = "%{[route][port]}"
	cfg.Codec = "line"
	cfg.LineFormat = "%{level} %{message}"

	f, err := udpout.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create forwarder: %v", err)
	}
	defer f.Close()

	f.Receive(context.Background(), udpout.Event{
		"level":   "INFO",
		"message": "cache warmed",
		"route":   map[string]any{"port": "5141"},
	})

	// Expose counters next to the application's own handlers.
	http.Handle("/metrics", f.MetricsHandler())
}

// Example_dependencyInjection demonstrates using udpout with uber-go/dig.
func Example_dependencyInjection() {
	// Create a DI container
	container := dig.New()

	// Provide logger
	container.Provide(func() *zap.Logger {
		logger, _ := zap.NewProduction()
		return logger
	})

	// Provide forwarder config
	container.Provide(func() *udpout.Config {
		return &udpout.Config{
			Host: "127.0.0.1",
			Port: "5140",
		}
	})

	// Register the forwarder
	if err := udpout.RegisterWithContainer(container); err != nil {
		log.Fatalf("Failed to register forwarder: %v", err)
	}

	container.Invoke(func(f *udpout.Forwarder) {
		defer f.Close()
		f.Receive(context.Background(), udpout.Event{"message": "hello from dig"})
	})
}
