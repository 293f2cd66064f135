package udpout

import (
	"go.uber.org/dig"
	"go.uber.org/zap"
)

// DIParams holds dependencies needed to create a Forwarder via DI.
type DIParams struct {
	dig.In

	Logger *zap.Logger
	Config *Config `optional:"true"`
}

// ProvideForwarder creates a Forwarder for dependency injection.
// Use this when integrating udpout into an app that uses uber-go/dig.
//
// Example:
//
//	container := dig.New()
//	container.Provide(udpout.ProvideForwarder)
//	container.Invoke(func(f *udpout.Forwarder) {
//	    f.Receive(ctx, udpout.Event{"message": "hello"})
//	})
func ProvideForwarder(params DIParams) (*Forwarder, error) {
	cfg := params.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Use the provided logger without mutating the caller's config.
	withLogger := *cfg
	withLogger.Logger = params.Logger

	return New(&withLogger)
}

// RegisterWithContainer registers the Forwarder with a dig container.
// This is a convenience function that handles the registration for you.
//
// Example:
//
//	container := dig.New()
//	if err := udpout.RegisterWithContainer(container); err != nil {
//	    log.Fatal(err)
//	}
func RegisterWithContainer(container *dig.Container) error {
	return container.Provide(ProvideForwarder)
}
