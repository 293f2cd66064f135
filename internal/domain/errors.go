package domain

import "errors"

var (
	// ErrInvalidConfig indicates the forwarder configuration failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrPortResolution indicates a port template did not produce an integer.
	ErrPortResolution = errors.New("port resolution failed")

	// ErrOversize indicates the payload exceeds the maximum datagram size.
	// Retrying cannot fix it.
	ErrOversize = errors.New("message too long")

	// ErrTransientSend indicates a send failure that may succeed on retry.
	ErrTransientSend = errors.New("transient send failure")

	// ErrEncode indicates the codec could not serialize an event.
	ErrEncode = errors.New("encode failed")

	// ErrUnknownCodec indicates the configured codec name is not registered.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrSourceClosed indicates an event source was used after Close.
	ErrSourceClosed = errors.New("event source closed")
)
