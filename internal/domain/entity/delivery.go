package entity

import (
	"errors"

	"github.com/ruudy-sib/udpout/internal/domain"
)

// SendOutcome classifies the result of one send.
type SendOutcome int

const (
	// OutcomeSent means the datagram left the socket.
	OutcomeSent SendOutcome = iota
	// OutcomeRetryableFailure means the send failed but may succeed later.
	OutcomeRetryableFailure
	// OutcomeFatalFailure means retrying cannot help, as with oversize payloads.
	OutcomeFatalFailure
)

// String returns the outcome in snake case for logs and metric labels.
func (o SendOutcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeRetryableFailure:
		return "retryable_failure"
	default:
		return "fatal_failure"
	}
}

// ClassifySendError maps a send error to an outcome. Oversize payloads are
// fatal; every other error is retryable.
func ClassifySendError(err error) SendOutcome {
	switch {
	case err == nil:
		return OutcomeSent
	case errors.Is(err, domain.ErrOversize):
		return OutcomeFatalFailure
	default:
		return OutcomeRetryableFailure
	}
}

// SendAttempt records one try at delivering a payload.
type SendAttempt struct {
	Number      int
	Payload     []byte
	Destination Destination
	Err         error
}

// DeliveryState is the terminal state of a send.
type DeliveryState int

const (
	// DeliverySent means one attempt succeeded.
	DeliverySent DeliveryState = iota
	// DeliveryFailed means the send was abandoned and the event dropped.
	DeliveryFailed
)

// String returns "sent" or "failed".
func (s DeliveryState) String() string {
	if s == DeliverySent {
		return "sent"
	}
	return "failed"
}

// Delivery is what the transmitter reports once it reaches a terminal state.
type Delivery struct {
	State    DeliveryState
	Attempts int
	Err      error
}

// Sent reports whether the payload left the socket.
func (d Delivery) Sent() bool {
	return d.State == DeliverySent
}
