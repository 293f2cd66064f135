package entity

import (
	"fmt"
	"strconv"

	"github.com/ruudy-sib/udpout/internal/domain"
)

// PortSpecKind tags which variant a PortSpec holds.
type PortSpecKind int

const (
	// PortSpecLiteral is a fixed numeric port.
	PortSpecLiteral PortSpecKind = iota
	// PortSpecTemplate is resolved against each event.
	PortSpecTemplate
)

func (k PortSpecKind) String() string {
	if k == PortSpecTemplate {
		return "template"
	}
	return "literal"
}

// PortSpec describes the destination port. It is classified once when the
// configuration is loaded and never inspected for its raw type afterwards.
type PortSpec struct {
	kind    PortSpecKind
	raw     string
	literal int
}

// ParsePortSpec classifies a raw configured port. A canonical base-10 integer
// is a literal and must be a valid port; anything else must contain a field
// reference and becomes a template.
func ParsePortSpec(raw string) (PortSpec, error) {
	if n, err := strconv.Atoi(raw); err == nil && strconv.Itoa(n) == raw {
		if n < domain.MinPort || n > domain.MaxPort {
			return PortSpec{}, fmt.Errorf("%w: port %d out of range %d-%d",
				domain.ErrInvalidConfig, n, domain.MinPort, domain.MaxPort)
		}
		return LiteralPort(n), nil
	}

	if !HasFieldReference(raw) {
		return PortSpec{}, fmt.Errorf("%w: port %q must be a number or a field reference",
			domain.ErrInvalidConfig, raw)
	}

	return PortSpec{kind: PortSpecTemplate, raw: raw}, nil
}

// LiteralPort builds a literal PortSpec without validation.
func LiteralPort(port int) PortSpec {
	return PortSpec{kind: PortSpecLiteral, raw: strconv.Itoa(port), literal: port}
}

// Kind returns the variant tag.
func (p PortSpec) Kind() PortSpecKind { return p.kind }

// Raw returns the port exactly as configured.
func (p PortSpec) Raw() string { return p.raw }

func (p PortSpec) String() string { return p.raw }

// Resolve produces the numeric port for event. Literals never look at the
// event. Templates are substituted and parsed; the result is not range
// checked here, an unusable port surfaces later as a send failure.
func (p PortSpec) Resolve(event *Event) (int, error) {
	if p.kind == PortSpecLiteral {
		return p.literal, nil
	}

	value := event.Sprintf(p.raw)
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, &PortResolutionError{
			Spec:  p.raw,
			Value: value,
			Event: event,
			Err:   err,
		}
	}
	return port, nil
}

// PortResolutionError reports a template that did not produce an integer.
// The event must be dropped without a send attempt.
type PortResolutionError struct {
	Spec  string
	Value string
	Event *Event
	Err   error
}

func (e *PortResolutionError) Error() string {
	return fmt.Sprintf("resolving port %q: %v", e.Spec, e.Err)
}

func (e *PortResolutionError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match domain.ErrPortResolution.
func (e *PortResolutionError) Is(target error) bool {
	return target == domain.ErrPortResolution
}
