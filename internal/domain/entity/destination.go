package entity

import (
	"net"
	"strconv"
)

// Destination is a resolved UDP endpoint. Host is fixed by configuration;
// Port is resolved per event and may still be out of range.
type Destination struct {
	Host string
	Port int
}

// Address returns the host:port combination, bracketing IPv6 hosts.
func (d Destination) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
