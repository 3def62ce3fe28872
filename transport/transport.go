package transport

import (
	"fmt"
	"net"

	"github.com/nczempin/httpd-go-uring/errors"
)

// Conn is one accepted client connection
type Conn interface {
	// Read receives data from the peer.
	// Returns the number of bytes read.
	Read(buf []byte) (int, error)

	// Write sends all of buf to the peer.
	// Returns the number of bytes written.
	Write(buf []byte) (int, error)

	// Close closes the connection
	Close() error

	// RemoteAddr describes the peer for logging
	RemoteAddr() string
}

// Listener hands out accepted connections
type Listener interface {
	Accept() (Conn, error)
	Close() error
	Addr() net.Addr
}

// Kind selects how an accepted socket is driven
type Kind int

const (
	// KindNet uses the Go runtime poller through net.Conn
	KindNet Kind = iota
	// KindIoUring submits read/write requests through github.com/iceber/iouring-go
	KindIoUring
	// KindRing submits read/write SQEs through github.com/godzie44/go-uring
	KindRing
)

func (k Kind) String() string {
	switch k {
	case KindNet:
		return "net"
	case KindIoUring:
		return "iouring"
	case KindRing:
		return "uring"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	switch s {
	case "net":
		return KindNet, nil
	case "iouring":
		return KindIoUring, nil
	case "uring":
		return KindRing, nil
	default:
		return 0, errors.NewInvalidArgumentError(fmt.Sprintf("unknown transport %q", s))
	}
}

// CheckKind reports whether kind can run on this kernel by setting up and
// tearing down one ring. KindNet always succeeds.
func CheckKind(kind Kind) error {
	switch kind {
	case KindNet:
		return nil
	case KindIoUring:
		return checkIoUring()
	case KindRing:
		return checkRing()
	default:
		return errors.NewInvalidArgumentError(fmt.Sprintf("unknown transport %s", kind))
	}
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil && addr.String() != "" {
		return addr.String()
	}
	return "unknown"
}
