package transport

import (
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"

	"github.com/nczempin/httpd-go-uring/errors"
)

// NetListener accepts connections from a kernel listening socket and wraps
// them according to its Kind
type NetListener struct {
	listener net.Listener
	kind     Kind
}

// Listen opens a listening socket. network is "tcp" or "unix"; for unix
// the address is the socket path and a stale socket file is removed first.
func Listen(network, address string, kind Kind) (*NetListener, error) {
	switch network {
	case "tcp", "tcp4", "tcp6":
	case "unix":
		os.Remove(address)
	default:
		return nil, errors.NewInvalidArgumentError(fmt.Sprintf("unsupported network %q", network))
	}

	l, err := net.Listen(network, address)
	if err != nil {
		return nil, errors.NewTransportError(
			errors.TransportErrorSocketListenFailure,
			fmt.Sprintf("failed to listen on %s %s", network, address),
			err,
		)
	}

	return &NetListener{listener: l, kind: kind}, nil
}

// Accept waits for the next connection. After Close it returns an error
// wrapping net.ErrClosed.
func (l *NetListener) Accept() (Conn, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		if stderrors.Is(err, net.ErrClosed) {
			return nil, errors.NewTransportError(errors.TransportErrorConnectionClosed, "listener closed", err)
		}
		return nil, errors.NewTransportError(errors.TransportErrorSocketAcceptFailure, "accept failed", err)
	}

	switch l.kind {
	case KindIoUring:
		uc, err := newUringConn(conn)
		if err != nil {
			return nil, err
		}
		return uc, nil
	case KindRing:
		rc, err := newRingConn(conn)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return NewNetConn(conn), nil
	}
}

// Close stops accepting connections
func (l *NetListener) Close() error {
	if err := l.listener.Close(); err != nil {
		return errors.NewTransportError(errors.TransportErrorSocketCloseFailure, "failed to close listener", err)
	}
	return nil
}

// Addr returns the bound address
func (l *NetListener) Addr() net.Addr {
	return l.listener.Addr()
}

// NetConn implements Conn on top of a net.Conn
type NetConn struct {
	conn   net.Conn
	remote string
}

// NewNetConn wraps conn
func NewNetConn(conn net.Conn) *NetConn {
	return &NetConn{
		conn:   conn,
		remote: remoteAddr(conn),
	}
}

// Read receives data from the connection
func (c *NetConn) Read(buf []byte) (int, error) {
	if c.conn == nil {
		return 0, errors.NewTransportError(errors.TransportErrorSocketReadFailure, "not connected", nil)
	}

	n, err := c.conn.Read(buf)
	if err != nil {
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, syscall.ECONNRESET) {
			return n, errors.NewTransportError(errors.TransportErrorConnectionClosed, "connection closed by peer", err)
		}
		return n, errors.NewTransportError(errors.TransportErrorSocketReadFailure, "read failed", err)
	}

	return n, nil
}

// Write sends data over the connection
func (c *NetConn) Write(buf []byte) (int, error) {
	if c.conn == nil {
		return 0, errors.NewTransportError(errors.TransportErrorSocketWriteFailure, "not connected", nil)
	}

	n, err := c.conn.Write(buf)
	if err != nil {
		// Check for broken pipe or connection reset
		if stderrors.Is(err, syscall.EPIPE) || stderrors.Is(err, syscall.ECONNRESET) {
			return n, errors.NewTransportError(errors.TransportErrorConnectionClosed, "connection closed during write", err)
		}
		return n, errors.NewTransportError(errors.TransportErrorSocketWriteFailure, "write failed", err)
	}

	return n, nil
}

// Close closes the connection
func (c *NetConn) Close() error {
	if c.conn == nil {
		return nil // Idempotent close
	}

	err := c.conn.Close()
	c.conn = nil

	if err != nil {
		return errors.NewTransportError(errors.TransportErrorSocketCloseFailure, "failed to close socket", err)
	}

	return nil
}

// RemoteAddr describes the peer
func (c *NetConn) RemoteAddr() string {
	return c.remote
}

// fileConn is satisfied by *net.TCPConn and *net.UnixConn
type fileConn interface {
	File() (*os.File, error)
}

// detach duplicates the socket behind conn into a blocking *os.File and
// closes conn, leaving the file as the only owner of the socket.
func detach(conn net.Conn) (*os.File, string, error) {
	remote := remoteAddr(conn)
	defer conn.Close()

	fc, ok := conn.(fileConn)
	if !ok {
		return nil, remote, errors.NewInvalidArgumentError(fmt.Sprintf("%T has no file descriptor", conn))
	}

	file, err := fc.File()
	if err != nil {
		return nil, remote, errors.NewTransportError(
			errors.TransportErrorSocketCreateFailure,
			"failed to duplicate socket",
			err,
		)
	}
	return file, remote, nil
}
