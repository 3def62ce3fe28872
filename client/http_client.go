package client

import (
	stderrors "errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/nczempin/httpd-go-uring/errors"
	"github.com/nczempin/httpd-go-uring/protocol"
	"github.com/nczempin/httpd-go-uring/transport"
)

// DefaultTimeout bounds a whole exchange
const DefaultTimeout = 5 * time.Second

// HttpClient sends one request per connection and reads the reply until
// the server closes
type HttpClient struct {
	network string
	address string
	timeout time.Duration
}

// NewHttpClient creates a client for a "tcp" or "unix" address
func NewHttpClient(network, address string) *HttpClient {
	return &HttpClient{
		network: network,
		address: address,
		timeout: DefaultTimeout,
	}
}

// WithTimeout returns a copy of the client using timeout
func (c *HttpClient) WithTimeout(timeout time.Duration) *HttpClient {
	cp := *c
	cp.timeout = timeout
	return &cp
}

// Get performs a GET request for path
func (c *HttpClient) Get(path string) (*protocol.HttpResponse, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, errors.NewInvalidArgumentError("path must start with /")
	}

	raw := fmt.Sprintf("GET %s %s%sHost: %s%s%s", path, protocol.HTTPVersion, protocol.CRLF, c.address, protocol.CRLF, protocol.CRLF)
	return c.Do([]byte(raw))
}

// Do writes raw as is and parses whatever comes back. A server that closes
// without replying yields an ErrEmptyResponse error.
func (c *HttpClient) Do(raw []byte) (*protocol.HttpResponse, error) {
	data, err := c.RoundTrip(raw)
	if err != nil {
		return nil, err
	}
	return protocol.ParseResponse(string(data))
}

// RoundTrip writes raw and returns the unparsed reply bytes
func (c *HttpClient) RoundTrip(raw []byte) ([]byte, error) {
	netConn, err := net.DialTimeout(c.network, c.address, c.timeout)
	if err != nil {
		return nil, errors.NewTransportError(
			errors.TransportErrorSocketCreateFailure,
			fmt.Sprintf("failed to connect to %s", c.address),
			err,
		)
	}
	if err := netConn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		netConn.Close()
		return nil, errors.NewTransportError(errors.TransportErrorSocketCreateFailure, "failed to set deadline", err)
	}

	conn := transport.NewNetConn(netConn)
	defer conn.Close()

	if _, err := conn.Write(raw); err != nil {
		return nil, err
	}

	return readAll(conn)
}

// readAll reads until the peer closes the connection
func readAll(conn transport.Conn) ([]byte, error) {
	var data []byte
	buf := make([]byte, 1024)

	for {
		n, err := conn.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			if stderrors.Is(err, errors.ErrConnectionClosed) {
				return data, nil
			}
			return data, err
		}
	}
}
