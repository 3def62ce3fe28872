package client

import (
	stderrors "errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nczempin/httpd-go-uring/errors"
)

// setupTestServer creates a one-shot server running handler
func setupTestServer(t *testing.T, handler func(net.Conn)) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}()

	cleanup := func() {
		listener.Close()
	}

	return listener.Addr().String(), cleanup
}

func TestHttpClient_Get(t *testing.T) {
	requests := make(chan string, 1)
	addr, cleanup := setupTestServer(t, func(conn net.Conn) {
		buf := make([]byte, 1024)
		n, _ := conn.Read(buf)
		requests <- string(buf[:n])

		conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello"))
	})
	defer cleanup()

	resp, err := NewHttpClient("tcp", addr).Get("/echo/hello")
	require.NoError(t, err)
	require.Equal(t, uint16(200), resp.StatusLine.StatusCode)
	require.Equal(t, "hello", resp.Body)
	require.Len(t, resp.Headers, 2)

	require.Equal(t, "GET /echo/hello HTTP/1.1\r\nHost: "+addr+"\r\n\r\n", <-requests)
}

func TestHttpClient_Do_NoReply(t *testing.T) {
	addr, cleanup := setupTestServer(t, func(conn net.Conn) {
		buf := make([]byte, 1024)
		conn.Read(buf)
	})
	defer cleanup()

	_, err := NewHttpClient("tcp", addr).Do([]byte("BOGUS\r\n\r\n"))
	require.True(t, stderrors.Is(err, errors.ErrEmptyResponse), "got %v", err)
}

func TestHttpClient_Get_InvalidPath(t *testing.T) {
	_, err := NewHttpClient("tcp", "127.0.0.1:1").Get("echo")
	require.Error(t, err)

	var httpErr *errors.HttpError
	require.True(t, stderrors.As(err, &httpErr))
	require.Equal(t, errors.ErrorInvalidArgument, httpErr.Type)
}

func TestHttpClient_ConnectFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	_, err = NewHttpClient("tcp", addr).WithTimeout(time.Second).Get("/")
	require.True(t, stderrors.Is(err, &errors.HttpError{Type: errors.ErrorTransport, TransportErr: errors.TransportErrorSocketCreateFailure}))
}
