package router

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nczempin/httpd-go-uring/errors"
	"github.com/nczempin/httpd-go-uring/protocol"
)

func route(t *testing.T, raw string) (string, error) {
	t.Helper()

	req, err := protocol.ParseRequest(raw)
	require.NoError(t, err)

	resp, err := Route(req)
	if err != nil {
		return "", err
	}
	return resp.Serialize(), nil
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"root", "GET / HTTP/1.1\r\n\r\n", "HTTP/1.1 200 OK\r\n\r\n"},
		{"root with headers", "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n", "HTTP/1.1 200 OK\r\n\r\n"},
		{"unknown", "GET /unknown HTTP/1.1\r\n\r\n", "HTTP/1.1 404 Not Found\r\n\r\n"},
		{"nested unknown", "DELETE /files/a HTTP/1.1\r\n\r\n", "HTTP/1.1 404 Not Found\r\n\r\n"},
		{
			"echo",
			"GET /echo/abc HTTP/1.1\r\n\r\n",
			"HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc",
		},
		{
			"echo keeps nested segments",
			"POST /echo/a/b HTTP/2.0\r\n\r\n",
			"HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\na/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := route(t, tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRoute_EchoContentLengthCountsBytes(t *testing.T) {
	req, err := protocol.ParseRequest("GET /echo/héllo HTTP/1.1\r\n\r\n")
	require.NoError(t, err)

	resp, err := Route(req)
	require.NoError(t, err)
	require.Equal(t, []protocol.HttpHeader{
		{Key: "Content-Type", Value: "text/plain"},
		{Key: "Content-Length", Value: "6"},
	}, resp.Headers)
}

func TestRoute_EchoWithoutSegment(t *testing.T) {
	for _, raw := range []string{"GET /echo HTTP/1.1\r\n\r\n", "GET /echo/ HTTP/1.1\r\n\r\n"} {
		_, err := route(t, raw)
		require.True(t, stderrors.Is(err, errors.ErrMissingTrailingSegment), raw)
	}
}
