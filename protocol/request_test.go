package protocol

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nczempin/httpd-go-uring/errors"
)

func TestParseStartLine(t *testing.T) {
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	versions := []string{"HTTP/0.9", "HTTP/1.0", "HTTP/1.1", "HTTP/2.0", "HTTP/3.0"}

	for _, m := range methods {
		for _, v := range versions {
			t.Run(m+" "+v, func(t *testing.T) {
				startLine, err := ParseStartLine(m + " /echo/abc " + v)
				require.NoError(t, err)
				require.Equal(t, m, startLine.Method.String())
				require.Equal(t, v, startLine.Version.String())
				require.Equal(t, "/echo/abc", startLine.Target.FullPath)
			})
		}
	}
}

func TestParseStartLine_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"one token", "BOGUS"},
		{"two tokens", "GET /"},
		{"four tokens", "GET / HTTP/1.1 extra"},
		{"lowercase method", "get / HTTP/1.1"},
		{"extension method", "OPTIONS / HTTP/1.1"},
		{"unknown version", "GET / HTTP/1.2"},
		{"lowercase version", "GET / http/1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStartLine(tt.line)
			require.Error(t, err)
			require.True(t, stderrors.Is(err, errors.ErrInvalidStartLine), "got %v", err)
		})
	}
}

func TestParseRequestTarget(t *testing.T) {
	tests := []struct {
		target      string
		path        string
		trailing    string
		hasTrailing bool
	}{
		{"/", "/", "", false},
		{"//", "/", "", false},
		{"/echo", "echo", "", false},
		{"/echo/", "echo", "", false},
		{"/echo/abc", "echo", "abc", true},
		{"/echo/abc/def", "echo", "abc/def", true},
		{"echo/abc/def", "echo", "def", true},
		{"//echo/abc", "echo/abc", "", false},
		{"/unknown", "unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rt := ParseRequestTarget(tt.target)
			require.Equal(t, tt.target, rt.FullPath)
			require.Equal(t, tt.path, rt.Path)
			require.Equal(t, tt.trailing, rt.TrailingSegment)
			require.Equal(t, tt.hasTrailing, rt.HasTrailing)
		})
	}
}

func TestParseRequest(t *testing.T) {
	t.Run("echo without headers", func(t *testing.T) {
		req, err := ParseRequest("GET /echo/abc HTTP/1.1\r\n\r\n")
		require.NoError(t, err)
		require.Equal(t, MethodGet, req.StartLine.Method)
		require.Equal(t, HTTP11, req.StartLine.Version)
		require.Equal(t, "echo", req.StartLine.Target.Path)
		require.Equal(t, "abc", req.StartLine.Target.TrailingSegment)
		require.Empty(t, req.Headers)
		require.Empty(t, req.Body)
	})

	t.Run("headers and body", func(t *testing.T) {
		raw := "POST /items HTTP/1.0\r\nHost: localhost:4221\r\nContent-Type: text/plain\r\n\r\nhello"
		req, err := ParseRequest(raw)
		require.NoError(t, err)
		require.Equal(t, MethodPost, req.StartLine.Method)
		require.Equal(t, []HttpHeader{
			{Key: "Host", Value: "localhost:4221"},
			{Key: "Content-Type", Value: "text/plain"},
		}, req.Headers)
		require.Equal(t, "hello", req.Body)

		host, ok := req.Header("host")
		require.True(t, ok)
		require.Equal(t, "localhost:4221", host)

		_, ok = req.Header("Accept")
		require.False(t, ok)
	})

	t.Run("malformed header lines are dropped", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nHost: example\r\nbroken-line\r\nAccept:*/*\r\nUser-Agent: curl\r\n\r\n"
		req, err := ParseRequest(raw)
		require.NoError(t, err)
		require.Equal(t, []HttpHeader{
			{Key: "Host", Value: "example"},
			{Key: "User-Agent", Value: "curl"},
		}, req.Headers)
	})

	t.Run("missing start line tokens", func(t *testing.T) {
		_, err := ParseRequest("BOGUS\r\n\r\n")
		require.True(t, stderrors.Is(err, errors.ErrInvalidStartLine))
	})

	t.Run("start line is checked before headers", func(t *testing.T) {
		_, err := ParseRequest("BOGUS")
		require.True(t, stderrors.Is(err, errors.ErrInvalidStartLine))
	})

	t.Run("no header block", func(t *testing.T) {
		_, err := ParseRequest("GET / HTTP/1.1")
		require.True(t, stderrors.Is(err, errors.ErrInvalidRequestHeader))
		require.True(t, stderrors.Is(err, errors.ErrInvalidHeader))
	})

	t.Run("start line only with single CRLF", func(t *testing.T) {
		req, err := ParseRequest("GET / HTTP/1.1\r\n")
		require.NoError(t, err)
		require.Empty(t, req.Headers)
		require.Empty(t, req.Body)
	})
}
