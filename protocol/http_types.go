package protocol

import "fmt"

const (
	// CRLF terminates every line on the wire
	CRLF = "\r\n"

	// HTTPVersion is the only version the server answers with
	HTTPVersion = "HTTP/1.1"
)

// HttpMethod represents HTTP request methods
type HttpMethod int

const (
	MethodGet HttpMethod = iota
	MethodPost
	MethodPut
	MethodPatch
	MethodDelete
)

var methodNames = map[string]HttpMethod{
	"GET":    MethodGet,
	"POST":   MethodPost,
	"PUT":    MethodPut,
	"PATCH":  MethodPatch,
	"DELETE": MethodDelete,
}

func (m HttpMethod) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodPatch:
		return "PATCH"
	case MethodDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("HttpMethod(%d)", int(m))
	}
}

// HttpVersion is the protocol version token of a request line. It is
// recorded but never changes how a request is handled.
type HttpVersion int

const (
	HTTP09 HttpVersion = iota
	HTTP10
	HTTP11
	HTTP20
	HTTP30
)

var versionNames = map[string]HttpVersion{
	"HTTP/0.9": HTTP09,
	"HTTP/1.0": HTTP10,
	"HTTP/1.1": HTTP11,
	"HTTP/2.0": HTTP20,
	"HTTP/3.0": HTTP30,
}

func (v HttpVersion) String() string {
	switch v {
	case HTTP09:
		return "HTTP/0.9"
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	case HTTP20:
		return "HTTP/2.0"
	case HTTP30:
		return "HTTP/3.0"
	default:
		return fmt.Sprintf("HttpVersion(%d)", int(v))
	}
}

// RequestTarget is the request-target token split for routing
type RequestTarget struct {
	FullPath string
	// Path is the first non-empty segment, or "/" when there is none.
	Path string
	// TrailingSegment is the last segment when more than one exists.
	TrailingSegment string
	HasTrailing     bool
}

// StartLine is the parsed request line
type StartLine struct {
	Method  HttpMethod
	Target  RequestTarget
	Version HttpVersion
}

// HttpRequest represents a parsed HTTP request. An empty Body means the
// request carried none.
type HttpRequest struct {
	StartLine StartLine
	Headers   []HttpHeader
	Body      string
}

// StatusLine is the first line of a response
type StatusLine struct {
	Version    string
	StatusCode uint16
	StatusText StatusText
}

// HttpResponse represents an HTTP response. Nil Headers and empty Body
// serialize the same as absent ones.
type HttpResponse struct {
	StatusLine StatusLine
	Headers    []HttpHeader
	Body       string
}
