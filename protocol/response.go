package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nczempin/httpd-go-uring/errors"
)

// StatusText is the reason phrase attached to a status code
type StatusText int

const (
	StatusTextUnknown StatusText = iota
	StatusTextOK
	StatusTextNotFound
	StatusTextInternalServerError
	StatusTextBadRequest
)

// Status codes with a known reason phrase
const (
	StatusOK                  uint16 = 200
	StatusBadRequest          uint16 = 400
	StatusNotFound            uint16 = 404
	StatusInternalServerError uint16 = 500
)

// StatusTextFor maps code to its reason phrase. Unknown codes get an empty
// phrase, never a generic one.
func StatusTextFor(code uint16) StatusText {
	switch code {
	case StatusOK:
		return StatusTextOK
	case StatusNotFound:
		return StatusTextNotFound
	case StatusInternalServerError:
		return StatusTextInternalServerError
	case StatusBadRequest:
		return StatusTextBadRequest
	default:
		return StatusTextUnknown
	}
}

func (s StatusText) String() string {
	switch s {
	case StatusTextOK:
		return "OK"
	case StatusTextNotFound:
		return "Not Found"
	case StatusTextInternalServerError:
		return "Internal Server Error"
	case StatusTextBadRequest:
		return "Bad Request"
	default:
		return ""
	}
}

// NewStatusLine builds a status line for any code
func NewStatusLine(code uint16) StatusLine {
	return StatusLine{
		Version:    HTTPVersion,
		StatusCode: code,
		StatusText: StatusTextFor(code),
	}
}

func (s StatusLine) String() string {
	return fmt.Sprintf("%s %d %s", s.Version, s.StatusCode, s.StatusText)
}

// BuildResponseFields builds the pieces of a response. A nil headerLines
// means the response has no headers; only header construction can fail.
func BuildResponseFields(code uint16, headerLines []string, body string) (StatusLine, []HttpHeader, string, error) {
	statusLine := NewStatusLine(code)
	if headerLines == nil {
		return statusLine, nil, body, nil
	}

	headers, err := ParseHeaders(headerLines)
	if err != nil {
		return StatusLine{}, nil, "", err
	}
	return statusLine, headers, body, nil
}

// BuildResponse is BuildResponseFields assembled into a response
func BuildResponse(code uint16, headerLines []string, body string) (*HttpResponse, error) {
	statusLine, headers, body, err := BuildResponseFields(code, headerLines, body)
	if err != nil {
		return nil, err
	}
	return &HttpResponse{
		StatusLine: statusLine,
		Headers:    headers,
		Body:       body,
	}, nil
}

// NewResponse creates a response from already built headers
func NewResponse(code uint16, headers []HttpHeader, body string) *HttpResponse {
	return &HttpResponse{
		StatusLine: NewStatusLine(code),
		Headers:    headers,
		Body:       body,
	}
}

// Serialize renders "status line\r\n" + headers + "\r\n" + body. Each
// header carries its own CRLF, so the blank line before the body only
// exists because of the second CRLF.
func (r *HttpResponse) Serialize() string {
	var b strings.Builder
	b.WriteString(r.StatusLine.String())
	b.WriteString(CRLF)
	b.WriteString(SerializeHeaders(r.Headers))
	b.WriteString(CRLF)
	b.WriteString(r.Body)
	return b.String()
}

// Bytes returns the serialized response ready for the wire
func (r *HttpResponse) Bytes() []byte {
	return []byte(r.Serialize())
}

// ParseResponse reads a serialized response back into its fields. Headers
// end at the first empty line; everything after it is the body.
func ParseResponse(raw string) (*HttpResponse, error) {
	if raw == "" {
		return nil, errors.NewResponseError(errors.ResponseErrorEmpty, "no bytes received")
	}

	statusRaw, rest, found := strings.Cut(raw, CRLF)
	if !found {
		return nil, errors.NewResponseError(errors.ResponseErrorInvalidStatusLine, "unterminated status line")
	}

	statusParts := strings.SplitN(statusRaw, " ", 3)
	if len(statusParts) < 2 || statusParts[0] != HTTPVersion {
		return nil, errors.NewResponseError(
			errors.ResponseErrorInvalidStatusLine,
			fmt.Sprintf("invalid status line %q", statusRaw),
		)
	}

	code, err := strconv.ParseUint(statusParts[1], 10, 16)
	if err != nil {
		return nil, errors.NewResponseError(
			errors.ResponseErrorInvalidStatusLine,
			fmt.Sprintf("invalid status code: %s", statusParts[1]),
		)
	}

	var headers []HttpHeader
	for {
		line, remaining, found := strings.Cut(rest, CRLF)
		if !found {
			break
		}
		rest = remaining
		if line == "" {
			break
		}
		if header, ok := ParseHeader(line); ok {
			headers = append(headers, header)
		}
	}

	return NewResponse(uint16(code), headers, rest), nil
}
