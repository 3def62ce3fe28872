package protocol

import (
	"fmt"
	"strings"

	"github.com/nczempin/httpd-go-uring/errors"
)

// maxTargetSegments caps how many pieces a request target is split into.
// Anything past the second "/" stays together in the last piece.
const maxTargetSegments = 3

// ParseMethod matches token against the supported methods
func ParseMethod(token string) (HttpMethod, error) {
	method, ok := methodNames[token]
	if !ok {
		return 0, errors.NewRequestError(
			errors.RequestErrorInvalidStartLine,
			fmt.Sprintf("unsupported method %q", token),
			nil,
		)
	}
	return method, nil
}

// ParseHttpVersion matches token exactly against the known versions
func ParseHttpVersion(token string) (HttpVersion, error) {
	version, ok := versionNames[token]
	if !ok {
		return 0, errors.NewRequestError(
			errors.RequestErrorInvalidStartLine,
			fmt.Sprintf("unsupported version %q", token),
			nil,
		)
	}
	return version, nil
}

// ParseRequestTarget splits target on "/" into at most three pieces and
// drops the empty ones.
func ParseRequestTarget(target string) RequestTarget {
	var segments []string
	for _, s := range strings.SplitN(target, "/", maxTargetSegments) {
		if s != "" {
			segments = append(segments, s)
		}
	}

	rt := RequestTarget{FullPath: target, Path: "/"}
	if len(segments) == 0 {
		return rt
	}

	rt.Path = segments[0]
	if len(segments) > 1 {
		rt.TrailingSegment = segments[len(segments)-1]
		rt.HasTrailing = true
	}
	return rt
}

// ParseStartLine parses "METHOD target VERSION". The method is checked
// before the target and the target before the version.
func ParseStartLine(line string) (StartLine, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return StartLine{}, errors.NewRequestError(
			errors.RequestErrorInvalidStartLine,
			fmt.Sprintf("expected 3 tokens, got %d", len(fields)),
			nil,
		)
	}

	method, err := ParseMethod(fields[0])
	if err != nil {
		return StartLine{}, err
	}

	target := ParseRequestTarget(fields[1])

	version, err := ParseHttpVersion(fields[2])
	if err != nil {
		return StartLine{}, err
	}

	return StartLine{
		Method:  method,
		Target:  target,
		Version: version,
	}, nil
}

// ExtractRequestFields splits raw on CRLF: the first line is the start
// line, the last line is the body and everything between is headers.
// The whole request is expected to be in raw; there is no Content-Length
// framing.
func ExtractRequestFields(raw string) (StartLine, []HttpHeader, string, error) {
	lines := strings.Split(raw, CRLF)

	startLine, err := ParseStartLine(lines[0])
	if err != nil {
		return StartLine{}, nil, "", err
	}

	// A buffer with no CRLF at all has no header block.
	var headerLines []string
	if len(lines) > 1 {
		headerLines = lines[1 : len(lines)-1]
	}
	headers, err := ParseHeaders(headerLines)
	if err != nil {
		return StartLine{}, nil, "", errors.NewRequestError(
			errors.RequestErrorInvalidHeader,
			"missing header block",
			err,
		)
	}

	body := ""
	if len(lines) > 1 {
		body = lines[len(lines)-1]
	}

	return startLine, headers, body, nil
}

// ParseRequest parses a complete raw request
func ParseRequest(raw string) (*HttpRequest, error) {
	startLine, headers, body, err := ExtractRequestFields(raw)
	if err != nil {
		return nil, err
	}
	return &HttpRequest{
		StartLine: startLine,
		Headers:   headers,
		Body:      body,
	}, nil
}

// Header returns the value of the first header named name, ignoring case
func (r *HttpRequest) Header(name string) (string, bool) {
	for _, header := range r.Headers {
		if strings.EqualFold(header.Key, name) {
			return header.Value, true
		}
	}
	return "", false
}
