package protocol

import (
	"strings"

	"github.com/nczempin/httpd-go-uring/errors"
)

// HeaderSeparator splits a raw header line into name and value
const HeaderSeparator = ": "

// HttpHeader represents an HTTP header key-value pair
type HttpHeader struct {
	Key   string
	Value string
}

// String renders the header without its line terminator
func (h HttpHeader) String() string {
	return h.Key + HeaderSeparator + h.Value
}

// ParseHeader splits line on the first ": ". It reports false when the
// separator is missing or the name would be empty.
func ParseHeader(line string) (HttpHeader, bool) {
	key, value, found := strings.Cut(line, HeaderSeparator)
	if !found || key == "" {
		return HttpHeader{}, false
	}
	return HttpHeader{Key: key, Value: value}, true
}

// ParseHeaders builds headers from raw lines, silently dropping lines that
// do not parse. A nil slice means there was no header block at all and is
// the only failure.
func ParseHeaders(lines []string) ([]HttpHeader, error) {
	if lines == nil {
		return nil, errors.NewHeaderError(errors.HeaderErrorInvalidHeader, "no header block")
	}

	headers := make([]HttpHeader, 0, len(lines))
	for _, line := range lines {
		if header, ok := ParseHeader(line); ok {
			headers = append(headers, header)
		}
	}
	return headers, nil
}

// SerializeHeaders renders each header as "name: value\r\n"
func SerializeHeaders(headers []HttpHeader) string {
	var b strings.Builder
	for _, header := range headers {
		b.WriteString(header.Key)
		b.WriteString(HeaderSeparator)
		b.WriteString(header.Value)
		b.WriteString(CRLF)
	}
	return b.String()
}
