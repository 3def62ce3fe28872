package server

import (
	"fmt"

	"github.com/nczempin/httpd-go-uring/errors"
)

// DefaultReadBufferSize is how many bytes a single exchange reads
const DefaultReadBufferSize = 1024

// Config controls a single exchange
type Config struct {
	// ReadBufferSize bounds the one read made per connection.
	ReadBufferSize int

	// BadRequestOnParseError answers requests that fail to parse with
	// "400 Bad Request". When false they are dropped without a reply.
	BadRequestOnParseError bool
}

// DefaultConfig returns the configuration matching the wire behaviour of
// the reference server: 1024 byte reads, malformed requests dropped.
func DefaultConfig() Config {
	return Config{
		ReadBufferSize: DefaultReadBufferSize,
	}
}

func (c Config) validate() error {
	if c.ReadBufferSize <= 0 {
		return errors.NewInvalidArgumentError(
			fmt.Sprintf("read buffer size must be positive, got %d", c.ReadBufferSize),
		)
	}
	return nil
}
