// Package router picks a response for a parsed request by looking at the
// first segment of its target.
package router

import (
	"strconv"

	"github.com/nczempin/httpd-go-uring/errors"
	"github.com/nczempin/httpd-go-uring/protocol"
)

const (
	RootPath = "/"
	EchoPath = "echo"
)

// Route maps req to a response. It keeps no state between calls.
func Route(req *protocol.HttpRequest) (*protocol.HttpResponse, error) {
	target := req.StartLine.Target

	switch target.Path {
	case RootPath:
		return protocol.BuildResponse(protocol.StatusOK, nil, "")
	case EchoPath:
		return echo(target)
	default:
		return protocol.BuildResponse(protocol.StatusNotFound, nil, "")
	}
}

// echo answers with the trailing segment as a text/plain body. A missing
// segment aborts the exchange instead of producing a 400.
func echo(target protocol.RequestTarget) (*protocol.HttpResponse, error) {
	if !target.HasTrailing {
		return nil, errors.NewRouteError(errors.RouteErrorMissingTrailingSegment, target.FullPath)
	}

	body := target.TrailingSegment
	headers := []string{
		"Content-Type: text/plain",
		"Content-Length: " + strconv.Itoa(len(body)),
	}
	return protocol.BuildResponse(protocol.StatusOK, headers, body)
}
