package errors

import "fmt"

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorNone ErrorType = iota
	ErrorTransport
	ErrorRequest
	ErrorHeader
	ErrorRoute
	ErrorResponse
	ErrorInvalidArgument
)

// TransportError represents transport-layer specific errors
type TransportError int

const (
	TransportErrorNone TransportError = iota
	TransportErrorSocketCreateFailure
	TransportErrorSocketListenFailure
	TransportErrorSocketAcceptFailure
	TransportErrorSocketReadFailure
	TransportErrorSocketWriteFailure
	TransportErrorConnectionClosed
	TransportErrorSocketCloseFailure
	TransportErrorIoUringInit
	TransportErrorIoUringSubmit
)

func (e TransportError) String() string {
	switch e {
	case TransportErrorSocketCreateFailure:
		return "socket creation failed"
	case TransportErrorSocketListenFailure:
		return "socket listen failed"
	case TransportErrorSocketAcceptFailure:
		return "socket accept failed"
	case TransportErrorSocketReadFailure:
		return "socket read failed"
	case TransportErrorSocketWriteFailure:
		return "socket write failed"
	case TransportErrorConnectionClosed:
		return "connection closed"
	case TransportErrorSocketCloseFailure:
		return "socket close failed"
	case TransportErrorIoUringInit:
		return "io_uring initialization failed"
	case TransportErrorIoUringSubmit:
		return "io_uring submission failed"
	default:
		return fmt.Sprintf("transport error %d", int(e))
	}
}

// RequestError represents failures while parsing a raw request
type RequestError int

const (
	RequestErrorNone RequestError = iota
	RequestErrorInvalidStartLine
	RequestErrorInvalidHeader
	// RequestErrorInvalidBody is reserved for body-length validation.
	RequestErrorInvalidBody
)

func (e RequestError) String() string {
	switch e {
	case RequestErrorInvalidStartLine:
		return "invalid start line"
	case RequestErrorInvalidHeader:
		return "invalid header"
	case RequestErrorInvalidBody:
		return "invalid body"
	default:
		return fmt.Sprintf("request error %d", int(e))
	}
}

// HeaderError represents failures while building a header block
type HeaderError int

const (
	HeaderErrorNone HeaderError = iota
	HeaderErrorInvalidHeader
)

func (e HeaderError) String() string {
	if e == HeaderErrorInvalidHeader {
		return "invalid header"
	}
	return fmt.Sprintf("header error %d", int(e))
}

// RouteError represents failures while dispatching a parsed request
type RouteError int

const (
	RouteErrorNone RouteError = iota
	RouteErrorMissingTrailingSegment
)

func (e RouteError) String() string {
	if e == RouteErrorMissingTrailingSegment {
		return "missing trailing path segment"
	}
	return fmt.Sprintf("route error %d", int(e))
}

// ResponseError represents failures while reading a response back off
// the wire
type ResponseError int

const (
	ResponseErrorNone ResponseError = iota
	ResponseErrorInvalidStatusLine
	ResponseErrorEmpty
)

func (e ResponseError) String() string {
	switch e {
	case ResponseErrorInvalidStatusLine:
		return "invalid status line"
	case ResponseErrorEmpty:
		return "empty response"
	default:
		return fmt.Sprintf("response error %d", int(e))
	}
}

// HttpError is the main error type for the server
type HttpError struct {
	Type          ErrorType
	TransportErr  TransportError
	RequestErr    RequestError
	HeaderErr     HeaderError
	RouteErr      RouteError
	ResponseErr   ResponseError
	Message       string
	UnderlyingErr error
}

// Sentinels for errors.Is comparisons. Only Type and the code are compared.
var (
	ErrConnectionClosed       = &HttpError{Type: ErrorTransport, TransportErr: TransportErrorConnectionClosed}
	ErrInvalidStartLine       = &HttpError{Type: ErrorRequest, RequestErr: RequestErrorInvalidStartLine}
	ErrInvalidRequestHeader   = &HttpError{Type: ErrorRequest, RequestErr: RequestErrorInvalidHeader}
	ErrInvalidBody            = &HttpError{Type: ErrorRequest, RequestErr: RequestErrorInvalidBody}
	ErrInvalidHeader          = &HttpError{Type: ErrorHeader, HeaderErr: HeaderErrorInvalidHeader}
	ErrMissingTrailingSegment = &HttpError{Type: ErrorRoute, RouteErr: RouteErrorMissingTrailingSegment}
	ErrInvalidStatusLine      = &HttpError{Type: ErrorResponse, ResponseErr: ResponseErrorInvalidStatusLine}
	ErrEmptyResponse          = &HttpError{Type: ErrorResponse, ResponseErr: ResponseErrorEmpty}
)

// Error implements the error interface
func (e *HttpError) Error() string {
	if e == nil {
		return "no error"
	}

	var typeStr string
	switch e.Type {
	case ErrorTransport:
		typeStr = fmt.Sprintf("Transport error: %s", e.TransportErr)
	case ErrorRequest:
		typeStr = fmt.Sprintf("Request error: %s", e.RequestErr)
	case ErrorHeader:
		typeStr = fmt.Sprintf("Header error: %s", e.HeaderErr)
	case ErrorRoute:
		typeStr = fmt.Sprintf("Route error: %s", e.RouteErr)
	case ErrorResponse:
		typeStr = fmt.Sprintf("Response error: %s", e.ResponseErr)
	case ErrorInvalidArgument:
		typeStr = "Invalid argument"
	default:
		typeStr = "Unknown error"
	}

	if e.Message != "" {
		typeStr = fmt.Sprintf("%s: %s", typeStr, e.Message)
	}

	if e.UnderlyingErr != nil {
		return fmt.Sprintf("%s (caused by: %v)", typeStr, e.UnderlyingErr)
	}

	return typeStr
}

// Unwrap returns the underlying error for error chain support
func (e *HttpError) Unwrap() error {
	return e.UnderlyingErr
}

// Is reports whether target carries the same category and code
func (e *HttpError) Is(target error) bool {
	t, ok := target.(*HttpError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Type == t.Type &&
		e.TransportErr == t.TransportErr &&
		e.RequestErr == t.RequestErr &&
		e.HeaderErr == t.HeaderErr &&
		e.RouteErr == t.RouteErr &&
		e.ResponseErr == t.ResponseErr
}

// NewTransportError creates a new transport error
func NewTransportError(err TransportError, message string, underlying error) *HttpError {
	return &HttpError{
		Type:          ErrorTransport,
		TransportErr:  err,
		Message:       message,
		UnderlyingErr: underlying,
	}
}

// NewRequestError creates a new request parsing error
func NewRequestError(err RequestError, message string, underlying error) *HttpError {
	return &HttpError{
		Type:          ErrorRequest,
		RequestErr:    err,
		Message:       message,
		UnderlyingErr: underlying,
	}
}

// NewHeaderError creates a new header error
func NewHeaderError(err HeaderError, message string) *HttpError {
	return &HttpError{
		Type:      ErrorHeader,
		HeaderErr: err,
		Message:   message,
	}
}

// NewRouteError creates a new dispatch error
func NewRouteError(err RouteError, message string) *HttpError {
	return &HttpError{
		Type:     ErrorRoute,
		RouteErr: err,
		Message:  message,
	}
}

// NewResponseError creates a new response parsing error
func NewResponseError(err ResponseError, message string) *HttpError {
	return &HttpError{
		Type:        ErrorResponse,
		ResponseErr: err,
		Message:     message,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string) *HttpError {
	return &HttpError{
		Type:    ErrorInvalidArgument,
		Message: message,
	}
}
