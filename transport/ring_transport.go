package transport

import (
	"net"
	"os"

	"github.com/godzie44/go-uring/uring"

	"github.com/nczempin/httpd-go-uring/errors"
)

// RingConn implements Conn with godzie44/go-uring. Each operation queues a
// single SQE, submits it and waits for its completion.
type RingConn struct {
	ring   *uring.Ring
	file   *os.File
	remote string
}

func newRingConn(conn net.Conn) (*RingConn, error) {
	file, remote, err := detach(conn)
	if err != nil {
		return nil, err
	}

	ring, err := uring.New(ringEntries)
	if err != nil {
		file.Close()
		return nil, errors.NewTransportError(
			errors.TransportErrorIoUringInit,
			"failed to initialize io_uring",
			err,
		)
	}

	return &RingConn{
		ring:   ring,
		file:   file,
		remote: remote,
	}, nil
}

func checkRing() error {
	ring, err := uring.New(ringEntries)
	if err != nil {
		return errors.NewTransportError(
			errors.TransportErrorIoUringInit,
			"failed to initialize io_uring",
			err,
		)
	}
	return ring.Close()
}

// complete submits the SQE that was just queued and returns its result.
// queueErr is the error from QueueSQE.
func (c *RingConn) complete(queueErr error, failure errors.TransportError) (int, error) {
	if queueErr != nil {
		return 0, errors.NewTransportError(
			errors.TransportErrorIoUringSubmit,
			"failed to queue request",
			queueErr,
		)
	}

	if _, err := c.ring.Submit(); err != nil {
		return 0, errors.NewTransportError(
			errors.TransportErrorIoUringSubmit,
			"failed to submit request",
			err,
		)
	}

	cqe, err := c.ring.WaitCQEvents(1)
	if err != nil {
		return 0, errors.NewTransportError(failure, "failed to wait for completion", err)
	}

	if err := cqe.Error(); err != nil {
		c.ring.SeenCQE(cqe)
		return 0, errors.NewTransportError(failure, "operation failed", err)
	}

	n := int(cqe.Res)
	c.ring.SeenCQE(cqe)
	return n, nil
}

// Read receives data from the connection
func (c *RingConn) Read(buf []byte) (int, error) {
	if c.file == nil {
		return 0, errors.NewTransportError(errors.TransportErrorSocketReadFailure, "not connected", nil)
	}

	n, err := c.complete(c.ring.QueueSQE(uring.Read(c.file.Fd(), buf, 0), 0, 0), errors.TransportErrorSocketReadFailure)
	if err != nil {
		return 0, err
	}

	if n == 0 && len(buf) > 0 {
		return 0, errors.NewTransportError(
			errors.TransportErrorConnectionClosed,
			"connection closed by peer",
			nil,
		)
	}

	return n, nil
}

// Write sends all of buf
func (c *RingConn) Write(buf []byte) (int, error) {
	if c.file == nil {
		return 0, errors.NewTransportError(errors.TransportErrorSocketWriteFailure, "not connected", nil)
	}

	totalWritten := 0
	for totalWritten < len(buf) {
		sqe := uring.Write(c.file.Fd(), buf[totalWritten:], 0)
		n, err := c.complete(c.ring.QueueSQE(sqe, 0, 0), errors.TransportErrorSocketWriteFailure)
		if err != nil {
			return totalWritten, err
		}

		if n <= 0 {
			return totalWritten, errors.NewTransportError(
				errors.TransportErrorConnectionClosed,
				"connection closed during write",
				nil,
			)
		}

		totalWritten += n
	}

	return totalWritten, nil
}

// Close closes the socket and releases the ring
func (c *RingConn) Close() error {
	if c.file == nil {
		return nil
	}

	err := c.file.Close()
	c.file = nil
	c.ring.Close()
	c.ring = nil

	if err != nil {
		return errors.NewTransportError(
			errors.TransportErrorSocketCloseFailure,
			"failed to close socket",
			err,
		)
	}
	return nil
}

// RemoteAddr describes the peer
func (c *RingConn) RemoteAddr() string {
	return c.remote
}
