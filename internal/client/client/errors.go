package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = errors.New("not found")
)

// RemoteError is any failure of a remote operation. Message is what the
// user gets to see.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Op + ": " + e.Message
}

func (e *RemoteError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the user for err: the Message of a
// wrapped *RemoteError when it has one, err.Error() otherwise.
func UserMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}

const graphqlErrPrefix = "graphql: "

// mapError turns a transport or GraphQL failure into a *RemoteError.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}

	var uerr *url.Error
	var nerr net.Error
	if errors.As(err, &uerr) || errors.As(err, &nerr) || errors.Is(err, context.DeadlineExceeded) {
		return &RemoteError{Op: op, Message: "Server is unavailable", Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	msg := err.Error()
	if strings.HasPrefix(msg, graphqlErrPrefix) {
		msg = strings.TrimPrefix(msg, graphqlErrPrefix)
	}
	return &RemoteError{Op: op, Message: msg, Err: err}
}
