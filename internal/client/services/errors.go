package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
)

// Messages shown to the user for failures without a server-provided text.
const (
	MsgConnectivity    = "Unable to connect to server. Please check your internet connection."
	MsgServerDeclined  = "The server rejected the request."
	MsgEmptyResponse   = "The server returned an empty response."
	MsgEmptyIdentity   = "You are not signed in."
	MsgImageProcessing = "cannot process image"
	MsgStorage         = "Could not save your session on this device."
	MsgUnexpected      = "Something went wrong. Please try again."
)

var (
	// ErrEmptyIdentity means there is no signed-in user id locally.
	ErrEmptyIdentity = errors.New("no signed-in user")
	// ErrEmptyResponse means a successful response carried no data.
	ErrEmptyResponse = errors.New("empty response")
	// ErrImageProcessing means an avatar image could not be converted.
	ErrImageProcessing = errors.New(MsgImageProcessing)
)

// ValidationError is a local input problem; it never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// TransportError is a network failure, a timeout or a non-2xx response
// without a usable message. StatusCode is 0 when no response arrived.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerDeclinedError is a response with success=false, or a non-2xx
// response that carried a message.
type ServerDeclinedError struct {
	StatusCode int
	Message    string
}

func (e *ServerDeclinedError) Error() string {
	if e.Message == "" {
		return MsgServerDeclined
	}
	return e.Message
}

// StorageError is a failure of the local database.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "local storage: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// UserMessage turns err into the text a controller publishes.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		ve *ValidationError
		te *TransportError
		se *ServerDeclinedError
		st *StorageError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &se):
		return se.Error()
	case errors.As(err, &te):
		if te.StatusCode != 0 {
			return te.Error()
		}
		return MsgConnectivity
	case errors.As(err, &st):
		return MsgStorage
	case errors.Is(err, ErrEmptyIdentity):
		return MsgEmptyIdentity
	case errors.Is(err, ErrEmptyResponse):
		return MsgEmptyResponse
	case errors.Is(err, ErrImageProcessing):
		return MsgImageProcessing
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return MsgConnectivity
	}
	return MsgUnexpected
}

// mapCallError converts a gateway client error into the taxonomy.
func mapCallError(err error) error {
	var st *client.StatusError
	switch {
	case errors.As(err, &st):
		if st.Message != "" {
			return &ServerDeclinedError{StatusCode: st.StatusCode, Message: st.Message}
		}
		return &TransportError{StatusCode: st.StatusCode, Err: err}
	default:
		return &TransportError{Err: err}
	}
}

// unwrap maps a gateway result to (data, error). Data is required: a
// successful envelope without data is ErrEmptyResponse.
func unwrap[T any](env *models.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, mapCallError(err)
	}
	if env == nil {
		return zero, ErrEmptyResponse
	}
	if !env.Success {
		return zero, &ServerDeclinedError{StatusCode: http.StatusOK, Message: env.Message}
	}
	if env.Data == nil {
		return zero, ErrEmptyResponse
	}
	return *env.Data, nil
}

// acknowledge maps a data-less gateway result. It returns the server message
// on success.
func acknowledge(env *models.Ack, err error) (string, error) {
	if err != nil {
		return "", mapCallError(err)
	}
	if env == nil {
		return "", ErrEmptyResponse
	}
	if !env.Success {
		return "", &ServerDeclinedError{StatusCode: http.StatusOK, Message: env.Message}
	}
	return env.Message, nil
}
