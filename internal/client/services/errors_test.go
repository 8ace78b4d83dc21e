package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &ValidationError{Field: "email", Message: "Email is required"}, "Email is required"},
		{"declined with message", &ServerDeclinedError{Message: "Invalid email or password"}, "Invalid email or password"},
		{"declined without message", &ServerDeclinedError{}, MsgServerDeclined},
		{"transport", &TransportError{Err: client.ErrUnavailable}, MsgConnectivity},
		{"transport status", &TransportError{StatusCode: 502}, "server returned status 502"},
		{"storage", &StorageError{Err: errors.New("disk full")}, MsgStorage},
		{"identity", fmt.Errorf("get profile: %w", ErrEmptyIdentity), MsgEmptyIdentity},
		{"empty", ErrEmptyResponse, MsgEmptyResponse},
		{"image", ErrImageProcessing, "cannot process image"},
		{"deadline", context.DeadlineExceeded, MsgConnectivity},
		{"other", errors.New("boom"), MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestMapCallError(t *testing.T) {
	var te *TransportError
	err := mapCallError(fmt.Errorf("%w: dial tcp", client.ErrUnavailable))
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
	assert.ErrorIs(t, err, client.ErrUnavailable)

	err = mapCallError(&client.StatusError{StatusCode: http.StatusBadGateway})
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)

	var se *ServerDeclinedError
	err = mapCallError(&client.StatusError{StatusCode: http.StatusConflict, Message: "taken"})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "taken", se.Message)

	err = mapCallError(fmt.Errorf("%w: bad json", client.ErrMalformedResponse))
	require.ErrorAs(t, err, &te)
}

func TestUnwrap(t *testing.T) {
	v, err := unwrap(envelope(7, ""), nil)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = unwrap(&models.Envelope[int]{Success: true}, nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = unwrap[int](nil, nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	var se *ServerDeclinedError
	_, err = unwrap(declined[int]("nope"), nil)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "nope", se.Message)
}

func TestAcknowledge(t *testing.T) {
	msg, err := acknowledge(&models.Ack{Success: true, Message: "done"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "done", msg)

	_, err = acknowledge(&models.Ack{Success: false}, nil)
	var se *ServerDeclinedError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, MsgServerDeclined, UserMessage(err))
}
