package session

// AuthState is the state of a login or registration attempt: Initial,
// Loading, Success or Error.
type AuthState interface {
	authState()
}

// Initial is the state before any attempt and after a reset.
type Initial struct{}

// Loading means a request is in flight.
type Loading struct{}

// Success carries the signed-in account.
type Success struct {
	UserID string
	Email  string
}

// Error carries the message to show.
type Error struct {
	Message string
}

func (Initial) authState() {}
func (Loading) authState() {}
func (Success) authState() {}
func (Error) authState()   {}

// FlowState is the state of the password recovery flow.
type FlowState interface {
	flowState()
}

// Idle means no recovery step has run since the last reset.
type Idle struct{}

// Working means a recovery request is in flight.
type Working struct{}

// Done is a successful step with the server's message.
type Done struct {
	Message string
}

// Failed is a failed step with the message to show.
type Failed struct {
	Message string
}

func (Idle) flowState()    {}
func (Working) flowState() {}
func (Done) flowState()    {}
func (Failed) flowState()  {}
