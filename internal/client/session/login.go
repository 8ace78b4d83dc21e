package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/client/validation"
	"github.com/dmitrijs2005/kotoba/internal/cryptox"
	"github.com/dmitrijs2005/kotoba/internal/observable"
)

type fieldError = observable.Value[models.Optional[string]]

func newFieldError() *fieldError {
	return observable.NewValue(models.None[string]())
}

func setFieldError(f *fieldError, msg string) {
	if msg == "" {
		f.Set(models.None[string]())
		return
	}
	f.Set(models.Some(msg))
}

// LoginController drives the sign-in screen.
type LoginController struct {
	deps Deps

	mu       sync.Mutex
	email    string
	password string

	inFlight atomic.Bool

	state       *observable.Value[AuthState]
	emailErr    *fieldError
	passwordErr *fieldError
}

func NewLoginController(deps Deps) *LoginController {
	return &LoginController{
		deps:        deps.withDefaults(),
		state:       observable.NewValue[AuthState](Initial{}),
		emailErr:    newFieldError(),
		passwordErr: newFieldError(),
	}
}

func (c *LoginController) State() *observable.Value[AuthState] { return c.state }

func (c *LoginController) EmailError() *observable.Value[models.Optional[string]] {
	return c.emailErr
}

func (c *LoginController) PasswordError() *observable.Value[models.Optional[string]] {
	return c.passwordErr
}

// UpdateUsername sets the email field and validates it.
func (c *LoginController) UpdateUsername(v string) {
	c.mu.Lock()
	c.email = v
	c.mu.Unlock()
	setFieldError(c.emailErr, validation.Email(v))
}

// UpdatePassword sets the password field and validates it.
func (c *LoginController) UpdatePassword(v string) {
	c.mu.Lock()
	c.password = v
	c.mu.Unlock()
	setFieldError(c.passwordErr, validation.Password(v))
}

// ResetAllNotifications clears both field errors and returns to Initial.
func (c *LoginController) ResetAllNotifications() {
	setFieldError(c.emailErr, "")
	setFieldError(c.passwordErr, "")
	c.state.Set(Initial{})
}

// Login signs in with the current fields and returns the terminal state.
// Invalid fields end in Error without a network call; the email error
// takes priority. Success is kept until ResetAllNotifications.
func (c *LoginController) Login(ctx context.Context) AuthState {
	if !c.inFlight.CompareAndSwap(false, true) {
		return c.state.Get()
	}
	defer c.inFlight.Store(false)

	if s, ok := c.state.Get().(Success); ok {
		return s
	}

	c.mu.Lock()
	email, password := c.email, c.password
	c.mu.Unlock()

	emailMsg, passwordMsg := validation.Email(email), validation.Password(password)
	setFieldError(c.emailErr, emailMsg)
	setFieldError(c.passwordErr, passwordMsg)
	if msg := validation.First(emailMsg, passwordMsg); msg != "" {
		return c.finish(Error{Message: msg})
	}

	c.state.Set(Loading{})

	data, err := c.deps.Auth.Login(ctx, email, cryptox.HashPassword(password))
	if err != nil {
		c.deps.Log.Info(ctx, "login failed", "email", email, "error", err)
		return c.finish(Error{Message: services.UserMessage(err)})
	}

	if err := c.deps.saveIdentity(ctx, data); err != nil {
		return c.finish(Error{Message: services.UserMessage(err)})
	}
	c.deps.syncUser(ctx, data)

	c.deps.Log.Info(ctx, "login finished", "user_id", data.UserID)
	return c.finish(Success{UserID: data.UserID, Email: data.Email})
}

func (c *LoginController) finish(s AuthState) AuthState {
	c.state.Set(s)
	return s
}
