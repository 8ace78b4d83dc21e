package session

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/client/validation"
	"github.com/dmitrijs2005/kotoba/internal/cryptox"
	"github.com/dmitrijs2005/kotoba/internal/observable"
)

// RegisterController drives the sign-up screen. The password is checked
// with the aggregated strength rule.
type RegisterController struct {
	deps Deps

	mu                             sync.Mutex
	name, email, password, confirm string

	inFlight atomic.Bool

	state       *observable.Value[AuthState]
	nameErr     *fieldError
	emailErr    *fieldError
	passwordErr *fieldError
	confirmErr  *fieldError
}

func NewRegisterController(deps Deps) *RegisterController {
	return &RegisterController{
		deps:        deps.withDefaults(),
		state:       observable.NewValue[AuthState](Initial{}),
		nameErr:     newFieldError(),
		emailErr:    newFieldError(),
		passwordErr: newFieldError(),
		confirmErr:  newFieldError(),
	}
}

func (c *RegisterController) State() *observable.Value[AuthState] { return c.state }

func (c *RegisterController) NameError() *observable.Value[models.Optional[string]] {
	return c.nameErr
}

func (c *RegisterController) EmailError() *observable.Value[models.Optional[string]] {
	return c.emailErr
}

func (c *RegisterController) PasswordError() *observable.Value[models.Optional[string]] {
	return c.passwordErr
}

func (c *RegisterController) ConfirmError() *observable.Value[models.Optional[string]] {
	return c.confirmErr
}

func (c *RegisterController) UpdateName(v string) {
	c.mu.Lock()
	c.name = v
	c.mu.Unlock()
	setFieldError(c.nameErr, validation.Name(v))
}

func (c *RegisterController) UpdateEmail(v string) {
	c.mu.Lock()
	c.email = v
	c.mu.Unlock()
	setFieldError(c.emailErr, validation.Email(v))
}

// UpdatePassword also re-checks the confirmation when one was entered.
func (c *RegisterController) UpdatePassword(v string) {
	c.mu.Lock()
	c.password = v
	confirm := c.confirm
	c.mu.Unlock()
	setFieldError(c.passwordErr, validation.PasswordStrength(v))
	if confirm != "" {
		setFieldError(c.confirmErr, validation.Confirm(v, confirm))
	}
}

func (c *RegisterController) UpdateConfirm(v string) {
	c.mu.Lock()
	c.confirm = v
	password := c.password
	c.mu.Unlock()
	setFieldError(c.confirmErr, validation.Confirm(password, v))
}

// ResetAllNotifications clears every field error and returns to Initial.
func (c *RegisterController) ResetAllNotifications() {
	for _, f := range []*fieldError{c.nameErr, c.emailErr, c.passwordErr, c.confirmErr} {
		setFieldError(f, "")
	}
	c.state.Set(Initial{})
}

// Register creates the account, records it locally and signs in.
func (c *RegisterController) Register(ctx context.Context) AuthState {
	if !c.inFlight.CompareAndSwap(false, true) {
		return c.state.Get()
	}
	defer c.inFlight.Store(false)

	if s, ok := c.state.Get().(Success); ok {
		return s
	}

	c.mu.Lock()
	name, email, password, confirm := strings.TrimSpace(c.name), c.email, c.password, c.confirm
	c.mu.Unlock()

	msgs := []string{
		validation.Name(name),
		validation.Email(email),
		validation.PasswordStrength(password),
		validation.Confirm(password, confirm),
	}
	setFieldError(c.nameErr, msgs[0])
	setFieldError(c.emailErr, msgs[1])
	setFieldError(c.passwordErr, msgs[2])
	setFieldError(c.confirmErr, msgs[3])
	if msg := validation.First(msgs...); msg != "" {
		return c.finish(Error{Message: msg})
	}

	c.state.Set(Loading{})

	data, err := c.deps.Auth.Register(ctx, name, email, cryptox.HashPassword(password))
	if err != nil {
		c.deps.Log.Info(ctx, "registration failed", "email", email, "error", err)
		return c.finish(Error{Message: services.UserMessage(err)})
	}

	c.deps.syncUser(ctx, data)
	if err := c.deps.saveIdentity(ctx, data); err != nil {
		return c.finish(Error{Message: services.UserMessage(err)})
	}

	c.deps.Log.Info(ctx, "registration finished", "user_id", data.UserID)
	return c.finish(Success{UserID: data.UserID, Email: data.Email})
}

func (c *RegisterController) finish(s AuthState) AuthState {
	c.state.Set(s)
	return s
}
