package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/kotoba/internal/client/services"
	"github.com/dmitrijs2005/kotoba/internal/client/validation"
	"github.com/dmitrijs2005/kotoba/internal/cryptox"
	"github.com/dmitrijs2005/kotoba/internal/observable"
)

// Fallback texts when the gateway acknowledges without a message.
const (
	MsgOTPSent         = "A verification code has been sent."
	MsgOTPVerified     = "Your email has been verified."
	MsgPasswordChanged = "Your password has been changed."
	MsgNotVerified     = "Verify your email before changing the password."
)

// RecoveryController drives the forgot-password and change-password
// screens: send a code, verify it, then set a new password.
type RecoveryController struct {
	deps Deps

	mu       sync.Mutex
	verified string

	inFlight atomic.Bool
	state    *observable.Value[FlowState]
}

func NewRecoveryController(deps Deps) *RecoveryController {
	return &RecoveryController{
		deps:  deps.withDefaults(),
		state: observable.NewValue[FlowState](Idle{}),
	}
}

func (c *RecoveryController) State() *observable.Value[FlowState] { return c.state }

// VerifiedEmail returns the email confirmed by the last VerifyOTP.
func (c *RecoveryController) VerifiedEmail() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verified, c.verified != ""
}

// Reset returns to Idle and forgets the verified email.
func (c *RecoveryController) Reset() {
	c.mu.Lock()
	c.verified = ""
	c.mu.Unlock()
	c.state.Set(Idle{})
}

// run executes one step: it checks the inputs, calls fn and publishes the
// outcome. fallback replaces an empty server message.
func (c *RecoveryController) run(ctx context.Context, invalid, fallback string, fn func(ctx context.Context) (string, error)) FlowState {
	if !c.inFlight.CompareAndSwap(false, true) {
		return c.state.Get()
	}
	defer c.inFlight.Store(false)

	if invalid != "" {
		return c.finish(Failed{Message: invalid})
	}

	c.state.Set(Working{})

	msg, err := fn(ctx)
	if err != nil {
		c.deps.Log.Info(ctx, "recovery step failed", "error", err)
		return c.finish(Failed{Message: services.UserMessage(err)})
	}
	if msg == "" {
		msg = fallback
	}
	return c.finish(Done{Message: msg})
}

// SendOTP asks the gateway to send a one-time code to email.
func (c *RecoveryController) SendOTP(ctx context.Context, email string) FlowState {
	return c.run(ctx, validation.Email(email), MsgOTPSent, func(ctx context.Context) (string, error) {
		return c.deps.Auth.SendOTP(ctx, email)
	})
}

// VerifyOTP checks the code; on success email may change its password.
func (c *RecoveryController) VerifyOTP(ctx context.Context, email, otp string) FlowState {
	invalid := validation.First(validation.Email(email), validation.OTP(otp))
	return c.run(ctx, invalid, MsgOTPVerified, func(ctx context.Context) (string, error) {
		msg, err := c.deps.Auth.VerifyOTP(ctx, email, otp)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.verified = email
		c.mu.Unlock()
		return msg, nil
	})
}

// ChangePassword sets a new password for the verified email, or for the
// signed-in account when no code was verified.
func (c *RecoveryController) ChangePassword(ctx context.Context, newPassword, confirm string) FlowState {
	email, ok := c.VerifiedEmail()
	if !ok {
		email, ok = c.deps.Identity.Identity().Email.Get()
	}

	invalid := validation.First(
		validation.PasswordStrength(newPassword),
		validation.Confirm(newPassword, confirm),
	)
	if invalid == "" && !ok {
		invalid = MsgNotVerified
	}

	return c.run(ctx, invalid, MsgPasswordChanged, func(ctx context.Context) (string, error) {
		msg, err := c.deps.Auth.ChangePassword(ctx, email, cryptox.HashPassword(newPassword))
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.verified = ""
		c.mu.Unlock()
		return msg, nil
	})
}

func (c *RecoveryController) finish(s FlowState) FlowState {
	c.state.Set(s)
	return s
}
