// Package users implements the gateway's account, password recovery and
// profile logic over an in-memory repository.
package users

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/dmitrijs2005/kotoba/internal/gateway/auth"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidOTP   = errors.New("invalid or expired code")
	ErrForbidden    = errors.New("forbidden")
)

type otpEntry struct {
	code     string
	expires  time.Time
	verified bool
}

type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	OTPTTL   time.Duration
	// OTPCode replaces the random recovery code when set.
	OTPCode string
}

type Service struct {
	repo Repository
	opts Options
	now  func() time.Time

	mu   sync.Mutex
	otps map[string]otpEntry
}

func NewService(repo Repository, opts Options) *Service {
	return &Service{
		repo: repo,
		opts: opts,
		now:  time.Now,
		otps: make(map[string]otpEntry),
	}
}

func (s *Service) session(u User) (*Session, error) {
	token, err := auth.GenerateToken(u.ID, u.Email, s.opts.Secret, s.opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

func (s *Service) Register(ctx context.Context, name, email, passwordHash string) (*Session, error) {
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Profile: models.UserProfile{
			FullName: name,
			Email:    email,
			Level:    models.LevelN5,
		},
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, email, passwordHash string) (*Session, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(passwordHash)) != 1 {
		return nil, ErrUnauthorized
	}
	return s.session(u)
}

func (s *Service) newCode() (string, error) {
	if s.opts.OTPCode != "" {
		return s.opts.OTPCode, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendOTP issues a recovery code for a known email and returns it so the
// caller can deliver it.
func (s *Service) SendOTP(ctx context.Context, email string) (string, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		return "", err
	}

	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	s.mu.Lock()
	s.otps[emailKey(email)] = otpEntry{code: code, expires: s.now().Add(s.opts.OTPTTL)}
	s.mu.Unlock()

	return code, nil
}

func (s *Service) VerifyOTP(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.otps[emailKey(email)]
	if !ok || s.now().After(e.expires) || subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		return ErrInvalidOTP
	}

	e.verified = true
	s.otps[emailKey(email)] = e
	return nil
}

// ChangePassword is allowed after a verified code for email, or for the
// account's own bearer (callerID).
func (s *Service) ChangePassword(ctx context.Context, email, passwordHash, callerID string) error {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	s.mu.Lock()
	e, ok := s.otps[emailKey(email)]
	verified := ok && e.verified && !s.now().After(e.expires)
	if verified {
		delete(s.otps, emailKey(email))
	}
	s.mu.Unlock()

	if !verified && callerID != u.ID {
		return ErrForbidden
	}

	u.PasswordHash = passwordHash
	return s.repo.Update(ctx, u)
}

func (s *Service) Profile(ctx context.Context, id string) (models.UserProfile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.UserProfile{}, err
	}
	return u.Profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id, displayName, email, phone string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	u.Name = displayName
	u.Email = email
	u.Profile.FullName = displayName
	u.Profile.Email = email
	u.Profile.Phone = phone
	return s.repo.Update(ctx, u)
}

// SetAvatar stores a JPEG image; url is where it will be served.
func (s *Service) SetAvatar(ctx context.Context, id string, image []byte, url string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	u.Avatar = image
	u.Profile.AvatarURL = &url
	return s.repo.Update(ctx, u)
}

func (s *Service) Avatar(ctx context.Context, id string) ([]byte, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(u.Avatar) == 0 {
		return nil, ErrNotFound
	}
	return u.Avatar, nil
}
