package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/menuboard/internal/domain"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
	"github.com/kailas-cloud/menuboard/internal/logger"
)

// Auth operations and outcomes reported to the Recorder.
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpToken    = "token"

	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Session is the result of a successful register or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domuser.User
}

// Service handles registration, login and token authentication.
type Service struct {
	users     Repository
	tokens    Tokens
	passwords Passwords
	recorder  Recorder
	now       func() time.Time
	newID     func() string
}

// New creates an auth service.
func New(users Repository, tokens Tokens, passwords Passwords) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithRecorder attaches an outcome recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithIDGenerator overrides user id generation.
func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.newID = gen
	return s
}

// Register creates an account and signs the user in.
func (s *Service) Register(ctx context.Context, email, password, name string) (Session, error) {
	sess, err := s.register(ctx, email, password, name)
	s.record(OpRegister, err)
	return sess, err
}

func (s *Service) register(ctx context.Context, email, password, name string) (Session, error) {
	if err := domuser.ValidatePassword(password); err != nil {
		return Session{}, err
	}
	hash, err := s.passwords.Hash(password)
	if err != nil {
		return Session{}, err
	}
	u, err := domuser.New(s.newID(), email, name, hash, s.now().UTC())
	if err != nil {
		return Session{}, err
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	logger.FromContext(ctx).Info("User registered", zap.String("user_id", u.ID()))
	return s.session(u)
}

// Login verifies credentials. Unknown emails and wrong passwords both
// return domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	sess, err := s.login(ctx, email, password)
	s.record(OpLogin, err)
	return sess, err
}

func (s *Service) login(ctx context.Context, email, password string) (Session, error) {
	addr, err := domuser.NormalizeEmail(email)
	if err != nil || password == "" {
		return Session{}, domain.ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.passwords.CompareDummy(password)
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("get user: %w", err)
	}
	if err := s.passwords.Compare(u.PasswordHash(), password); err != nil {
		return Session{}, err
	}
	return s.session(u)
}

// Profile returns the account behind the principal.
func (s *Service) Profile(ctx context.Context, p domain.Principal) (domuser.User, error) {
	if p.UserID == "" {
		return domuser.User{}, domain.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return domuser.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Authenticate verifies a bearer token and reloads its user.
// Tokens of deleted users are rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.authenticate(ctx, token)
	s.record(OpToken, err)
	return p, err
}

func (s *Service) authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, err
	}
	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, fmt.Errorf("token subject %s: %w", claims.Subject, domain.ErrUnauthorized)
		}
		return domain.Principal{}, fmt.Errorf("get user: %w", err)
	}
	return u.Principal(), nil
}

func (s *Service) session(u domuser.User) (Session, error) {
	token, exp, err := s.tokens.Issue(u.Principal())
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *Service) record(op string, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordAuth(op, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrAlreadyExists):
		return OutcomeConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnauthorized):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
