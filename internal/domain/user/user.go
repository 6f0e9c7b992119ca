package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/kailas-cloud/menuboard/internal/domain"
)

// Credential limits. bcrypt ignores bytes past 72.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

// User is a registered account.
type User struct {
	id           string
	email        string
	name         string
	passwordHash string
	createdAt    time.Time
}

// New validates and creates a User with an already-hashed password.
func New(id, email, name, passwordHash string, now time.Time) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("user ID is required")
	}
	addr, err := NormalizeEmail(email)
	if err != nil {
		return User{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, domain.NewInputError("name", "is required")
	}
	if len(name) > MaxNameLength {
		return User{}, domain.NewInputError("name", fmt.Sprintf("too long (max %d)", MaxNameLength))
	}
	if passwordHash == "" {
		return User{}, fmt.Errorf("password hash is required")
	}
	return User{id: id, email: addr, name: name, passwordHash: passwordHash, createdAt: now}, nil
}

// Reconstruct creates a User without validation (storage hydration).
func Reconstruct(id, email, name, passwordHash string, createdAt time.Time) User {
	return User{id: id, email: email, name: name, passwordHash: passwordHash, createdAt: createdAt}
}

// ID returns the user identifier.
func (u *User) ID() string { return u.id }

// Email returns the normalized email address.
func (u *User) Email() string { return u.email }

// Name returns the display name.
func (u *User) Name() string { return u.name }

// PasswordHash returns the bcrypt hash.
func (u *User) PasswordHash() string { return u.passwordHash }

// CreatedAt returns the registration time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Principal returns the authenticated identity of the user.
func (u *User) Principal() domain.Principal {
	return domain.Principal{UserID: u.id, Email: u.email, Name: u.name}
}

// NormalizeEmail validates an address and lower-cases it.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.NewInputError("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewInputError("email", "must be a valid address")
	}
	return email, nil
}

// ValidatePassword checks the plaintext password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return domain.NewInputError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if len(password) > MaxPasswordLength {
		return domain.NewInputError("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordLength))
	}
	return nil
}
