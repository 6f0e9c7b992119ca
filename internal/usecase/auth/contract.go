package auth

import (
	"context"
	"time"

	"github.com/kailas-cloud/menuboard/internal/auth"
	"github.com/kailas-cloud/menuboard/internal/domain"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
)

// Repository defines the storage contract for user accounts.
type Repository interface {
	Create(ctx context.Context, u *domuser.User) error
	GetByID(ctx context.Context, id string) (domuser.User, error)
	GetByEmail(ctx context.Context, email string) (domuser.User, error)
}

// Tokens issues and verifies bearer tokens.
type Tokens interface {
	Issue(p domain.Principal) (string, time.Time, error)
	Verify(token string) (*auth.Claims, error)
}

// Passwords hashes and checks passwords.
type Passwords interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
	CompareDummy(password string)
}

// Recorder counts authentication outcomes.
type Recorder interface {
	RecordAuth(op, outcome string)
}
