package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/menuboard/internal/db"
	"github.com/kailas-cloud/menuboard/internal/domain"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
)

// store is the consumer interface for user accounts (ISP).
type store interface {
	JSONSetNX(ctx context.Context, key string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, keys ...string) error
}

// Repo implements usecase/auth.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a user repository. keyPrefix namespaces all keys (e.g. "menuboard:").
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Create registers a user. The email index key is claimed first so two
// concurrent sign-ups with one address cannot both succeed.
func (r *Repo) Create(ctx context.Context, u *domuser.User) error {
	emailKey := r.emailKey(u.Email())
	if err := r.store.SetNX(ctx, emailKey, []byte(u.ID())); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("claim email %s: %w", emailKey, err)
	}

	data, err := json.Marshal(toDoc(u))
	if err != nil {
		return r.release(ctx, emailKey, fmt.Errorf("marshal user: %w", err))
	}
	if err := r.store.JSONSetNX(ctx, r.userKey(u.ID()), data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			err = domain.ErrAlreadyExists
		} else {
			err = fmt.Errorf("json.set nx %s: %w", r.userKey(u.ID()), err)
		}
		return r.release(ctx, emailKey, err)
	}
	return nil
}

// release drops a claimed email key after a failed registration.
func (r *Repo) release(ctx context.Context, emailKey string, cause error) error {
	if err := r.store.Del(ctx, emailKey); err != nil {
		return errors.Join(cause, fmt.Errorf("release email %s: %w", emailKey, err))
	}
	return cause
}

// GetByID returns a user by id.
func (r *Repo) GetByID(ctx context.Context, id string) (domuser.User, error) {
	key := r.userKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	var docs []userDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domuser.User{}, fmt.Errorf("unmarshal user %s: %w", id, err)
	}
	if len(docs) == 0 {
		return domuser.User{}, domain.ErrUserNotFound
	}
	return fromDoc(&docs[0]), nil
}

// GetByEmail resolves an already-normalized address to its user.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domuser.User, error) {
	key := r.emailKey(email)
	id, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, fmt.Errorf("get %s: %w", key, err)
	}
	return r.GetByID(ctx, string(id))
}

// Key layout: {prefix}user:{id}, {prefix}user:email:{email} -> id

func (r *Repo) userKey(id string) string {
	return r.prefix + "user:" + id
}

func (r *Repo) emailKey(email string) string {
	return r.prefix + "user:email:" + email
}
