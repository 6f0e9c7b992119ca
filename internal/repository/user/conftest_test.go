package user

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/menuboard/internal/db"
	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
)

const testPrefix = "menuboard:"

type mockStore struct {
	jsonSetNXFn func(ctx context.Context, key string, data []byte) error
	jsonGetFn   func(ctx context.Context, key string, paths ...string) ([]byte, error)
	getFn       func(ctx context.Context, key string) ([]byte, error)
	setNXFn     func(ctx context.Context, key string, value []byte) error
	delFn       func(ctx context.Context, keys ...string) error
}

func (m *mockStore) JSONSetNX(ctx context.Context, key string, data []byte) error {
	if m.jsonSetNXFn != nil {
		return m.jsonSetNXFn(ctx, key, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetNX(ctx context.Context, key string, value []byte) error {
	if m.setNXFn != nil {
		return m.setNXFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testPrefix), ms
}

func testUser(t *testing.T) domuser.User {
	t.Helper()
	u, err := domuser.New("u1", "Asha@Example.com", "Asha", "$2a$10$hash", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build user: %v", err)
	}
	return u
}
