package user

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/menuboard/internal/db"
	"github.com/kailas-cloud/menuboard/internal/domain"
)

func TestCreate_ClaimsEmailThenStores(t *testing.T) {
	repo, ms := newTestRepo(t)
	u := testUser(t)

	var order []string
	ms.setNXFn = func(_ context.Context, key string, value []byte) error {
		order = append(order, key)
		if string(value) != "u1" {
			t.Errorf("email key value = %q", value)
		}
		return nil
	}
	var stored userDoc
	ms.jsonSetNXFn = func(_ context.Context, key string, data []byte) error {
		order = append(order, key)
		return json.Unmarshal(data, &stored)
	}

	if err := repo.Create(context.Background(), &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"menuboard:user:email:asha@example.com", "menuboard:user:u1"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("key order = %v", order)
	}
	if stored.PasswordHash != "$2a$10$hash" || stored.Email != "asha@example.com" {
		t.Errorf("unexpected doc: %+v", stored)
	}
}

func TestCreate_EmailTaken(t *testing.T) {
	repo, ms := newTestRepo(t)
	u := testUser(t)
	ms.setNXFn = func(_ context.Context, _ string, _ []byte) error { return db.ErrKeyExists }
	ms.jsonSetNXFn = func(_ context.Context, _ string, _ []byte) error {
		t.Fatal("document must not be written")
		return nil
	}
	if err := repo.Create(context.Background(), &u); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreate_ReleasesEmailOnFailure(t *testing.T) {
	repo, ms := newTestRepo(t)
	u := testUser(t)
	ms.jsonSetNXFn = func(_ context.Context, _ string, _ []byte) error { return errors.New("write failed") }
	var released []string
	ms.delFn = func(_ context.Context, keys ...string) error {
		released = keys
		return nil
	}

	if err := repo.Create(context.Background(), &u); err == nil {
		t.Fatal("expected error")
	}
	if len(released) != 1 || released[0] != "menuboard:user:email:asha@example.com" {
		t.Errorf("released = %v", released)
	}
}

func TestCreate_ReleaseFailureJoined(t *testing.T) {
	repo, ms := newTestRepo(t)
	u := testUser(t)
	ms.jsonSetNXFn = func(_ context.Context, _ string, _ []byte) error { return db.ErrKeyExists }
	ms.delFn = func(_ context.Context, _ ...string) error { return errors.New("del failed") }

	err := repo.Create(context.Background(), &u)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists in chain, got %v", err)
	}
}

func TestGetByEmail(t *testing.T) {
	repo, ms := newTestRepo(t)
	u := testUser(t)
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if key != "menuboard:user:email:asha@example.com" {
			t.Errorf("unexpected key: %s", key)
		}
		return []byte("u1"), nil
	}
	ms.jsonGetFn = func(_ context.Context, key string, _ ...string) ([]byte, error) {
		if key != "menuboard:user:u1" {
			t.Errorf("unexpected key: %s", key)
		}
		return json.Marshal([]userDoc{toDoc(&u)})
	}

	got, err := repo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != "u1" || got.Name() != "Asha" || !got.CreatedAt().Equal(u.CreatedAt()) {
		t.Errorf("unexpected user: %s %s %v", got.ID(), got.Name(), got.CreatedAt())
	}
}

func TestGetByEmail_Unknown(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.GetByID(context.Background(), "u9"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
