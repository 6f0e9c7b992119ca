package user

import (
	"time"

	domuser "github.com/kailas-cloud/menuboard/internal/domain/user"
)

type userDoc struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    int64  `json:"created_at"` // unix millis
}

func toDoc(u *domuser.User) userDoc {
	return userDoc{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		CreatedAt:    u.CreatedAt().UnixMilli(),
	}
}

func fromDoc(d *userDoc) domuser.User {
	return domuser.Reconstruct(d.ID, d.Email, d.Name, d.PasswordHash, time.UnixMilli(d.CreatedAt).UTC())
}
