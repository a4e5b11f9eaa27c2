package repository

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios administrativos.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
