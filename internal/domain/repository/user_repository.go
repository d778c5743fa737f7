package repository

import (
	"context"

	"uiu-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the identity store. Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByUIUID(ctx context.Context, db *gorm.DB, uiuID string) (*entity.User, error)
	FindByUIUIDAndRole(ctx context.Context, db *gorm.DB, uiuID string, role entity.Role) (*entity.User, error)
	ExistsByUIUID(ctx context.Context, db *gorm.DB, uiuID string) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, error)
}
