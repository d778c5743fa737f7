package repository

import (
	"context"
	"errors"
	"strings"

	"uiu-clinic-api/internal/domain/entity"
	domainRepo "uiu-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByUIUID(ctx context.Context, db *gorm.DB, uiuID string) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("uiu_id = ?", uiuID))
}

func (r *userRepository) FindByUIUIDAndRole(ctx context.Context, db *gorm.DB, uiuID string, role entity.Role) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("uiu_id = ? AND role = ?", uiuID, role))
}

func (r *userRepository) ExistsByUIUID(ctx context.Context, db *gorm.DB, uiuID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.User{}).Where("uiu_id = ?", uiuID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) List(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, error) {
	query := db.WithContext(ctx).Model(&entity.User{})

	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Department != "" {
		query = query.Where(`department ILIKE ? ESCAPE '\'`, containsPattern(filter.Department))
	}

	var users []entity.User
	err := query.Order("first_name ASC").Order("uiu_id ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
