package usecase

import (
	"context"

	"uiu-clinic-api/internal/converter"
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/domain/repository"
	"uiu-clinic-api/internal/service"
	"uiu-clinic-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminUserUsecase interface {
	ListUsers(ctx context.Context, role string) (*dto.UserListResponse, error)
	SetActive(ctx context.Context, actor *entity.User, uiuID string, active bool) (*dto.UserResponse, error)
}

type adminUserUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewAdminUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AdminUserUsecase {
	return &adminUserUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *adminUserUsecase) ListUsers(ctx context.Context, role string) (*dto.UserListResponse, error) {
	var filter entity.UserFilter
	if role != "" {
		parsed, ok := entity.ParseRole(role)
		if !ok {
			return nil, ErrInvalidRole
		}
		filter.Role = &parsed
	}

	users, err := u.userRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, apperror.Internal("failed to list users", err)
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// SetActive activates or deactivates an account. Deactivated users can no longer log in and
// their outstanding tokens stop resolving.
func (u *adminUserUsecase) SetActive(ctx context.Context, actor *entity.User, uiuID string, active bool) (*dto.UserResponse, error) {
	if !active && actor.UIUID == uiuID {
		return nil, ErrCannotDeactivateSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByUIUID(ctx, tx, uiuID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", uiuID, err)
		return nil, apperror.Internal("failed to update user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := map[string]interface{}{"is_active": user.IsActive}
	user.IsActive = active

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", uiuID, err)
		return nil, apperror.Internal("failed to update user", err)
	}

	action := entity.AuditActionUserDeactivate
	if active {
		action = entity.AuditActionUserActivate
	}
	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, action, "user", user.UIUID, oldValue, map[string]interface{}{"is_active": active}); err != nil {
		return nil, apperror.Internal("failed to update user", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Internal("failed to update user", err)
	}

	u.log.Infof("User %s set active=%t by %s", user.UIUID, active, actor.UIUID)

	return converter.UserToResponse(user), nil
}
