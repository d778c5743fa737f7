package usecase

import (
	"context"
	"time"

	"uiu-clinic-api/internal/converter"
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/domain/repository"
	"uiu-clinic-api/internal/service"
	"uiu-clinic-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, actor *entity.User) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, actor *entity.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type profileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, actor *entity.User) (*dto.UserResponse, error) {
	return converter.UserToResponse(actor), nil
}

// UpdateProfile edits the caller's own record. UIU ID and role never change.
func (u *profileUsecase) UpdateProfile(ctx context.Context, actor *entity.User, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", actor.UIUID, err)
		return nil, apperror.Internal("failed to update profile", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := converter.UserToResponse(user)

	if req.Name != "" {
		user.SetFullName(req.Name)
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Department != "" {
		user.Department = req.Department
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(entity.DateLayout, req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		user.DateOfBirth = &dob
	}
	if req.BloodGroup != "" {
		user.BloodGroup = req.BloodGroup
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.EmergencyContact != "" {
		user.EmergencyContact = req.EmergencyContact
	}
	if req.Password != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
			return nil, ErrWrongPassword
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, apperror.Internal("failed to update profile", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", user.UIUID, err)
		return nil, apperror.Internal("failed to update profile", err)
	}

	newValue := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, &user.ID, entity.AuditActionProfileUpdate, "user", user.UIUID, oldValue, newValue); err != nil {
		return nil, apperror.Internal("failed to update profile", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Internal("failed to update profile", err)
	}

	return newValue, nil
}
