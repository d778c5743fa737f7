package usecase

import (
	"context"

	"uiu-clinic-api/internal/converter"
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/domain/repository"
	"uiu-clinic-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, department string) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository) DoctorUsecase {
	return &doctorUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
	}
}

// ListDoctors returns active staff, optionally narrowed to a department.
func (u *doctorUsecase) ListDoctors(ctx context.Context, department string) (*dto.DoctorListResponse, error) {
	role := entity.RoleStaff
	doctors, err := u.userRepo.List(ctx, u.db, entity.UserFilter{
		Role:       &role,
		Department: department,
		ActiveOnly: true,
	})
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, apperror.Internal("failed to list doctors", err)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}
