package usecase

import (
	"context"
	"strconv"

	"uiu-clinic-api/internal/converter"
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/domain/repository"
	"uiu-clinic-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultAuditLogLimit = 100
	maxAuditLogLimit     = 500
)

// AuditLogUsecase serves the admin view of the audit trail.
type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
	userRepo     repository.UserRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
	userRepo repository.UserRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
		userRepo:     userRepo,
	}
}

// ListAuditLogs returns the newest entries, optionally narrowed to one action, one acting user
// (by UIU ID) or the history of one appointment.
func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error) {
	filter, err := u.filterFrom(ctx, query)
	if err != nil {
		return nil, err
	}

	logs, err := u.auditLogRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, apperror.Internal("failed to load audit logs", err)
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) filterFrom(ctx context.Context, query *dto.AuditLogListQuery) (entity.AuditLogFilter, error) {
	filter := entity.AuditLogFilter{Limit: defaultAuditLogLimit}
	if query == nil {
		return filter, nil
	}

	if query.Action != "" {
		if !entity.IsAuditAction(query.Action) {
			return filter, ErrInvalidAuditAction
		}
		filter.Action = query.Action
	}

	if query.AppointmentID != "" {
		id, err := uuid.Parse(query.AppointmentID)
		if err != nil {
			return filter, ErrInvalidAppointmentID
		}
		filter.Entity = "appointment"
		filter.EntityID = id.String()
	}

	if query.Limit != "" {
		limit, err := strconv.Atoi(query.Limit)
		if err != nil || limit < 1 || limit > maxAuditLogLimit {
			return filter, ErrInvalidLimit
		}
		filter.Limit = limit
	}

	if query.UIUID != "" {
		user, err := u.userRepo.FindByUIUID(ctx, u.db, query.UIUID)
		if err != nil {
			u.log.Warnf("Failed to find user %s: %+v", query.UIUID, err)
			return filter, apperror.Internal("failed to load audit logs", err)
		}
		if user == nil {
			return filter, ErrUserNotFound
		}
		filter.UserID = &user.ID
	}

	return filter, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, apperror.Internal("failed to load audit log", err)
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
