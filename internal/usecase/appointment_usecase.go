package usecase

import (
	"context"
	"strconv"
	"time"

	"uiu-clinic-api/internal/converter"
	"uiu-clinic-api/internal/delivery/dto"
	"uiu-clinic-api/internal/domain/entity"
	"uiu-clinic-api/internal/domain/policy"
	"uiu-clinic-api/internal/domain/repository"
	"uiu-clinic-api/internal/service"
	"uiu-clinic-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentUsecase drives the appointment lifecycle. Statuses follow no transition table:
// any of the four may replace any other.
type AppointmentUsecase interface {
	Book(ctx context.Context, actor *entity.User, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, actor *entity.User, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
	policy          policy.AppointmentPolicy
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	appointmentPolicy policy.AppointmentPolicy,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
		policy:          appointmentPolicy,
	}
}

// Book creates a pending appointment with the actor as patient.
func (u *appointmentUsecase) Book(ctx context.Context, actor *entity.User, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.policy.Authorize(actor, nil, policy.ActionBook); err != nil {
		return nil, err
	}

	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.userRepo.FindByUIUIDAndRole(ctx, tx, req.DoctorID, entity.RoleStaff)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, apperror.Internal("failed to book appointment", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID: actor.ID,
		DoctorID:  doctor.ID,
		Date:      date,
		Time:      req.Time,
		Status:    entity.AppointmentStatusPending,
		Reason:    req.Reason,
		Emergency: req.Emergency,
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, apperror.Internal("failed to book appointment", err)
	}
	appointment.Patient = *actor
	appointment.Doctor = *doctor

	resp := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, &actor.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), resp); err != nil {
		return nil, apperror.Internal("failed to book appointment", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Internal("failed to book appointment", err)
	}

	u.log.Infof("Appointment %s booked by %s with %s", appointment.ID, actor.UIUID, doctor.UIUID)

	return resp, nil
}

// UpdateStatus sets any of the four statuses. Notes replace the stored notes when provided.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := u.policy.Authorize(actor, appointment, policy.ActionUpdateStatus); err != nil {
		return nil, err
	}

	status := entity.AppointmentStatus(req.Status)
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	oldValue := statusSnapshot(appointment)
	appointment.Status = status
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}

	return u.save(ctx, tx, actor, appointment, entity.AuditActionAppointmentStatusUpdate, oldValue)
}

// Cancel is idempotent: cancelling a cancelled appointment succeeds again.
func (u *appointmentUsecase) Cancel(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.find(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := u.policy.Authorize(actor, appointment, policy.ActionCancel); err != nil {
		return nil, err
	}

	oldValue := statusSnapshot(appointment)
	appointment.Cancel()

	return u.save(ctx, tx, actor, appointment, entity.AuditActionAppointmentCancel, oldValue)
}

func (u *appointmentUsecase) save(ctx context.Context, tx *gorm.DB, actor *entity.User, appointment *entity.Appointment, action string, oldValue map[string]interface{}) (*dto.AppointmentResponse, error) {
	if err := u.appointmentRepo.UpdateStatus(ctx, tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointment.ID, err)
		return nil, apperror.Internal("failed to update appointment", err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actor.ID, action, "appointment", appointment.ID.String(), oldValue, statusSnapshot(appointment)); err != nil {
		return nil, apperror.Internal("failed to update appointment", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, apperror.Internal("failed to update appointment", err)
	}

	return converter.AppointmentToResponse(appointment), nil
}

// List returns the appointments visible to actor, newest first.
func (u *appointmentUsecase) List(ctx context.Context, actor *entity.User, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	filter := u.policy.Scope(actor)

	if query != nil {
		if query.Status != "" {
			status := entity.AppointmentStatus(query.Status)
			if !status.IsValid() {
				return nil, ErrInvalidStatus
			}
			filter.Status = &status
		}
		if query.Date != "" {
			date, err := time.Parse(entity.DateLayout, query.Date)
			if err != nil {
				return nil, ErrInvalidDate
			}
			filter.Date = &date
		}
		if query.Emergency != "" {
			emergency, err := strconv.ParseBool(query.Emergency)
			if err != nil {
				return nil, ErrInvalidEmergency
			}
			filter.Emergency = &emergency
		}
	}

	appointments, err := u.appointmentRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", actor.UIUID, err)
		return nil, apperror.Internal("failed to list appointments", err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, u.db, id)
	if err != nil {
		return nil, err
	}

	if err := u.policy.Authorize(actor, appointment, policy.ActionView); err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) find(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, apperror.Internal("failed to load appointment", err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func statusSnapshot(appointment *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"status": appointment.Status,
		"notes":  appointment.Notes,
	}
}
