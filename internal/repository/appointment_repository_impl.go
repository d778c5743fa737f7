package repository

import (
	"context"
	"errors"
	"time"

	"uiu-clinic-api/internal/domain/entity"
	domainRepo "uiu-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// List applies every non-nil filter field as an equality condition, most recent first.
func (r *appointmentRepository) List(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.WithContext(ctx).Preload("Patient").Preload("Doctor")

	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", filter.Date.Format(entity.DateLayout))
	}
	if filter.Emergency != nil {
		query = query.Where("emergency = ?", *filter.Emergency)
	}

	var appointments []entity.Appointment
	err := query.Order("date DESC").Order("time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus writes status and notes only. Concurrent writers are last-writer-wins.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	appointment.UpdatedAt = time.Now()
	return db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", appointment.ID).
		Updates(map[string]interface{}{
			"status":     appointment.Status,
			"notes":      appointment.Notes,
			"updated_at": appointment.UpdatedAt,
		}).Error
}
