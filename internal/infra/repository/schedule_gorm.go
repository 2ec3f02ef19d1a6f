package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/odontosys/clinic-api/internal/domain/schedule"
	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *ScheduleGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Service / Professional
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	clinicID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", serviceID, clinicID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ScheduleGormRepository) GetProfessional(
	ctx context.Context,
	clinicID uint,
	professionalID uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", professionalID, clinicID).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	clinicID uint,
	name string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND phone = ?", clinicID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		ClinicID: clinicID,
		Name:     name,
		Phone:    phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Associações profissional x serviço
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAssociationsByProfessional(
	ctx context.Context,
	professionalID uint,
) ([]models.ProfessionalService, error) {

	var assocs []models.ProfessionalService
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Where("professional_id = ?", professionalID).
		Order("service_id ASC").
		Find(&assocs).Error; err != nil {
		return nil, err
	}

	return assocs, nil
}

func (r *ScheduleGormRepository) ListAssociationsByService(
	ctx context.Context,
	serviceID uint,
	onlyActive bool,
) ([]models.ProfessionalService, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Professional").
		Where("service_id = ?", serviceID)

	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var assocs []models.ProfessionalService
	if err := q.Order("professional_id ASC").Find(&assocs).Error; err != nil {
		return nil, err
	}

	return assocs, nil
}

func (r *ScheduleGormRepository) GetAssociation(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.ProfessionalService, error) {

	var assoc models.ProfessionalService
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND service_id = ?", professionalID, serviceID).
		First(&assoc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// ausência esperada, não é falha de banco
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &assoc, nil
}

func (r *ScheduleGormRepository) HasAssociations(
	ctx context.Context,
	professionalID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProfessionalService{}).
		Where("professional_id = ?", professionalID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ScheduleGormRepository) CreateAssociation(
	ctx context.Context,
	assoc *models.ProfessionalService,
) error {

	err := r.db.WithContext(ctx).Create(assoc).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("duplicate_association")
	}
	return err
}

func (r *ScheduleGormRepository) UpdateAssociation(
	ctx context.Context,
	assoc *models.ProfessionalService,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.ProfessionalService{}).
		Where("id = ? AND version = ?", assoc.ID, assoc.Version).
		Updates(map[string]any{
			"custom_duration_minutes": assoc.CustomDurationMinutes,
			"is_active":               assoc.IsActive,
			"version":                 assoc.Version + 1,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("version_conflict")
	}

	assoc.Version++
	return nil
}

func (r *ScheduleGormRepository) DeleteAssociation(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.ProfessionalService{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("association_not_found")
	}
	return nil
}

func (r *ScheduleGormRepository) GetDuration(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*int, error) {

	assoc, err := r.GetAssociation(ctx, professionalID, serviceID)
	if err != nil {
		return nil, err
	}

	return domain.AssociationDuration(assoc), nil
}

func (r *ScheduleGormRepository) CanProfessionalPerformService(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (bool, error) {

	assoc, err := r.GetAssociation(ctx, professionalID, serviceID)
	if err != nil {
		return false, err
	}

	return domain.CanPerform(assoc), nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// ScheduleAppointment resolve a duração efetiva, verifica sobreposição de
// intervalo (comparação meio-aberta, com lock) e insere — uma transação só.
func (r *ScheduleGormRepository) ScheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var svc models.Service
		if err := tx.
			Where("id = ? AND clinic_id = ?", ap.ServiceID, ap.ClinicID).
			First(&svc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("service_not_found")
			}
			return err
		}
		if !svc.Active {
			return httperr.ErrBusiness("service_inactive")
		}

		var assocCount int64
		if err := tx.Model(&models.ProfessionalService{}).
			Where("professional_id = ?", ap.ProfessionalID).
			Count(&assocCount).Error; err != nil {
			return err
		}

		var assoc *models.ProfessionalService
		if assocCount > 0 {
			var a models.ProfessionalService
			err := tx.
				Where(
					"professional_id = ? AND service_id = ? AND is_active = ?",
					ap.ProfessionalID, ap.ServiceID, true,
				).
				First(&a).Error
			if err == nil {
				assoc = &a
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		duration, err := domain.ResolveDuration(assocCount > 0, assoc, &svc)
		if err != nil {
			return err
		}
		ap.EndTime = domain.EndTime(ap.StartTime, duration)

		var conflicts int64
		if err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"professional_id = ? AND status = 'scheduled' AND start_time < ? AND end_time > ?",
				ap.ProfessionalID,
				ap.EndTime,
				ap.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

func (r *ScheduleGormRepository) GetAppointmentForClinic(
	ctx context.Context,
	appointmentID uint,
	clinicID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", appointmentID, clinicID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND version = ?", ap.ID, ap.Version).
		Updates(map[string]any{
			"status":       ap.Status,
			"notes":        ap.Notes,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"reminded_at":  ap.RemindedAt,
			"version":      ap.Version + 1,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("version_conflict")
	}

	ap.Version++
	return nil
}

// DeleteAppointment recarrega a linha com lock e avalia as guardas
// (agendamento no passado, trava do cliente) na mesma transação do delete.
func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
	clinicID uint,
	now time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ap models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND clinic_id = ?", appointmentID, clinicID).
			First(&ap).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		var client models.Client
		if err := tx.First(&client, ap.ClientID).Error; err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := domain.CanDelete(&ap, &client, now); err != nil {
			return err
		}

		return tx.Delete(&ap).Error
	})
}

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"professional_id = ? AND status = 'scheduled' AND start_time >= ? AND start_time < ?",
			professionalID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *ScheduleGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicID uint,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where(
			"clinic_id = ? AND start_time >= ? AND start_time < ?",
			clinicID, start, end,
		)

	if professionalID != 0 {
		q = q.Where("professional_id = ?", professionalID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
