package vet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/dbmetrics"
	"github.com/m04kA/VetBookingService/pkg/psqlbuilder"
)

const (
	vetsTable      = "vets"
	typesTable     = "vet_appointment_types"
	upsertTypeTail = `ON CONFLICT (vet_id, appointment_type) DO UPDATE SET
			fee = EXCLUDED.fee,
			enabled = EXCLUDED.enabled,
			updated_at = NOW()`
)

// Repository репозиторий врачей и их настроек типов приема
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает врача. Если врач уже есть, возвращает существующую запись
func (r *Repository) Create(ctx context.Context, vet *domain.Vet) (*domain.Vet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(vetsTable).
		Columns("id", "name").
		Values(vet.ID, vet.Name).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, vet.ID)
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at", "updated_at").
		From(vetsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var vet domain.Vet
	err = executor.QueryRowContext(ctx, query, args...).Scan(&vet.ID, &vet.Name, &vet.CreatedAt, &vet.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vet: %v", ErrScanRow, err)
	}

	return &vet, nil
}

// Exists проверяет, зарегистрирован ли врач
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(vetsTable).
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetAppointmentTypes получает настройки всех типов приема врача
func (r *Repository) GetAppointmentTypes(ctx context.Context, vetID int64) ([]domain.AppointmentTypeSetting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("vet_id", "appointment_type", "fee", "enabled").
		From(typesTable).
		Where(squirrel.Eq{"vet_id": vetID}).
		OrderBy("appointment_type ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	settings := make([]domain.AppointmentTypeSetting, 0, len(domain.AllAppointmentTypes))
	for rows.Next() {
		var s domain.AppointmentTypeSetting
		if err := rows.Scan(&s.VetID, &s.Type, &s.Fee, &s.Enabled); err != nil {
			return nil, fmt.Errorf("%w: GetAppointmentTypes - scan row: %v", ErrScanRow, err)
		}
		settings = append(settings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentTypes - rows error: %v", ErrScanRow, err)
	}

	return settings, nil
}

// GetAppointmentType получает настройку одного типа приема
func (r *Repository) GetAppointmentType(ctx context.Context, vetID int64, appointmentType domain.AppointmentType) (*domain.AppointmentTypeSetting, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("vet_id", "appointment_type", "fee", "enabled").
		From(typesTable).
		Where(squirrel.Eq{"vet_id": vetID, "appointment_type": string(appointmentType)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentType - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.AppointmentTypeSetting
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.VetID, &s.Type, &s.Fee, &s.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentType - scan row: %v", ErrScanRow, err)
	}

	return &s, nil
}

// UpsertAppointmentType сохраняет стоимость и доступность типа приема
func (r *Repository) UpsertAppointmentType(ctx context.Context, setting domain.AppointmentTypeSetting) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(typesTable).
		Columns("vet_id", "appointment_type", "fee", "enabled").
		Values(setting.VetID, string(setting.Type), setting.Fee, setting.Enabled).
		Suffix(upsertTypeTail).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertAppointmentType - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertAppointmentType - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// InitAppointmentTypes создает настройки по умолчанию для всех типов приема.
// Существующие настройки не перезаписываются
func (r *Repository) InitAppointmentTypes(ctx context.Context, vetID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(typesTable).Columns("vet_id", "appointment_type", "fee", "enabled")
	for _, s := range domain.DefaultAppointmentTypeSettings(vetID) {
		insert = insert.Values(s.VetID, string(s.Type), s.Fee, s.Enabled)
	}

	query, args, err := insert.Suffix("ON CONFLICT (vet_id, appointment_type) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: InitAppointmentTypes - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InitAppointmentTypes - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
