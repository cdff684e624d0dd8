package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/dbmetrics"
	"github.com/m04kA/VetBookingService/pkg/psqlbuilder"
)

const tableName = "vet_schedules"

// Repository репозиторий шаблонов расписания врачей (по одной строке на день недели)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplate получает недельный шаблон врача.
// Для дней, которых нет в БД, подставляются значения по умолчанию.
// Существование врача не проверяется - это задача сервиса
func (r *Repository) GetTemplate(ctx context.Context, vetID int64) (*domain.WeeklyTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"break_interval_minutes",
	).
		From(tableName).
		Where(squirrel.Eq{"vet_id": vetID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	template := domain.NewDefaultTemplate(vetID)

	for rows.Next() {
		var (
			weekday int
			day     domain.DaySchedule
		)

		if err := rows.Scan(
			&weekday,
			&day.StartTime,
			&day.EndTime,
			&day.SlotDurationMinutes,
			&day.BreakIntervalMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - scan row: %v", ErrScanRow, err)
		}

		if !domain.Weekday(weekday).Valid() {
			return nil, fmt.Errorf("%w: GetTemplate - weekday=%d", ErrInvalidWeekday, weekday)
		}

		template.Days[weekday] = day
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - rows error: %v", ErrScanRow, err)
	}

	return template, nil
}

// SetDay полностью перезаписывает один день шаблона (upsert по vet_id + weekday)
func (r *Repository) SetDay(ctx context.Context, vetID int64, weekday domain.Weekday, day domain.DaySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"vet_id",
			"weekday",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"break_interval_minutes",
		).
		Values(
			vetID,
			int(weekday),
			day.StartTime,
			day.EndTime,
			day.SlotDurationMinutes,
			day.BreakIntervalMinutes,
		).
		Suffix(`ON CONFLICT (vet_id, weekday) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			break_interval_minutes = EXCLUDED.break_interval_minutes,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDay - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetDay - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// InitDefaults создает семь дней с настройками по умолчанию.
// Уже существующие дни не трогает, поэтому вызов можно повторять
func (r *Repository) InitDefaults(ctx context.Context, vetID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableName).
		Columns(
			"vet_id",
			"weekday",
			"slot_duration_minutes",
			"break_interval_minutes",
		)

	for w := domain.Monday; w <= domain.Sunday; w++ {
		day := domain.DefaultDaySchedule()
		insert = insert.Values(vetID, int(w), day.SlotDurationMinutes, day.BreakIntervalMinutes)
	}

	query, args, err := insert.Suffix("ON CONFLICT (vet_id, weekday) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: InitDefaults - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InitDefaults - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
