package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/dbmetrics"
	"github.com/m04kA/VetBookingService/pkg/types"
)

const (
	keyPrefix        = "vetbooking:schedule:"
	versionKeySuffix = ":version"
)

var errStaleRead = errors.New("schedule cache: template changed during read")

// TemplateStore источник шаблонов (репозиторий Postgres)
type TemplateStore interface {
	GetTemplate(ctx context.Context, vetID int64) (*domain.WeeklyTemplate, error)
	SetDay(ctx context.Context, vetID int64, weekday domain.Weekday, day domain.DaySchedule) error
	InitDefaults(ctx context.Context, vetID int64) error
}

// Metrics счетчик попаданий в кэш
type Metrics interface {
	ObserveTemplateCache(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Repository кэширует шаблоны расписания в Redis поверх TemplateStore (cache-aside).
// Любая запись в шаблон увеличивает версию врача и сбрасывает ключ после фиксации транзакции.
// Чтение кладет шаблон в кэш только если версия не менялась с начала чтения.
// Недоступность Redis не ломает чтение: запрос уходит в хранилище
type Repository struct {
	store   TemplateStore
	client  redis.UniversalClient
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewRepository создает кэширующий репозиторий
func NewRepository(store TemplateStore, client redis.UniversalClient, ttl time.Duration, metrics Metrics, logger Logger) *Repository {
	return &Repository{
		store:   store,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// GetTemplate отдает шаблон из кэша или из хранилища с последующим сохранением в кэш
func (r *Repository) GetTemplate(ctx context.Context, vetID int64) (*domain.WeeklyTemplate, error) {
	data, err := r.client.Get(ctx, key(vetID)).Bytes()
	switch {
	case err == nil:
		template, decodeErr := decode(vetID, data)
		if decodeErr == nil {
			r.observe(true)
			return template, nil
		}
		r.logger.Warn("ScheduleCache: corrupted entry for vet_id=%d: %v", vetID, decodeErr)
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("ScheduleCache: get failed for vet_id=%d: %v", vetID, err)
	}
	r.observe(false)

	version, versionErr := r.version(ctx, r.client, vetID)

	template, err := r.store.GetTemplate(ctx, vetID)
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		r.fill(ctx, vetID, version, template)
	}

	return template, nil
}

// fill сохраняет шаблон, если версия врача не изменилась с момента чтения
func (r *Repository) fill(ctx context.Context, vetID int64, version int64, template *domain.WeeklyTemplate) {
	encoded, err := encode(template)
	if err != nil {
		return
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.version(ctx, tx, vetID)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleRead
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key(vetID), encoded, r.ttl)
			return nil
		})
		return err
	}, versionKey(vetID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleRead), errors.Is(err, redis.TxFailedErr):
		r.logger.Info("ScheduleCache: skip fill for vet_id=%d, template changed", vetID)
	default:
		r.logger.Warn("ScheduleCache: set failed for vet_id=%d: %v", vetID, err)
	}
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *Repository) version(ctx context.Context, client stringGetter, vetID int64) (int64, error) {
	v, err := client.Get(ctx, versionKey(vetID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetDay пишет день в хранилище и сбрасывает кэш врача
func (r *Repository) SetDay(ctx context.Context, vetID int64, weekday domain.Weekday, day domain.DaySchedule) error {
	if err := r.store.SetDay(ctx, vetID, weekday, day); err != nil {
		return err
	}
	r.invalidate(ctx, vetID)
	return nil
}

// InitDefaults создает шаблон по умолчанию и сбрасывает кэш врача
func (r *Repository) InitDefaults(ctx context.Context, vetID int64) error {
	if err := r.store.InitDefaults(ctx, vetID); err != nil {
		return err
	}
	r.invalidate(ctx, vetID)
	return nil
}

// invalidate сбрасывает ключ врача после фиксации транзакции (или сразу, если ее нет)
func (r *Repository) invalidate(ctx context.Context, vetID int64) {
	ctx = context.WithoutCancel(ctx)
	dbmetrics.AfterCommit(ctx, func() {
		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Incr(ctx, versionKey(vetID))
			pipe.Del(ctx, key(vetID))
			return nil
		})
		if err != nil {
			r.logger.Error("ScheduleCache: invalidate failed for vet_id=%d: %v", vetID, err)
		}
	})
}

func (r *Repository) observe(hit bool) {
	if r.metrics != nil {
		r.metrics.ObserveTemplateCache(hit)
	}
}

func key(vetID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, vetID)
}

func versionKey(vetID int64) string {
	return key(vetID) + versionKeySuffix
}

type cachedDay struct {
	StartTime            string `json:"startTime,omitempty"`
	EndTime              string `json:"endTime,omitempty"`
	SlotDurationMinutes  int    `json:"slotDurationMinutes"`
	BreakIntervalMinutes int    `json:"breakIntervalMinutes"`
}

func encode(t *domain.WeeklyTemplate) ([]byte, error) {
	days := make([]cachedDay, domain.DaysInWeek)
	for i, d := range t.Days {
		days[i] = cachedDay{
			StartTime:            d.StartTime.String(),
			EndTime:              d.EndTime.String(),
			SlotDurationMinutes:  d.SlotDurationMinutes,
			BreakIntervalMinutes: d.BreakIntervalMinutes,
		}
	}
	return json.Marshal(days)
}

func decode(vetID int64, data []byte) (*domain.WeeklyTemplate, error) {
	var days []cachedDay
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, err
	}
	if len(days) != domain.DaysInWeek {
		return nil, fmt.Errorf("expected %d days, got %d", domain.DaysInWeek, len(days))
	}

	t := &domain.WeeklyTemplate{VetID: vetID}
	for i, d := range days {
		t.Days[i] = domain.DaySchedule{
			StartTime:            types.TimeString(d.StartTime),
			EndTime:              types.TimeString(d.EndTime),
			SlotDurationMinutes:  d.SlotDurationMinutes,
			BreakIntervalMinutes: d.BreakIntervalMinutes,
		}
	}
	return t, nil
}
