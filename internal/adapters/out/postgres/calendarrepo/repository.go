package calendarrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/core/domain/model/calendar"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// GormCalendarRepository implements ports.CalendarRepository using GORM.
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewGormCalendarRepository creates a new GORM calendar repository.
func NewGormCalendarRepository(db *gorm.DB) *GormCalendarRepository {
	return &GormCalendarRepository{db: db}
}

// UpsertMany inserts or updates one row per day and returns the stored
// records.
func (r *GormCalendarRepository) UpsertMany(
	ctx context.Context,
	entries []*calendar.OperationalDate,
) ([]*calendar.OperationalDate, error) {
	if len(entries) == 0 {
		return nil, errs.NewValueIsRequiredError("entries")
	}

	dtos := make([]OperationalDateDTO, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		dtos = append(dtos, fromDomain(entry))
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"delivery_enabled", "notes", "set_by"}),
	}).Create(&dtos).Error
	if err != nil {
		return nil, err
	}

	stored := make([]*calendar.OperationalDate, 0, len(dtos))
	for _, dto := range dtos {
		record, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		stored = append(stored, record)
	}
	return stored, nil
}

// GetRange returns records with from <= day <= to, ascending.
func (r *GormCalendarRepository) GetRange(
	ctx context.Context,
	from, to kernel.Day,
) ([]*calendar.OperationalDate, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, errs.NewValueIsInvalidError("dateRange")
	}

	var dtos []OperationalDateDTO
	err := r.db.WithContext(ctx).
		Where("day >= ? AND day <= ?", from.Time(), to.Time()).
		Order("day ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*calendar.OperationalDate, 0, len(dtos))
	for _, dto := range dtos {
		record, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		records = append(records, record)
	}
	return records, nil
}

// GetStatus returns the record for one day. Unconfigured days yield an
// ObjectNotFoundError, which callers treat as distinct from disabled.
func (r *GormCalendarRepository) GetStatus(ctx context.Context, day kernel.Day) (*calendar.OperationalDate, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	var dto OperationalDateDTO
	err := r.db.WithContext(ctx).First(&dto, "day = ?", day.Time()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("operationalDate", day.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// IsDeliveryDay reports whether the day is configured and enabled.
func (r *GormCalendarRepository) IsDeliveryDay(ctx context.Context, day kernel.Day) (bool, error) {
	record, err := r.GetStatus(ctx, day)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.DeliveryEnabled(), nil
}
