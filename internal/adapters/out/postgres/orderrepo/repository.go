package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// Requires a connection opened with TranslateError so constraint violations
// arrive as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates modified within the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its delivery schedule.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrPaymentIntentConflict
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. The delivery schedule is immutable after
// creation and is not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "Schedule").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes an order; scheduled dates go with it via the FK cascade.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withSchedule(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPaymentIntentID retrieves the order created for a payment intent.
func (r *GormOrderRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*order.Order, error) {
	if paymentIntentID == "" {
		return nil, errs.NewValueIsRequiredError("paymentIntentId")
	}

	var dto OrderDTO
	err := r.withSchedule(ctx).First(&dto, "payment_intent_id = ?", paymentIntentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("paymentIntentId", paymentIntentID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveEndedBefore retrieves Active orders whose last delivery date is
// before the given day.
func (r *GormOrderRepository) GetAllActiveEndedBefore(ctx context.Context, day kernel.Day) ([]*order.Order, error) {
	if err := day.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.withSchedule(ctx).
		Find(&dtos, "status = ? AND end_date < ?", int(order.StatusActive), day.Time()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) withSchedule(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Schedule", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}
