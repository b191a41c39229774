// Package calendarrepo persists the operational calendar with GORM.
// One row per day; rows are upserted and never deleted.
package calendarrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/calendar"
	"fulfillment/internal/core/domain/model/kernel"
)

// OperationalDateDTO is the database representation of one calendar day.
// The day itself is the primary key.
type OperationalDateDTO struct {
	Day             time.Time `gorm:"primaryKey"`
	DeliveryEnabled bool      `gorm:"not null"`
	Notes           string
	SetBy           uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName overrides GORM's default naming to use "operational_dates".
func (OperationalDateDTO) TableName() string {
	return "operational_dates"
}

func fromDomain(record *calendar.OperationalDate) OperationalDateDTO {
	return OperationalDateDTO{
		Day:             record.Day().Time(),
		DeliveryEnabled: record.DeliveryEnabled(),
		Notes:           record.Notes(),
		SetBy:           record.SetBy().Bytes(),
	}
}

func toDomain(dto OperationalDateDTO) (*calendar.OperationalDate, error) {
	setBy, err := kernel.UUIDFromBytes(dto.SetBy[:])
	if err != nil {
		return nil, err
	}
	return calendar.RestoreOperationalDate(kernel.DayOf(dto.Day), dto.DeliveryEnabled, dto.Notes, setBy)
}
