package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
)

// GetOperationalDatesQueryHandler reads calendar records for a date range.
// Only configured days appear; gaps mean "not configured".
type GetOperationalDatesQueryHandler struct {
	db *gorm.DB
}

// NewGetOperationalDatesQueryHandler creates a handler for calendar reads.
func NewGetOperationalDatesQueryHandler(db *gorm.DB) GetOperationalDatesQueryHandler {
	return GetOperationalDatesQueryHandler{db: db}
}

// Handle executes the range query, ascending by day.
func (h GetOperationalDatesQueryHandler) Handle(
	ctx context.Context,
	query GetOperationalDatesQuery,
) ([]GetOperationalDatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT day, delivery_enabled, notes, set_by
		FROM operational_dates
		WHERE day >= ? AND day <= ?
		ORDER BY day
	`, query.From().Time(), query.To().Time()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetOperationalDatesQueryResponse, 0)
	for rows.Next() {
		var (
			resp  GetOperationalDatesQueryResponse
			day   sql.NullTime
			setBy uuid.UUID
		)

		if err = rows.Scan(&day, &resp.DeliveryEnabled, &resp.Notes, &setBy); err != nil {
			return nil, err
		}

		if day.Valid {
			resp.Day = kernel.DayOf(day.Time)
		}
		if resp.SetBy, err = kernel.UUIDFromBytes(setBy[:]); err != nil {
			return nil, err
		}

		responses = append(responses, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
