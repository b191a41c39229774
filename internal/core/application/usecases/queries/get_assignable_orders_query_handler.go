package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetAssignableOrdersQueryHandler lists active orders that have no driver
// yet, earliest delivery window first.
type GetAssignableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignableOrdersQueryHandler creates a handler for assignment-pool reads.
func NewGetAssignableOrdersQueryHandler(db *gorm.DB) GetAssignableOrdersQueryHandler {
	return GetAssignableOrdersQueryHandler{db: db}
}

// Handle executes the pool listing. No matching orders yields an empty
// slice, not an error.
func (h GetAssignableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignableOrdersQuery,
) ([]GetAssignableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.order_number,
			c.name,
			o.address_street, o.address_city, o.address_state, o.address_postal_code,
			o.address_latitude, o.address_longitude,
			o.start_date, o.end_date
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.driver_id IS NULL
		  AND o.delivery_status = ?
		  AND o.status = ?
		ORDER BY o.start_date ASC, o.order_number ASC
	`, int(order.PendingAssignment), int(order.StatusActive)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetAssignableOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp      GetAssignableOrdersQueryResponse
			id        uuid.UUID
			startDate sql.NullTime
			endDate   sql.NullTime
		)

		err = rows.Scan(
			&id, &resp.OrderNumber,
			&resp.CustomerName,
			&resp.Address.Street, &resp.Address.City, &resp.Address.State, &resp.Address.PostalCode,
			&resp.Address.Latitude, &resp.Address.Longitude,
			&startDate, &endDate,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if startDate.Valid {
			resp.StartDate = kernel.DayOf(startDate.Time)
		}
		if endDate.Valid {
			resp.EndDate = kernel.DayOf(endDate.Time)
		}

		responses = append(responses, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
