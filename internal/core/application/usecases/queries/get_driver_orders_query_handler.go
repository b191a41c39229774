package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetDriverOrdersQueryHandler lists the orders assigned to a driver, ordered
// by route sequence. Orders without a sequence sort last.
type GetDriverOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverOrdersQueryHandler creates a handler for driver route reads.
func NewGetDriverOrdersQueryHandler(db *gorm.DB) GetDriverOrdersQueryHandler {
	return GetDriverOrdersQueryHandler{db: db}
}

// Handle executes the route listing. An unknown or unassigned driver yields
// an empty slice, not an error.
func (h GetDriverOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDriverOrdersQuery,
) ([]GetDriverOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.order_number, o.delivery_status, o.delivery_sequence,
			c.name,
			o.address_street, o.address_city, o.address_state, o.address_postal_code,
			o.address_latitude, o.address_longitude,
			o.start_date, o.end_date
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.driver_id = ?
		ORDER BY o.delivery_sequence ASC NULLS LAST, o.order_number ASC
	`, query.DriverID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetDriverOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp           GetDriverOrdersQueryResponse
			id             uuid.UUID
			deliveryStatus int
			startDate      sql.NullTime
			endDate        sql.NullTime
		)

		err = rows.Scan(
			&id, &resp.OrderNumber, &deliveryStatus, &resp.DeliverySequence,
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
		resp.DeliveryStatus = order.DeliveryStatus(deliveryStatus)
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
