package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order projection, joining the customer and,
// when assigned, the driver.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the projection query. A missing order yields an
// ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.order_number, o.status, o.delivery_status,
			o.customer_id, c.name, c.phone,
			o.package_id, o.package_name, o.package_price, o.delivery_days,
			o.start_date, o.end_date,
			o.driver_id, d.name,
			o.delivery_sequence, o.proof_of_delivery_url,
			o.address_street, o.address_city, o.address_state, o.address_postal_code,
			o.address_latitude, o.address_longitude,
			o.payment_intent_id, o.payment_amount_paid, o.payment_currency
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN drivers d ON d.id = o.driver_id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp       GetOrderQueryResponse
		id         uuid.UUID
		customerID uuid.UUID
		packageID  uuid.UUID
		status     int
		deliveryS  int
		startDate  sql.NullTime
		endDate    sql.NullTime
		driverID   *uuid.UUID
		driverName sql.NullString
	)

	err := row.Scan(
		&id, &resp.OrderNumber, &status, &deliveryS,
		&customerID, &resp.CustomerName, &resp.CustomerPhone,
		&packageID, &resp.PackageName, &resp.PackagePrice, &resp.DeliveryDays,
		&startDate, &endDate,
		&driverID, &driverName,
		&resp.DeliverySequence, &resp.ProofOfDeliveryURL,
		&resp.Address.Street, &resp.Address.City, &resp.Address.State, &resp.Address.PostalCode,
		&resp.Address.Latitude, &resp.Address.Longitude,
		&resp.PaymentIntentID, &resp.AmountPaid, &resp.Currency,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return nil, err
	}
	if resp.PackageID, err = kernel.UUIDFromBytes(packageID[:]); err != nil {
		return nil, err
	}
	resp.Status = order.Status(status)
	resp.DeliveryStatus = order.DeliveryStatus(deliveryS)
	if startDate.Valid {
		resp.StartDate = kernel.DayOf(startDate.Time)
	}
	if endDate.Valid {
		resp.EndDate = kernel.DayOf(endDate.Time)
	}
	if driverID != nil {
		dID, idErr := kernel.UUIDFromBytes((*driverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.Driver = &DriverView{ID: dID, Name: driverName.String}
	}

	if resp.Schedule, err = h.loadSchedule(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (h GetOrderQueryHandler) loadSchedule(ctx context.Context, orderID kernel.UUID) ([]kernel.Day, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT day
		FROM order_deliveries
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedule := make([]kernel.Day, 0)
	for rows.Next() {
		var day sql.NullTime
		if err = rows.Scan(&day); err != nil {
			return nil, err
		}
		if day.Valid {
			schedule = append(schedule, kernel.DayOf(day.Time))
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return schedule, nil
}
