// Package orderrepo persists order aggregates with GORM. It maps the
// aggregate to an orders row plus one order_deliveries row per scheduled
// date, and translates unique-constraint conflicts on the payment intent id
// into the port-level conflict error.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO is the database representation of an order aggregate. The unique
// index on payment_intent_id is the storage half of the idempotency
// guarantee.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex;not null"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	PackageID  uuid.UUID `gorm:"type:uuid;not null"`

	PackageName  string
	PackagePrice float64
	DeliveryDays int

	Schedule  []DeliveryDateDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StartDate time.Time
	EndDate   time.Time `gorm:"index"`

	Status         int `gorm:"index"`
	DeliveryStatus int `gorm:"index"`

	DriverID           *uuid.UUID `gorm:"type:uuid;index"`
	DeliverySequence   *int
	ProofOfDeliveryURL *string

	Address AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Payment PaymentDTO `gorm:"embedded;embeddedPrefix:payment_"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryDateDTO is one scheduled delivery date of an order. Seq preserves
// the schedule order.
type DeliveryDateDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey"`
	Day     time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "order_deliveries".
func (DeliveryDateDTO) TableName() string {
	return "order_deliveries"
}

// AddressDTO is the embedded delivery address snapshot.
type AddressDTO struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// PaymentDTO is the embedded payment record. IntentID maps to the
// payment_intent_id column carrying the unique idempotency constraint.
type PaymentDTO struct {
	IntentID          string `gorm:"uniqueIndex;not null"`
	GatewayCustomerID string
	AmountPaid        int64
	Currency          string
	PaymentDate       time.Time
	CardType          *string
	CardBrand         *string
	CardLast4         *string
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id, ok := aggregate.Driver().ID(); ok {
		raw := id.Bytes()
		driverID = &raw
	}

	schedule := make([]DeliveryDateDTO, 0, len(aggregate.Schedule()))
	for i, day := range aggregate.Schedule() {
		schedule = append(schedule, DeliveryDateDTO{
			OrderID: aggregate.ID().Bytes(),
			Seq:     i,
			Day:     day.Time(),
		})
	}

	payment := aggregate.Payment()
	paymentDTO := PaymentDTO{
		IntentID:          payment.PaymentIntentID,
		GatewayCustomerID: payment.GatewayCustomerID,
		AmountPaid:        payment.AmountPaid,
		Currency:          payment.Currency,
		PaymentDate:       payment.PaymentDate,
	}
	if card := payment.Card; card != nil {
		paymentDTO.CardType = &card.Type
		paymentDTO.CardBrand = &card.Brand
		paymentDTO.CardLast4 = &card.Last4
	}

	address := aggregate.Address()

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),

		CustomerID: aggregate.CustomerID().Bytes(),
		PackageID:  aggregate.PackageID().Bytes(),

		PackageName:  aggregate.Package().Name,
		PackagePrice: aggregate.Package().Price,
		DeliveryDays: aggregate.Package().DeliveryDays,

		Schedule:  schedule,
		StartDate: aggregate.StartDate().Time(),
		EndDate:   aggregate.EndDate().Time(),

		Status:         int(aggregate.Status()),
		DeliveryStatus: int(aggregate.DeliveryStatus()),

		DriverID:           driverID,
		DeliverySequence:   aggregate.DeliverySequence(),
		ProofOfDeliveryURL: aggregate.ProofOfDeliveryURL(),

		Address: AddressDTO{
			Street:     address.Street,
			City:       address.City,
			State:      address.State,
			PostalCode: address.PostalCode,
			Latitude:   address.Latitude,
			Longitude:  address.Longitude,
		},
		Payment: paymentDTO,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	packageID, err := kernel.UUIDFromBytes(dto.PackageID[:])
	if err != nil {
		return nil, err
	}

	driver := order.NoDriver()
	if dto.DriverID != nil {
		driverID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driver, driverErr = order.DriverByID(driverID)
		if driverErr != nil {
			return nil, driverErr
		}
	}

	schedule := make([]kernel.Day, len(dto.Schedule))
	for _, entry := range dto.Schedule {
		schedule[entry.Seq] = kernel.DayOf(entry.Day)
	}

	var card *order.CardMetadata
	if dto.Payment.CardType != nil || dto.Payment.CardBrand != nil || dto.Payment.CardLast4 != nil {
		card = &order.CardMetadata{}
		if dto.Payment.CardType != nil {
			card.Type = *dto.Payment.CardType
		}
		if dto.Payment.CardBrand != nil {
			card.Brand = *dto.Payment.CardBrand
		}
		if dto.Payment.CardLast4 != nil {
			card.Last4 = *dto.Payment.CardLast4
		}
	}

	restored, err := order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		packageID,
		order.PackageSnapshot{
			Name:         dto.PackageName,
			Price:        dto.PackagePrice,
			DeliveryDays: dto.DeliveryDays,
		},
		schedule,
		order.DeliveryAddress{
			Street:     dto.Address.Street,
			City:       dto.Address.City,
			State:      dto.Address.State,
			PostalCode: dto.Address.PostalCode,
			Latitude:   dto.Address.Latitude,
			Longitude:  dto.Address.Longitude,
		},
		order.PaymentDetails{
			PaymentIntentID:   dto.Payment.IntentID,
			GatewayCustomerID: dto.Payment.GatewayCustomerID,
			AmountPaid:        dto.Payment.AmountPaid,
			Currency:          dto.Payment.Currency,
			PaymentDate:       dto.Payment.PaymentDate,
			Card:              card,
		},
		order.Status(dto.Status),
		order.DeliveryStatus(dto.DeliveryStatus),
		driver,
		dto.DeliverySequence,
		dto.ProofOfDeliveryURL,
	)
	if err != nil {
		return nil, err
	}

	// Start and end dates may have been overridden by an admin; the stored
	// columns win over the schedule edges.
	if _, err = restored.SetStartDate(kernel.DayOf(dto.StartDate)); err != nil {
		return nil, err
	}
	if _, err = restored.SetEndDate(kernel.DayOf(dto.EndDate)); err != nil {
		return nil, err
	}
	return restored, nil
}
