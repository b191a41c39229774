// Package ports defines the contracts between the fulfillment core and
// infrastructure: repositories, the unit of work, and external adapters.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// Coordinates is a geographic point resolved from an address.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a delivery address to coordinates.
//
// Contract: "address not found" returns (nil, nil), not an error; the
// implementation must respect ctx deadlines. The fulfillment coordinator
// calls this at most once per order, treats every failure as non-fatal, and
// never holds a database transaction across the call.
type Geocoder interface {
	Geocode(ctx context.Context, address order.DeliveryAddress) (*Coordinates, error)
}
