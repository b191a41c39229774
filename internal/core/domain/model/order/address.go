package order

// DeliveryAddress is the order's snapshot of the customer address at
// purchase time. The order owns this copy; later customer edits do not
// affect existing orders. Coordinates are optional and filled in by the
// best-effort geocoding step.
type DeliveryAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// WithCoordinates returns a copy of the address carrying geocoded coordinates.
func (a DeliveryAddress) WithCoordinates(lat, lon float64) DeliveryAddress {
	out := a
	out.Latitude = &lat
	out.Longitude = &lon
	return out
}

// HasCoordinates reports whether both coordinates are present.
func (a DeliveryAddress) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Line renders the street fields as a single geocodable line.
func (a DeliveryAddress) Line() string {
	line := a.Street
	for _, part := range []string{a.City, a.State, a.PostalCode} {
		if part != "" {
			line += ", " + part
		}
	}
	return line
}

// IsEqual compares all fields including optional coordinates.
// Used by the admin update path to detect real changes.
func (a DeliveryAddress) IsEqual(other DeliveryAddress) bool {
	if a.Street != other.Street || a.City != other.City ||
		a.State != other.State || a.PostalCode != other.PostalCode {
		return false
	}
	return floatPtrEqual(a.Latitude, other.Latitude) && floatPtrEqual(a.Longitude, other.Longitude)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
