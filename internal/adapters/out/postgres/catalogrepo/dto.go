// Package catalogrepo reads the reference tables the fulfillment core
// depends on but does not own: customers, packages, and drivers. Their write
// paths live in the admin service; this repository is read-only.
package catalogrepo

import (
	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// CustomerDTO mirrors the customers table.
type CustomerDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
}

// TableName overrides GORM's default naming to use "customers".
func (CustomerDTO) TableName() string {
	return "customers"
}

// PackageDTO mirrors the packages table.
type PackageDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Price        float64
	DeliveryDays int
}

// TableName overrides GORM's default naming to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// DriverDTO mirrors the drivers table.
type DriverDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Active bool
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

func customerToDomain(dto CustomerDTO) (*catalog.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return &catalog.Customer{
		ID:         id,
		Name:       dto.Name,
		Phone:      dto.Phone,
		Street:     dto.Street,
		City:       dto.City,
		State:      dto.State,
		PostalCode: dto.PostalCode,
	}, nil
}

func packageToDomain(dto PackageDTO) (*catalog.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return &catalog.Package{
		ID:           id,
		Name:         dto.Name,
		Price:        dto.Price,
		DeliveryDays: dto.DeliveryDays,
	}, nil
}

func driverToDomain(dto DriverDTO) (*catalog.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return &catalog.Driver{
		ID:     id,
		Name:   dto.Name,
		Active: dto.Active,
	}, nil
}
