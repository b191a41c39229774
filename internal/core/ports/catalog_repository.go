package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// CatalogRepository reads the reference entities the core needs but does not
// own: customers, packages, and drivers. All methods return an
// ObjectNotFoundError for missing ids.
type CatalogRepository interface {
	GetCustomer(ctx context.Context, id kernel.UUID) (*catalog.Customer, error)
	GetPackage(ctx context.Context, id kernel.UUID) (*catalog.Package, error)
	GetDriver(ctx context.Context, id kernel.UUID) (*catalog.Driver, error)
}
