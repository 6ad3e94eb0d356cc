package dataset

import (
	"iter"
	"slices"

	"github.com/roach88/querysamples/internal/seq"
)

// Product is a catalog entry.
type Product struct {
	ProductID    int     `yaml:"id"`
	ProductName  string  `yaml:"name"`
	Category     string  `yaml:"category"`
	UnitPrice    Decimal `yaml:"unit_price"`
	UnitsInStock int     `yaml:"units_in_stock"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.UnitsInStock > 0
}

// Order is a single customer order. CustomerID is a back-reference to the
// owning Customer and is filled in by the dataset constructors.
type Order struct {
	OrderID    int     `yaml:"id"`
	OrderDate  Date    `yaml:"date"`
	Total      Decimal `yaml:"total"`
	CustomerID string  `yaml:"-"`
}

// Customer owns its orders in dataset order. Orders may be empty.
type Customer struct {
	CustomerID  string  `yaml:"id"`
	CompanyName string  `yaml:"company"`
	Orders      []Order `yaml:"orders"`
}

// Dataset is the read-only object graph every query runs against.
// Callers must not modify the slices it exposes.
type Dataset struct {
	Customers []Customer
	Products  []Product
}

// New copies customers and products into a Dataset, stamps each order with
// its owner's CustomerID, and checks the structural invariants.
//
// An order whose CustomerID is already set to a different customer is an
// orphan and is rejected.
func New(customers []Customer, products []Product) (*Dataset, error) {
	ds := &Dataset{
		Customers: make([]Customer, len(customers)),
		Products:  slices.Clone(products),
	}
	for i, c := range customers {
		c.Orders = slices.Clone(c.Orders)
		for j := range c.Orders {
			if c.Orders[j].CustomerID == "" {
				c.Orders[j].CustomerID = c.CustomerID
			}
		}
		ds.Customers[i] = c
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// CustomerSeq yields customers in dataset order.
func (ds *Dataset) CustomerSeq() iter.Seq[Customer] {
	return slices.Values(ds.Customers)
}

// ProductSeq yields products in dataset order.
func (ds *Dataset) ProductSeq() iter.Seq[Product] {
	return slices.Values(ds.Products)
}

// OrderSeq yields every order, customer by customer, in dataset order.
func (ds *Dataset) OrderSeq() iter.Seq[Order] {
	return seq.SelectMany(ds.CustomerSeq(), func(c Customer) iter.Seq[Order] {
		return slices.Values(c.Orders)
	})
}

// Stats summarizes collection sizes, mostly for logging.
type Stats struct {
	Customers int `json:"customers"`
	Orders    int `json:"orders"`
	Products  int `json:"products"`
}

// Stats counts the dataset's records.
func (ds *Dataset) Stats() Stats {
	s := Stats{Customers: len(ds.Customers), Products: len(ds.Products)}
	for _, c := range ds.Customers {
		s.Orders += len(c.Orders)
	}
	return s
}

// validate enforces the invariants listed in the package documentation.
// It reports the first violation found.
func (ds *Dataset) validate() error {
	productIDs := make(map[int]struct{}, len(ds.Products))
	for i, p := range ds.Products {
		if _, dup := productIDs[p.ProductID]; dup {
			return invariantError("products[%d]: duplicate product id %d", i, p.ProductID)
		}
		productIDs[p.ProductID] = struct{}{}
		if p.UnitsInStock < 0 {
			return invariantError("products[%d]: product %d has negative units_in_stock %d", i, p.ProductID, p.UnitsInStock)
		}
	}

	customerIDs := make(map[string]struct{}, len(ds.Customers))
	orderIDs := make(map[int]string)
	for i, c := range ds.Customers {
		if c.CustomerID == "" {
			return invariantError("customers[%d]: customer id is empty", i)
		}
		if _, dup := customerIDs[c.CustomerID]; dup {
			return invariantError("customers[%d]: duplicate customer id %q", i, c.CustomerID)
		}
		customerIDs[c.CustomerID] = struct{}{}

		for j, o := range c.Orders {
			if owner, dup := orderIDs[o.OrderID]; dup {
				return invariantError("customers[%d].orders[%d]: order %d already belongs to customer %q", i, j, o.OrderID, owner)
			}
			orderIDs[o.OrderID] = c.CustomerID
			if o.CustomerID != c.CustomerID {
				return invariantError("customers[%d].orders[%d]: order %d references customer %q but is owned by %q", i, j, o.OrderID, o.CustomerID, c.CustomerID)
			}
			if o.Total.Sign() < 0 {
				return invariantError("customers[%d].orders[%d]: order %d has negative total %s", i, j, o.OrderID, o.Total)
			}
			if o.OrderDate.IsZero() {
				return invariantError("customers[%d].orders[%d]: order %d has no date", i, j, o.OrderID)
			}
		}
	}
	return nil
}
