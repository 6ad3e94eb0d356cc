package store

import (
	"context"
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/queryir"
	"github.com/roach88/querysamples/internal/querysql"
)

var (
	productColumns  = []string{"id", "name", "category", "unit_price", "units_in_stock"}
	customerColumns = []string{"id", "company"}
	orderColumns    = []string{"id", "customer_id", "order_date", "total"}
)

// QueryProducts returns the products matching filter (nil = all), ordered by
// orderBy and then dataset order.
func (s *Store) QueryProducts(ctx context.Context, filter queryir.Predicate, orderBy ...queryir.OrderKey) ([]dataset.Product, error) {
	q := queryir.Select{From: "products", Columns: productColumns, Filter: filter, OrderBy: orderBy}
	rows, err := s.run(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := []dataset.Product{}
	for rows.Next() {
		var (
			p     dataset.Product
			price string
		)
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Category, &price, &p.UnitsInStock); err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		if p.UnitPrice, err = dataset.ParseDecimal(price); err != nil {
			return nil, errors.Wrapf(err, "product %d", p.ProductID)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate products")
	}
	return products, nil
}

// InStockQuery is the declarative form of query.FilterInStockProducts.
var InStockQuery queryir.Predicate = queryir.Compare{Field: "units_in_stock", Op: queryir.OpGt, Value: ir.Int(0)}

// InStockProducts runs InStockQuery against the mirror.
func (s *Store) InStockProducts(ctx context.Context) ([]dataset.Product, error) {
	return s.QueryProducts(ctx, InStockQuery)
}

// Customers returns every customer with its orders, in dataset order.
func (s *Store) Customers(ctx context.Context) ([]dataset.Customer, error) {
	customers, index, err := s.readCustomers(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.run(ctx, queryir.Select{From: "orders", Columns: orderColumns})
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		i, ok := index[o.CustomerID]
		if !ok {
			return nil, errors.Newf("order %d references unknown customer %q", o.OrderID, o.CustomerID)
		}
		customers[i].Orders = append(customers[i].Orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orders")
	}
	return customers, nil
}

func (s *Store) readCustomers(ctx context.Context) ([]dataset.Customer, map[string]int, error) {
	rows, err := s.run(ctx, queryir.Select{From: "customers", Columns: customerColumns})
	if err != nil {
		return nil, nil, errors.Wrap(err, "query customers")
	}
	defer rows.Close()

	customers := []dataset.Customer{}
	index := make(map[string]int)
	for rows.Next() {
		var c dataset.Customer
		if err := rows.Scan(&c.CustomerID, &c.CompanyName); err != nil {
			return nil, nil, errors.Wrap(err, "scan customer")
		}
		index[c.CustomerID] = len(customers)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "iterate customers")
	}
	return customers, index, nil
}

func scanOrder(rows *sql.Rows) (dataset.Order, error) {
	var (
		o           dataset.Order
		date, total string
		err         error
	)
	if err = rows.Scan(&o.OrderID, &o.CustomerID, &date, &total); err != nil {
		return o, errors.Wrap(err, "scan order")
	}
	if o.OrderDate, err = dataset.ParseDate(date); err != nil {
		return o, errors.Wrapf(err, "order %d", o.OrderID)
	}
	if o.Total, err = dataset.ParseDecimal(total); err != nil {
		return o, errors.Wrapf(err, "order %d", o.OrderID)
	}
	return o, nil
}

// Snapshot rebuilds a Dataset from the mirror. The result goes through
// dataset.New, so the invariants are checked again.
func (s *Store) Snapshot(ctx context.Context) (*dataset.Dataset, error) {
	products, err := s.QueryProducts(ctx, nil)
	if err != nil {
		return nil, err
	}
	customers, err := s.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return dataset.New(customers, products)
}

// Stats counts the mirrored records.
func (s *Store) Stats(ctx context.Context) (dataset.Stats, error) {
	var st dataset.Stats
	var err error
	if st.Products, err = s.count(ctx, "products"); err != nil {
		return st, err
	}
	if st.Customers, err = s.count(ctx, "customers"); err != nil {
		return st, err
	}
	if st.Orders, err = s.count(ctx, "orders"); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Store) run(ctx context.Context, q queryir.Query) (*sql.Rows, error) {
	sqlText, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return nil, err
	}
	return s.db.QueryContext(ctx, sqlText, params...)
}
