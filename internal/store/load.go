package store

import (
	"context"
	"database/sql"
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/dataset"
)

// Load mirrors ds into the store inside one transaction. The store must be
// empty; loading the same store twice fails on the primary keys.
func (s *Store) Load(ctx context.Context, ds *dataset.Dataset) (err error) {
	if ds == nil {
		return errors.New("load: nil dataset")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "load: begin")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := insertProducts(ctx, tx, ds.Products); err != nil {
		return err
	}
	if err := insertCustomers(ctx, tx, ds.Customers); err != nil {
		return err
	}
	if err := insertOrders(ctx, tx, ds.OrderSeq()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "load: commit")
	}
	return nil
}

func insertProducts(ctx context.Context, tx *sql.Tx, products []dataset.Product) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, position, name, category, unit_price, units_in_stock)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "prepare products")
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.ExecContext(ctx,
			p.ProductID, i, p.ProductName, p.Category, p.UnitPrice.String(), p.UnitsInStock,
		); err != nil {
			return errors.Wrapf(err, "insert product %d", p.ProductID)
		}
	}
	return nil
}

func insertCustomers(ctx context.Context, tx *sql.Tx, customers []dataset.Customer) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO customers (id, position, company) VALUES (?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "prepare customers")
	}
	defer stmt.Close()

	for i, c := range customers {
		if _, err := stmt.ExecContext(ctx, c.CustomerID, i, c.CompanyName); err != nil {
			return errors.Wrapf(err, "insert customer %q", c.CustomerID)
		}
	}
	return nil
}

// insertOrders numbers orders across all customers, so position follows
// dataset order.
func insertOrders(ctx context.Context, tx *sql.Tx, orders iter.Seq[dataset.Order]) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orders (id, position, customer_id, order_date, total)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "prepare orders")
	}
	defer stmt.Close()

	pos := 0
	for o := range orders {
		if _, err := stmt.ExecContext(ctx,
			o.OrderID, pos, o.CustomerID, o.OrderDate.String(), o.Total.String(),
		); err != nil {
			return errors.Wrapf(err, "insert order %d", o.OrderID)
		}
		pos++
	}
	return nil
}

// Mirror opens an in-memory store and loads ds into it.
func Mirror(ctx context.Context, ds *dataset.Dataset) (*Store, error) {
	s, err := Open(MemoryPath)
	if err != nil {
		return nil, err
	}
	if err := s.Load(ctx, ds); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
