// Package store mirrors a dataset into SQLite so the restriction and
// statistics pipelines can be cross-checked against SQL.
//
// Tables:
//   - products:  id, name, category, unit_price (text), units_in_stock
//   - customers: id, company
//   - orders:    id, customer_id → customers.id, order_date (YYYY-MM-DD), total (text)
//
// Every table has a position column holding the record's index in dataset
// order (orders are numbered customer by customer). All reads order by it
// last, so SQL results come back in the same order as the in-memory
// pipelines. Decimals are stored as their exact text and parsed back into
// dataset.Decimal; SQLite never does arithmetic on money.
//
// # Database Configuration
//
//   - foreign_keys=ON: orders must reference a mirrored customer
//   - busy_timeout=5000
//   - a single connection, so ":memory:" databases are not split across
//     pool connections
package store
