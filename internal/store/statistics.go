package store

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/query"
)

// Each statistic groups a customer's orders and orders the groups by the
// position of their first order, which is first-occurrence order.
const (
	monthsStatisticSQL = `
		SELECT customer_id, CAST(substr(order_date, 6, 2) AS INTEGER) AS month, 0, COUNT(*)
		FROM orders
		GROUP BY customer_id, month
		ORDER BY customer_id COLLATE BINARY, MIN(position)`

	yearsStatisticSQL = `
		SELECT customer_id, 0, CAST(substr(order_date, 1, 4) AS INTEGER) AS year, COUNT(*)
		FROM orders
		GROUP BY customer_id, year
		ORDER BY customer_id COLLATE BINARY, MIN(position)`

	yearMonthStatisticSQL = `
		SELECT customer_id,
		       CAST(substr(order_date, 6, 2) AS INTEGER) AS month,
		       CAST(substr(order_date, 1, 4) AS INTEGER) AS year,
		       COUNT(*)
		FROM orders
		GROUP BY customer_id, year, month
		ORDER BY customer_id COLLATE BINARY, MIN(position)`
)

// OrderStatistics computes query.CustomerOrderStatistics in SQL. Customers
// without orders get empty statistics.
func (s *Store) OrderStatistics(ctx context.Context) ([]query.OrderStatistics, error) {
	customers, index, err := s.readCustomers(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]query.OrderStatistics, len(customers))
	for i, c := range customers {
		stats[i] = query.OrderStatistics{
			CustomerID:         c.CustomerID,
			MonthsStatistic:    []query.MonthCount{},
			YearsStatistic:     []query.YearCount{},
			YearMonthStatistic: []query.YearMonthCount{},
		}
	}

	groupings := []struct {
		name string
		sql  string
		add  func(st *query.OrderStatistics, month, year, n int)
	}{
		{"months", monthsStatisticSQL, func(st *query.OrderStatistics, month, _, n int) {
			st.MonthsStatistic = append(st.MonthsStatistic, query.MonthCount{Month: month, OrdersCount: n})
		}},
		{"years", yearsStatisticSQL, func(st *query.OrderStatistics, _, year, n int) {
			st.YearsStatistic = append(st.YearsStatistic, query.YearCount{Year: year, OrdersCount: n})
		}},
		{"year-month", yearMonthStatisticSQL, func(st *query.OrderStatistics, month, year, n int) {
			st.YearMonthStatistic = append(st.YearMonthStatistic, query.YearMonthCount{Year: year, Month: month, OrdersCount: n})
		}},
	}

	for _, g := range groupings {
		if err := s.collectStatistic(ctx, g.sql, index, stats, g.add); err != nil {
			return nil, errors.Wrapf(err, "%s statistic", g.name)
		}
	}
	return stats, nil
}

func (s *Store) collectStatistic(
	ctx context.Context,
	sqlText string,
	index map[string]int,
	stats []query.OrderStatistics,
	add func(st *query.OrderStatistics, month, year, n int),
) error {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			customerID     string
			month, year, n int
		)
		if err := rows.Scan(&customerID, &month, &year, &n); err != nil {
			return errors.Wrap(err, "scan")
		}
		i, ok := index[customerID]
		if !ok {
			return errors.Newf("unknown customer %q", customerID)
		}
		add(&stats[i], month, year, n)
	}
	return rows.Err()
}
