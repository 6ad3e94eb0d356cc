package query

import (
	"iter"
	"slices"
	"strings"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/seq"
)

// FilterNumeric yields the elements of numbers strictly below threshold, in
// their original order.
func FilterNumeric(numbers iter.Seq[int], threshold int) (iter.Seq[int], error) {
	if numbers == nil {
		return nil, nilArgument("FilterNumeric", "numbers")
	}
	return seq.Where(numbers, func(n int) bool { return n < threshold }), nil
}

// FilterInStockProducts yields the products with at least one unit in stock,
// in their original order.
func FilterInStockProducts(products iter.Seq[dataset.Product]) (iter.Seq[dataset.Product], error) {
	if products == nil {
		return nil, nilArgument("FilterInStockProducts", "products")
	}
	return seq.Where(products, dataset.Product.InStock), nil
}

// CustomerActivitySummary reports, for every customer with at least one order,
// the date of the earliest order and the sum of all order totals.
//
// Rows are ordered by start year descending, then start month descending,
// then turnover descending, then customer ID descending. Year and month are
// separate keys, so the day of the start date never affects the order.
func CustomerActivitySummary(customers iter.Seq[dataset.Customer]) ([]ActivitySummary, error) {
	if customers == nil {
		return nil, nilArgument("CustomerActivitySummary", "customers")
	}

	active := seq.Where(customers, func(c dataset.Customer) bool { return seq.Any(slices.Values(c.Orders)) })
	rows := seq.Select(active, func(c dataset.Customer) ActivitySummary {
		orders := slices.Values(c.Orders)
		return ActivitySummary{
			CustomerID:    c.CustomerID,
			StartDate:     earliestDate(orders),
			MoneyTurnover: seq.Aggregate(orders, dataset.Decimal{}, addTotal),
		}
	})

	ordered := seq.OrderBy(rows,
		seq.Desc(func(r ActivitySummary) int { return r.StartDate.Year }),
		seq.Desc(func(r ActivitySummary) int { return int(r.StartDate.Month) }),
		seq.By(func(a, b ActivitySummary) int { return a.MoneyTurnover.Cmp(b.MoneyTurnover) }).Reverse(),
		seq.By(func(a, b ActivitySummary) int { return strings.Compare(a.CustomerID, b.CustomerID) }).Reverse(),
	)
	return seq.ToSlice(ordered), nil
}

// ProductCategoryStockReport groups products by category and, inside each
// category, by whether they are in stock. Categories and stock groups appear
// in first-occurrence order; products inside a stock group are sorted by
// UnitPrice ascending, keeping source order among equal prices.
func ProductCategoryStockReport(products iter.Seq[dataset.Product]) ([]CategoryStock, error) {
	if products == nil {
		return nil, nilArgument("ProductCategoryStockReport", "products")
	}

	byPrice := seq.By(func(a, b dataset.Product) int { return a.UnitPrice.Cmp(b.UnitPrice) })

	categories := seq.GroupBy(products, func(p dataset.Product) string { return p.Category })
	report := seq.Select(categories, func(g seq.Grouping[string, dataset.Product]) CategoryStock {
		stock := seq.GroupBy(slices.Values(g.Items), dataset.Product.InStock)
		return CategoryStock{
			Category: g.Key,
			StockedProducts: seq.ToSlice(seq.Select(stock, func(sg seq.Grouping[bool, dataset.Product]) StockGroup {
				return StockGroup{
					ContainsInStock: sg.Key,
					Products:        seq.ToSlice(seq.OrderBy(slices.Values(sg.Items), byPrice)),
				}
			})),
		}
	})
	return seq.ToSlice(report), nil
}

// CustomerOrderStatistics counts every customer's orders by month of year, by
// year, and by (year, month). Groups appear in first-occurrence order.
// Customers without orders get three empty statistics.
func CustomerOrderStatistics(customers iter.Seq[dataset.Customer]) ([]OrderStatistics, error) {
	if customers == nil {
		return nil, nilArgument("CustomerOrderStatistics", "customers")
	}

	stats := seq.Select(customers, func(c dataset.Customer) OrderStatistics {
		orders := slices.Values(c.Orders)

		months := seq.GroupBy(orders, func(o dataset.Order) int { return int(o.OrderDate.Month) })
		years := seq.GroupBy(orders, func(o dataset.Order) int { return o.OrderDate.Year })
		yearMonths := seq.GroupBy(orders, func(o dataset.Order) [2]int {
			return [2]int{o.OrderDate.Year, int(o.OrderDate.Month)}
		})

		return OrderStatistics{
			CustomerID: c.CustomerID,
			MonthsStatistic: seq.ToSlice(seq.Select(months, func(g seq.Grouping[int, dataset.Order]) MonthCount {
				return MonthCount{Month: g.Key, OrdersCount: len(g.Items)}
			})),
			YearsStatistic: seq.ToSlice(seq.Select(years, func(g seq.Grouping[int, dataset.Order]) YearCount {
				return YearCount{Year: g.Key, OrdersCount: len(g.Items)}
			})),
			YearMonthStatistic: seq.ToSlice(seq.Select(yearMonths, func(g seq.Grouping[[2]int, dataset.Order]) YearMonthCount {
				return YearMonthCount{Year: g.Key[0], Month: g.Key[1], OrdersCount: len(g.Items)}
			})),
		}
	})
	return seq.ToSlice(stats), nil
}

// earliestDate returns the earliest order date. Callers only pass non-empty
// order lists.
func earliestDate(orders iter.Seq[dataset.Order]) dataset.Date {
	first, _ := seq.MinBy(orders, func(o dataset.Order) int { return o.OrderDate.Ordinal() })
	return first.OrderDate
}

func addTotal(sum dataset.Decimal, o dataset.Order) dataset.Decimal {
	return sum.Add(o.Total)
}
