package query

import "github.com/roach88/querysamples/internal/dataset"

// ActivitySummary is one row of CustomerActivitySummary.
type ActivitySummary struct {
	CustomerID    string
	StartDate     dataset.Date
	MoneyTurnover dataset.Decimal
}

// CategoryStock is one category of ProductCategoryStockReport.
type CategoryStock struct {
	Category        string
	StockedProducts []StockGroup
}

// StockGroup holds the products of a category sharing one stock status,
// ordered by UnitPrice ascending.
type StockGroup struct {
	ContainsInStock bool
	Products        []dataset.Product
}

// OrderStatistics is one row of CustomerOrderStatistics.
type OrderStatistics struct {
	CustomerID         string
	MonthsStatistic    []MonthCount
	YearsStatistic     []YearCount
	YearMonthStatistic []YearMonthCount
}

type MonthCount struct {
	Month       int
	OrdersCount int
}

type YearCount struct {
	Year        int
	OrdersCount int
}

type YearMonthCount struct {
	Year        int
	Month       int
	OrdersCount int
}
