package samples

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/query"
	"github.com/roach88/querysamples/internal/seq"
	"github.com/roach88/querysamples/internal/store"
)

const categoryRestriction = "Restriction Operators"

// Linq1Numbers and Linq1Threshold are the fixed inputs of Linq1.
var Linq1Numbers = []int{5, 4, 1, 3, 9, 8, 6, 7, 2, 0}

const Linq1Threshold = 5

// Linq1 filters a fixed array of integers.
func Linq1() Sample {
	return Sample{
		Name:        Prefix + "1",
		Category:    categoryRestriction,
		Title:       "Where - Task 1",
		Description: "This sample uses the where clause to find all elements of an array with a value less than 5.",
		Run: func(*dataset.Dataset) (Result, error) {
			low, err := query.FilterNumeric(slices.Values(Linq1Numbers), Linq1Threshold)
			if err != nil {
				return Result{}, err
			}
			res := Result{
				Lines: []string{fmt.Sprintf("Numbers < %d:", Linq1Threshold)},
				Rows:  ir.Arr(),
			}
			for n := range low {
				res.Lines = append(res.Lines, strconv.Itoa(n))
				res.Rows = append(res.Rows, ir.Int(n))
			}
			return res, nil
		},
	}
}

// Linq2 lists the products currently in stock.
func Linq2() Sample {
	return Sample{
		Name:        Prefix + "2",
		Category:    categoryRestriction,
		Title:       "Where - Task 2",
		Description: "This sample returns all products that are in stock.",
		Run: func(ds *dataset.Dataset) (Result, error) {
			if ds == nil {
				return Result{}, nilDataset("Linq2")
			}
			inStock, err := query.FilterInStockProducts(ds.ProductSeq())
			if err != nil {
				return Result{}, err
			}
			return renderProducts(seq.ToSlice(inStock)), nil
		},
		RunSQL: func(ctx context.Context, st *store.Store) (Result, error) {
			products, err := st.InStockProducts(ctx)
			if err != nil {
				return Result{}, err
			}
			return renderProducts(products), nil
		},
	}
}

// Linq5 lists customers by the date they became clients.
func Linq5() Sample {
	return Sample{
		Name:        Prefix + "5",
		Category:    categoryRestriction,
		Title:       "Where - Task 5",
		Description: "Customers with the date they became clients, sorted by year, month, money turnover and customer ID.",
		Run: func(ds *dataset.Dataset) (Result, error) {
			if ds == nil {
				return Result{}, nilDataset("Linq5")
			}
			rows, err := query.CustomerActivitySummary(ds.CustomerSeq())
			if err != nil {
				return Result{}, err
			}
			return renderActivity(rows), nil
		},
		RunSQL: func(ctx context.Context, st *store.Store) (Result, error) {
			customers, err := st.Customers(ctx)
			if err != nil {
				return Result{}, err
			}
			rows, err := query.CustomerActivitySummary(slices.Values(customers))
			if err != nil {
				return Result{}, err
			}
			return renderActivity(rows), nil
		},
	}
}

// Linq7 groups products by category and stock status.
func Linq7() Sample {
	return Sample{
		Name:        Prefix + "7",
		Category:    categoryRestriction,
		Title:       "Where - Task 7",
		Description: "Product groups by category and stock status, sorted by price.",
		Run: func(ds *dataset.Dataset) (Result, error) {
			if ds == nil {
				return Result{}, nilDataset("Linq7")
			}
			report, err := query.ProductCategoryStockReport(ds.ProductSeq())
			if err != nil {
				return Result{}, err
			}
			return renderCategories(report), nil
		},
	}
}

// Linq10 reports order activity per customer.
func Linq10() Sample {
	return Sample{
		Name:        Prefix + "10",
		Category:    categoryRestriction,
		Title:       "Where - Task 10",
		Description: "Customer activity statistics by month, by year, and by year and month.",
		Run: func(ds *dataset.Dataset) (Result, error) {
			if ds == nil {
				return Result{}, nilDataset("Linq10")
			}
			stats, err := query.CustomerOrderStatistics(ds.CustomerSeq())
			if err != nil {
				return Result{}, err
			}
			return renderStatistics(stats), nil
		},
		RunSQL: func(ctx context.Context, st *store.Store) (Result, error) {
			stats, err := st.OrderStatistics(ctx)
			if err != nil {
				return Result{}, err
			}
			return renderStatistics(stats), nil
		},
	}
}

func nilDataset(sample string) error {
	return errors.Wrapf(query.ErrInvalidArgument, "%s: dataset is nil", sample)
}

func renderProducts(products []dataset.Product) Result {
	res := Result{Lines: []string{}, Rows: ir.Arr()}
	for _, p := range products {
		res.Lines = append(res.Lines, dumpProduct(p))
		res.Rows = append(res.Rows, productValue(p))
	}
	return res
}

func renderActivity(rows []query.ActivitySummary) Result {
	res := Result{Lines: []string{}, Rows: ir.Arr()}
	for _, r := range rows {
		res.Lines = append(res.Lines, fmt.Sprintf("Customer Id : %s money turnover: %s Month : %d Year : %d",
			r.CustomerID, r.MoneyTurnover, int(r.StartDate.Month), r.StartDate.Year))
		res.Rows = append(res.Rows, activityValue(r))
	}
	return res
}

func renderCategories(report []query.CategoryStock) Result {
	res := Result{Lines: []string{}, Rows: ir.Arr()}
	for _, c := range report {
		res.Lines = append(res.Lines, "Category: "+c.Category)
		for _, g := range c.StockedProducts {
			label := "Not containing products"
			if g.ContainsInStock {
				label = "Containing products"
			}
			for _, p := range g.Products {
				res.Lines = append(res.Lines, fmt.Sprintf("%s: %d", label, p.ProductID))
			}
		}
		res.Rows = append(res.Rows, categoryValue(c))
	}
	return res
}

func renderStatistics(stats []query.OrderStatistics) Result {
	res := Result{Lines: []string{}, Rows: ir.Arr()}
	for _, s := range stats {
		res.Lines = append(res.Lines, "Customer Id: "+s.CustomerID, "Statistic by months:")
		for _, m := range s.MonthsStatistic {
			res.Lines = append(res.Lines, fmt.Sprintf("Month: %d Activity: %d", m.Month, m.OrdersCount))
		}
		res.Lines = append(res.Lines, "Statistic by years:")
		for _, y := range s.YearsStatistic {
			res.Lines = append(res.Lines, fmt.Sprintf("Year: %d Activity: %d", y.Year, y.OrdersCount))
		}
		res.Lines = append(res.Lines, "Statistic by year and month:")
		for _, ym := range s.YearMonthStatistic {
			res.Lines = append(res.Lines, fmt.Sprintf("Year: %d Month: %d Activity: %d", ym.Year, ym.Month, ym.OrdersCount))
		}
		res.Rows = append(res.Rows, statisticsValue(s))
	}
	return res
}
