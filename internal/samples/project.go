package samples

import (
	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/query"
)

// Projections of result rows into ir values. Decimals and dates travel as
// strings; keys are snake_case.

func productValue(p dataset.Product) ir.Value {
	return ir.Obj(
		ir.F("product_id", ir.Int(p.ProductID)),
		ir.F("product_name", ir.String(p.ProductName)),
		ir.F("category", ir.String(p.Category)),
		ir.F("unit_price", ir.String(p.UnitPrice.String())),
		ir.F("units_in_stock", ir.Int(p.UnitsInStock)),
	)
}

func activityValue(a query.ActivitySummary) ir.Value {
	return ir.Obj(
		ir.F("customer_id", ir.String(a.CustomerID)),
		ir.F("start_date", ir.String(a.StartDate.String())),
		ir.F("money_turnover", ir.String(a.MoneyTurnover.String())),
	)
}

func categoryValue(c query.CategoryStock) ir.Value {
	return ir.Obj(
		ir.F("category", ir.String(c.Category)),
		ir.F("stocked_products", ir.ArrayOf(c.StockedProducts, func(g query.StockGroup) ir.Value {
			return ir.Obj(
				ir.F("contains_in_stock", ir.Bool(g.ContainsInStock)),
				ir.F("products", ir.ArrayOf(g.Products, productValue)),
			)
		})),
	)
}

func statisticsValue(s query.OrderStatistics) ir.Value {
	return ir.Obj(
		ir.F("customer_id", ir.String(s.CustomerID)),
		ir.F("months_statistic", ir.ArrayOf(s.MonthsStatistic, func(m query.MonthCount) ir.Value {
			return ir.Obj(ir.F("month", ir.Int(m.Month)), ir.F("orders_count", ir.Int(m.OrdersCount)))
		})),
		ir.F("years_statistic", ir.ArrayOf(s.YearsStatistic, func(y query.YearCount) ir.Value {
			return ir.Obj(ir.F("year", ir.Int(y.Year)), ir.F("orders_count", ir.Int(y.OrdersCount)))
		})),
		ir.F("year_month_statistic", ir.ArrayOf(s.YearMonthStatistic, func(ym query.YearMonthCount) ir.Value {
			return ir.Obj(
				ir.F("year", ir.Int(ym.Year)),
				ir.F("month", ir.Int(ym.Month)),
				ir.F("orders_count", ir.Int(ym.OrdersCount)),
			)
		})),
	)
}
