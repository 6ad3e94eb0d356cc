package samples

import (
	"fmt"
	"strings"

	"github.com/roach88/querysamples/internal/dataset"
)

// dumpProduct renders a product as Name=value pairs separated by two spaces.
func dumpProduct(p dataset.Product) string {
	return dumpFields(
		"ProductID", p.ProductID,
		"ProductName", p.ProductName,
		"Category", p.Category,
		"UnitPrice", p.UnitPrice,
		"UnitsInStock", p.UnitsInStock,
	)
}

// dumpFields takes alternating names and values.
func dumpFields(kv ...any) string {
	parts := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
	}
	return strings.Join(parts, "  ")
}
