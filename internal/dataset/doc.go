// Package dataset holds the in-memory object graph the query samples run
// against: Customers (each owning an ordered list of Orders) and Products.
//
// A Dataset is built once, either from a YAML document via Load/LoadFile or
// programmatically via New, and is read-only afterwards. Every constructor
// enforces the structural invariants before returning:
//
//   - ProductID, CustomerID and OrderID are unique within their collections
//   - every Order's CustomerID names the customer that owns it
//   - UnitsInStock >= 0 and Total >= 0
//
// # Document Format
//
//	products:
//	  - id: 1
//	    name: Chai
//	    category: Beverages
//	    unit_price: 18.00
//	    units_in_stock: 39
//	customers:
//	  - id: ALFKI
//	    company: Alfreds Futterkiste
//	    orders:
//	      - id: 10643
//	        date: "1997-08-25"
//	        total: 814.50
//
// The raw document is validated against an embedded CUE schema before it is
// decoded, so unknown fields, missing fields and negative amounts are reported
// as LoadError values with a hint instead of surfacing as zero values.
//
// Money amounts are exact decimals (see Decimal); dates are calendar dates
// without a time-of-day component (see Date).
package dataset
