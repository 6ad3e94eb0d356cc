// Package harness runs scenario files against the sample registry.
//
// A scenario names the samples to run, optionally a dataset file and a
// backend, and a list of assertions over the produced lines and rows.
// Every scenario runs with a deterministic clock and a fixed run ID, so its
// trace can be compared byte for byte against a golden snapshot.
//
// # Scenario Format
//
//	name: in_stock_products
//	description: "Linq2 lists exactly the products with stock"
//	dataset: ../data/small.yaml   # optional, relative to the scenario file
//	backend: sql                  # optional, memory (default) or sql
//	run_id: fixed-run             # optional, defaults to "test-run-default"
//	samples:
//	  - Linq2
//	assertions:
//	  - type: line_contains
//	    text: "ProductName=Chai"
//	  - type: line_order
//	    lines: ["first line", "later line"]
//	  - type: line_count
//	    count: 9
//	  - type: row_count
//	    count: 9
//	  - type: digest
//	    digest: 07811fa0...
//
// An assertion applies to the scenario's only sample unless it names one
// with the sample key. Scenarios running more than one sample must name the
// target of every assertion.
//
// # Golden Snapshots
//
// Snapshot renders a run as indented canonical JSON. The golden file for
// scenarios/x.yaml is scenarios/golden/x.golden; RunWithGolden compares
// against testdata/golden in package tests.
package harness
