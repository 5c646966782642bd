// Package testhelpers provides shared fixtures for estimator tests.
package testhelpers

import (
	"testing"

	"vanestimate/services"
)

// SampleCSV is a small catalog source covering two sections, quoted
// cells, currency-formatted prices, and mixed compatibility marks.
const SampleCSV = "Type,Item Description,Link,Item Size,Price Per Unit,Est.Hrs,Promaster,Sprinter,Transit,Other\n" +
	"Flooring,Lonseal Vinyl Flooring,https://example.com/lonseal,\"8ft x 6ft\",$425.00,3.5,x,x,,\n" +
	"Flooring,\"Subfloor, Baltic Birch\",,4x8 sheet,\"$1,250.50\",2,x,,yes,\n" +
	"Electrical,200Ah Lithium Battery,https://example.com/battery,,950,1.25,x,x,x,\n" +
	"Electrical,12V Fuse Block,,,64.99,0.75,,1,,\n" +
	"Electrical,,,,10,1,x,,,\n" +
	",Orphan Item,,,25,0.5,x,,,\n"

// BuildTestCatalog parses SampleCSV into a catalog, failing the test on
// any structural error.
func BuildTestCatalog(t *testing.T) *services.Catalog {
	t.Helper()

	rows := services.ParseDelimited(SampleCSV)
	if len(rows) == 0 {
		t.Fatal("sample CSV produced no rows")
	}
	catalog, err := services.BuildCatalog(rows[0], rows[1:])
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return catalog
}

// NewTestEstimator builds an estimator over the sample catalog with the
// promaster profile already selected.
func NewTestEstimator(t *testing.T) *services.Estimator {
	t.Helper()

	est := services.NewEstimator(BuildTestCatalog(t))
	est.SetVanType("promaster")
	return est
}
