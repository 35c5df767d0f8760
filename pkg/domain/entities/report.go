package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportType names one of the report variants
type ReportType int

const (
	SalesReport ReportType = iota
	ProductsReport
	CustomersReport
)

// String method for ReportType enum
func (r ReportType) String() string {
	switch r {
	case SalesReport:
		return "sales"
	case ProductsReport:
		return "products"
	case CustomersReport:
		return "customers"
	default:
		return "unknown"
	}
}

// ParseReportType parses a report variant name
func ParseReportType(s string) (ReportType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sales":
		return SalesReport, nil
	case "products":
		return ProductsReport, nil
	case "customers":
		return CustomersReport, nil
	default:
		return SalesReport, fmt.Errorf("invalid report type: %s (expected: sales, products, or customers)", s)
	}
}

// MarshalText encodes the report type by name
func (r ReportType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// SummaryField is one named statistic of a report
type SummaryField struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// ReportRecord is a rendering-agnostic report. It is rebuilt on every request.
type ReportRecord struct {
	Type    ReportType     `json:"type"`
	Summary []SummaryField `json:"summary"`
	Headers []string       `json:"headers"`
	Rows    [][]string     `json:"rows"`
}

// SummaryValue looks up a summary statistic by key
func (r *ReportRecord) SummaryValue(key string) (decimal.Decimal, bool) {
	for _, field := range r.Summary {
		if field.Key == key {
			return field.Value, true
		}
	}
	return decimal.Zero, false
}

// DateRange bounds report input by order creation time. A range with either
// end missing does not filter.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsSet reports whether both ends are present
func (r DateRange) IsSet() bool {
	return r.Start != nil && r.End != nil
}

// Contains reports whether t lies within [Start, End]. An unset range contains everything.
func (r DateRange) Contains(t time.Time) bool {
	if !r.IsSet() {
		return true
	}
	return !t.Before(*r.Start) && !t.After(*r.End)
}
