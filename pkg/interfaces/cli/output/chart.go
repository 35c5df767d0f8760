package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/liquorstore/pkg/application/dto"
	"github.com/vsinha/liquorstore/pkg/application/services/reports"
)

// RevenueChart is a bar chart of revenue per day
type RevenueChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	BarGap       int
	MaxRevenue   decimal.Decimal
}

// NewRevenueChart sizes a chart for the given days
func NewRevenueChart(days []dto.DateRevenue) *RevenueChart {
	chart := &RevenueChart{
		Width:        800,
		Height:       400,
		MarginLeft:   80,
		MarginTop:    50,
		MarginRight:  30,
		MarginBottom: 60,
		BarGap:       8,
		MaxRevenue:   decimal.Zero,
	}
	if len(days) > 20 {
		chart.Width = chart.MarginLeft + chart.MarginRight + len(days)*36
	}
	for _, d := range days {
		if d.Revenue.GreaterThan(chart.MaxRevenue) {
			chart.MaxRevenue = d.Revenue
		}
	}
	return chart
}

// GenerateSVG creates an SVG representation of the chart
func (rc *RevenueChart) GenerateSVG(days []dto.DateRevenue) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, rc.Width, rc.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.axis-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.bar { fill: rgba(75, 192, 192, 0.5); stroke: rgba(75, 192, 192, 1); stroke-width: 1; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, rc.Width, rc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Revenue by Date</text>`, rc.Width/2))

	if len(days) == 0 || !rc.MaxRevenue.IsPositive() {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">No revenue for the selected period</text>`,
			rc.Width/2, rc.Height/2))
		svg.WriteString(`</svg>`)
		return svg.String()
	}

	rc.drawAxis(&svg)
	rc.drawBars(&svg, days)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (rc *RevenueChart) chartHeight() int {
	return rc.Height - rc.MarginTop - rc.MarginBottom
}

// drawAxis draws horizontal grid lines at quarters of the largest day
func (rc *RevenueChart) drawAxis(svg *strings.Builder) {
	baseline := rc.Height - rc.MarginBottom
	for i := 0; i <= 4; i++ {
		y := baseline - rc.chartHeight()*i/4
		value := rc.MaxRevenue.Mul(decimal.NewFromInt(int64(i))).Div(decimal.NewFromInt(4))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			rc.MarginLeft, y, rc.Width-rc.MarginRight, y))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="end">%s</text>`,
			rc.MarginLeft-6, y+3, reports.FormatCurrency(value)))
	}
}

func (rc *RevenueChart) drawBars(svg *strings.Builder, days []dto.DateRevenue) {
	baseline := rc.Height - rc.MarginBottom
	slot := (rc.Width - rc.MarginLeft - rc.MarginRight) / len(days)
	barWidth := slot - rc.BarGap
	if barWidth < 1 {
		barWidth = 1
	}

	for i, d := range days {
		ratio, _ := d.Revenue.Div(rc.MaxRevenue).Float64()
		height := int(ratio * float64(rc.chartHeight()))
		x := rc.MarginLeft + i*slot + rc.BarGap/2

		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" class="bar"><title>%s: %s</title></rect>`,
			x, baseline-height, barWidth, height, d.Date, reports.FormatCurrency(d.Revenue)))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="axis-label" text-anchor="middle">%s</text>`,
			x+barWidth/2, baseline+15, d.Date))
	}
}
