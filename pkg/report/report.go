// Package report prints the analysis tables and renders the gender chart.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"repeat-rca/pkg/models"

	"github.com/olekukonko/tablewriter"
)

// Print writes the repeat-customer count, demographics, behaviour
// statistics and top categories to w.
func Print(w io.Writer, res *models.Result) {
	fmt.Fprintf(w, "Number of Repeat Customers: %d\n", len(res.RepeatCustomers))

	fmt.Fprintln(w, "\nDemographics Summary:")
	demo := newTable(w, []string{"gender", "device", "count"})
	for _, d := range res.Demographics {
		demo.Append([]string{d.Gender, d.DeviceType, strconv.Itoa(d.Count)})
	}
	demo.Render()

	fmt.Fprintln(w, "\nTransaction Behavior Summary:")
	beh := newTable(w, []string{"", "avg_transaction_amt", "transaction_frequency"})
	beh.AppendBulk(behaviorRows(res.Behavior))
	beh.Render()

	fmt.Fprintln(w, "\nTop Products for Repeat Customers:")
	top := newTable(w, []string{"Category", "count"})
	for _, c := range res.TopCategories {
		top.Append([]string{c.Category, strconv.Itoa(c.Count)})
	}
	top.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	return t
}

func behaviorRows(b models.BehaviorSummary) [][]string {
	a, g := b.AvgAmount, b.AvgGap
	return [][]string{
		{"count", strconv.Itoa(a.Count), strconv.Itoa(g.Count)},
		{"mean", num(a.Mean), num(g.Mean)},
		{"std", num(a.Std), num(g.Std)},
		{"min", num(a.Min), num(g.Min)},
		{"25%", num(a.P25), num(g.P25)},
		{"50%", num(a.P50), num(g.P50)},
		{"75%", num(a.P75), num(g.P75)},
		{"max", num(a.Max), num(g.Max)},
	}
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
