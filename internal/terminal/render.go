package terminal

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"ledgerdash/internal/charts"
	"ledgerdash/internal/money"
	"ledgerdash/internal/view"
)

const barWidth = 30

// RenderView writes the balance line followed by the transaction table.
func RenderView(w io.Writer, state *view.State) error {
	if _, err := fmt.Fprintf(w, "Balance: %s\n\n", state.BalanceText()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tAMOUNT\tDATE")
	rows := state.Rows()
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Type, r.Amount, r.CreatedAt)
	}
	if len(rows) == 0 {
		fmt.Fprintln(tw, "\t(no transactions)\t\t")
	}
	return tw.Flush()
}

// ChartRenderer draws widgets as horizontal text bars.
type ChartRenderer struct {
	w         io.Writer
	formatter *money.Formatter
}

func NewChartRenderer(w io.Writer, f *money.Formatter) *ChartRenderer {
	if f == nil {
		f = money.Rupiah()
	}
	return &ChartRenderer{w: w, formatter: f}
}

func (r *ChartRenderer) Render(wd charts.Widget) error {
	if len(wd.Datasets) == 0 {
		return fmt.Errorf("chart %s: no datasets", wd.Element)
	}
	data := wd.Datasets[0].Data
	if len(data) != len(wd.Labels) {
		return fmt.Errorf("chart %s: %d labels for %d values", wd.Element, len(wd.Labels), len(data))
	}

	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, v)
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "%s\n", wd.Title)
	for i, label := range wd.Labels {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", label, bar(data[i], peak), r.value(wd, data[i]))
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func (r *ChartRenderer) value(wd charts.Widget, v float64) string {
	if wd.Element == charts.BalanceChart {
		return r.formatter.Format(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / peak * barWidth))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
