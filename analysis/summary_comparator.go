package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/zeu5/mab-sim/core"
)

// SummaryComparator prints the final value of every metric per experiment.
// The best experiment for a metric is highlighted: highest average reward
// and optimal rate, lowest regret.
type SummaryComparator struct {
	title string
	out   io.Writer
	au    aurora.Aurora
}

var _ core.Comparator = &SummaryComparator{}

func NewSummaryComparator(title string, out io.Writer, colors bool) *SummaryComparator {
	return &SummaryComparator{
		title: title,
		out:   out,
		au:    aurora.NewAurora(colors),
	}
}

func (s *SummaryComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	metrics := make([]*MetricsDataset, len(datasets))
	for i, ds := range datasets {
		m, ok := ds.(*MetricsDataset)
		if !ok {
			return fmt.Errorf("summary comparator: unexpected dataset %T for %s", ds, experimentNames[i])
		}
		metrics[i] = m
	}

	best := make(map[core.Metric]int)
	for _, metric := range core.Metrics() {
		best[metric] = -1
		for i, m := range metrics {
			v := m.Final[metric].Mean
			if best[metric] == -1 {
				best[metric] = i
				continue
			}
			cur := metrics[best[metric]].Final[metric].Mean
			if (metric == core.CumRegret && v < cur) || (metric != core.CumRegret && v > cur) {
				best[metric] = i
			}
		}
	}

	nameWidth := len("Policy")
	for _, name := range experimentNames {
		if l := len([]rune(name)); l > nameWidth {
			nameWidth = l
		}
	}
	const colWidth = 22

	b := new(strings.Builder)
	fmt.Fprintf(b, "%s\n", s.au.Bold(s.title))
	fmt.Fprintf(b, "%s", pad("Policy", nameWidth))
	for _, metric := range core.Metrics() {
		fmt.Fprintf(b, "  %s", pad(metric.Title(), colWidth))
	}
	b.WriteString("\n")
	for i, name := range experimentNames {
		fmt.Fprintf(b, "%s", pad(name, nameWidth))
		for _, metric := range core.Metrics() {
			f := metrics[i].Final[metric]
			cell := pad(fmt.Sprintf("%.4f ± %.4f", f.Mean, f.StdDev), colWidth)
			if best[metric] == i {
				fmt.Fprintf(b, "  %s", s.au.Green(cell))
			} else {
				fmt.Fprintf(b, "  %s", cell)
			}
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(s.out, b.String())
	return err
}

func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
