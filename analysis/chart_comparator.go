package analysis

import (
	"fmt"
	"os"
	"path"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/zeu5/mab-sim/core"
	"github.com/zeu5/mab-sim/util"
)

// ChartComparator renders the averaged metric curves of every experiment as
// one html page with a line chart per metric.
type ChartComparator struct {
	title    string
	savePath string
}

var _ core.Comparator = &ChartComparator{}

func NewChartComparator(saveDir, title string) *ChartComparator {
	return &ChartComparator{
		title:    title,
		savePath: path.Join(saveDir, "charts.html"),
	}
}

func (c *ChartComparator) Path() string {
	return c.savePath
}

func (c *ChartComparator) Compare(experimentNames []string, datasets []core.DataSet) error {
	metrics := make([]*MetricsDataset, len(datasets))
	horizon := 0
	for i, ds := range datasets {
		m, ok := ds.(*MetricsDataset)
		if !ok {
			return fmt.Errorf("chart comparator: unexpected dataset %T for %s", ds, experimentNames[i])
		}
		metrics[i] = m
		if l := len(m.Curve(core.AvgReward)); l > horizon {
			horizon = l
		}
	}

	page := components.NewPage()
	page.PageTitle = c.title
	for _, metric := range core.Metrics() {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{
				Theme: types.ThemeInfographic,
			}),
			charts.WithTitleOpts(opts.Title{
				Title:    metric.Title(),
				Subtitle: c.title,
			}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Timestep"}),
		)
		line.SetXAxis(util.MakeRange(horizon))
		for i, name := range experimentNames {
			curve := metrics[i].Curve(metric)
			items := make([]opts.LineData, len(curve))
			for t, v := range curve {
				items[t] = opts.LineData{Value: v}
			}
			line.AddSeries(name, items)
		}
		page.AddCharts(line)
	}

	if err := os.MkdirAll(path.Dir(c.savePath), 0755); err != nil {
		return err
	}
	f, err := os.Create(c.savePath)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
