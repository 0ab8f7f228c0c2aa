package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/everkeep/go-admin-console/pkg/adminapi"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// TrendChart renders metric trend series into server-side ECharts markup.
// Signup and response trends use line charts; training job tallies render as
// bars.
type TrendChart struct {
	chartType string
	cache     RenderCache
	theme     string
}

// TrendChartOption customizes chart rendering.
type TrendChartOption func(*TrendChart)

// WithTrendCache injects a render cache.
func WithTrendCache(cache RenderCache) TrendChartOption {
	return func(c *TrendChart) {
		c.cache = cache
	}
}

// WithTrendTheme sets the chart theme (defaults to Westeros).
func WithTrendTheme(theme string) TrendChartOption {
	return func(c *TrendChart) {
		c.theme = theme
	}
}

// NewTrendChart builds a renderer for the given chart type ("line" or "bar").
func NewTrendChart(chartType string, opts ...TrendChartOption) *TrendChart {
	c := &TrendChart{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWesteros,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render produces chart HTML for a named trend series. Points are plotted in
// the order given, with dates as axis labels.
func (c *TrendChart) Render(title, seriesName string, points []adminapi.TrendPoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("console: trend series is required")
	}
	renderFn := func() (string, error) {
		return c.render(title, seriesName, points)
	}
	if c.cache != nil {
		key := fmt.Sprintf("%s:%s:%s", c.chartType, seriesName, payloadHash(points))
		return c.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func (c *TrendChart) render(title, seriesName string, points []adminapi.TrendPoint) (string, error) {
	axis := make([]string, len(points))
	for i, p := range points {
		axis[i] = p.Date.Format("2006-01-02")
	}
	switch c.chartType {
	case "line":
		line := charts.NewLine()
		line.SetGlobalOptions(c.globalChartOptions(title)...)
		line.SetXAxis(axis)
		line.AddSeries(seriesName, toLineData(points))
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case "bar":
		bar := charts.NewBar()
		bar.SetGlobalOptions(c.globalChartOptions(title)...)
		bar.SetXAxis(axis)
		bar.AddSeries(seriesName, toBarData(points))
		return renderChart(bar)
	default:
		return "", fmt.Errorf("console: unsupported chart type: %s", c.chartType)
	}
}

func (c *TrendChart) globalChartOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  c.theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toLineData(points []adminapi.TrendPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Value: point.Value}
	}
	return data
}

func toBarData(points []adminapi.TrendPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Value: point.Value}
	}
	return data
}
