package vector

import (
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// ImageCanvas 支持位图的画布
type ImageCanvas interface {
	Image(r Rect, data []byte, format string) error
}

// donutInner 环形图内径比例
const donutInner = 0.5

// DrawSlide 在画布上画出一页幻灯片的背景和全部元素。
// 图片绘制失败不影响其它元素，返回第一个图片错误供调用方记录。
func DrawSlide(c Canvas, s deck.Slide, m *report.Model, p render.Palette) error {
	var imgErr error
	if s.Background != "" {
		c.FillRect(Rect{0, 0, deck.CanvasWidth, deck.CanvasHeight}, s.Background)
	}
	for _, e := range s.Elements {
		f := e.Bounds()
		area := Rect{f.X, f.Y, f.W, f.H}
		switch v := e.(type) {
		case deck.Title:
			DrawTextBlock(c, area, []string{v.Text}, textStyle(v.Style), false)
		case deck.Text:
			DrawTextBlock(c, area, v.Lines(m), textStyle(v.Style), v.Bullets)
		case deck.Chart:
			drawChart(c, area, v, m, p)
		case deck.Table:
			d, _ := m.Dataset(v.DatasetKey)
			DrawTable(c, area, d, v.ColumnWidths, ChartOptions{Palette: p, FontSize: v.FontSize, TextColor: v.Color})
		case deck.KPI:
			d, _ := m.Dataset(v.DatasetKey)
			DrawKPI(c, area, d, v.Suffix, textStyle(v.Style), ChartOptions{Palette: p, FontSize: 10})
		case deck.Image:
			ic, ok := c.(ImageCanvas)
			if !ok || len(v.Data) == 0 {
				continue
			}
			if err := ic.Image(area, v.Data, v.Format); err != nil && imgErr == nil {
				imgErr = err
			}
		}
	}
	return imgErr
}

func drawChart(c Canvas, area Rect, ch deck.Chart, m *report.Model, p render.Palette) {
	d, _ := m.Dataset(ch.DatasetKey)
	o := ChartOptions{
		Palette:     p,
		FontSize:    ch.FontSize,
		TextColor:   ch.Color,
		ShowLegend:  ch.ShowLegend,
		ShowValues:  ch.ShowValues,
		Stacked:     ch.Stacked,
		ColorOffset: ch.ColorOffset,
	}
	switch ch.Type {
	case deck.ChartPie:
		DrawPie(c, area, d, o, 0)
	case deck.ChartDonut:
		DrawPie(c, area, d, o, donutInner)
	case deck.ChartCloud:
		DrawCloud(c, area, d, o, ch.FontSize)
	default:
		DrawBar(c, area, d, o)
	}
}

func textStyle(s deck.Style) TextStyle {
	st := TextStyle{Size: s.FontSize, Color: s.Color, Bold: s.Bold}
	if s.Align == deck.AlignCenter {
		st.Align = AlignCenter
	}
	return st
}
