package vector

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// Align 文本水平对齐
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle 文本样式
type TextStyle struct {
	Size  float64
	Color string // RRGGBB
	Bold  bool
	Align Align
}

// Canvas 绘图后端只需提供这几种原语
type Canvas interface {
	FillRect(r Rect, color string)
	FillTriangle(t Triangle, color string)
	// Text 在 box 内画单行文本，垂直居中，水平方向按 Align 对齐
	Text(box Rect, s string, st TextStyle)
	TextWidth(s string, size float64) float64
}

// ChartOptions 图表绘制参数
type ChartOptions struct {
	Palette     render.Palette
	FontSize    float64
	TextColor   string
	ShowLegend  bool
	ShowValues  bool
	Stacked     bool
	ColorOffset int
	Segments    int
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.FontSize <= 0 {
		o.FontSize = 10
	}
	if o.TextColor == "" {
		o.TextColor = "333333"
	}
	if o.Segments <= 0 {
		o.Segments = Segments
	}
	return o
}

const (
	placeholderFill = "F2F2F2"
	placeholderText = "7F7F7F"
	headerText      = "FFFFFF"
	gridLine        = "D9D9D9"
)

// DrawPlaceholder 空数据占位
func DrawPlaceholder(c Canvas, area Rect, size float64) {
	if size <= 0 {
		size = 12
	}
	c.FillRect(area, placeholderFill)
	c.Text(area, render.Placeholder, TextStyle{Size: size * 1.2, Color: placeholderText, Align: AlignCenter})
}

// DrawBar 柱状图。多序列且 Stacked 时按序列堆叠，柱顶数值为合计。
func DrawBar(c Canvas, area Rect, d report.Dataset, o ChartOptions) {
	o = o.withDefaults()
	if d.Empty() {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}
	lineH := o.FontSize * 1.2
	multi := len(d.Series) > 1

	plot := area
	if o.ShowLegend && multi {
		names := make([]string, len(d.Series))
		for i, s := range d.Series {
			names[i] = s.Name
		}
		legendH := legendHeight(len(names), o.FontSize)
		drawLegend(c, Rect{area.X, area.Y + area.H - legendH, area.W, legendH}, names, o)
		plot.H -= legendH + lineH/2
	}
	labelH := 3 * lineH
	valueH := lineH
	plot.Y += valueH
	plot.H -= valueH + labelH
	if plot.H <= 0 || plot.W <= 0 {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}

	totals := d.Totals()
	if !multi || !o.Stacked {
		totals = d.Series[0].Values
	}
	bars := BarLayout(totals, plot, Gutter(plot.W, len(totals)))
	baseline := plot.Y + plot.H
	c.FillRect(Rect{plot.X, baseline, plot.W, 0.75}, gridLine)

	maxValue := 1.0
	for _, v := range totals {
		maxValue = math.Max(maxValue, v)
	}
	for i, b := range bars {
		if multi && o.Stacked {
			y := baseline
			for si, s := range d.Series {
				if i >= len(s.Values) || s.Values[i] <= 0 {
					continue
				}
				h := s.Values[i] / maxValue * plot.H
				y -= h
				c.FillRect(Rect{b.X, y, b.W, h}, o.Palette.Color(o.ColorOffset+si))
			}
		} else if b.H > 0 {
			c.FillRect(Rect{b.X, b.Y, b.W, b.H}, o.Palette.Color(o.ColorOffset))
		}

		if o.ShowValues {
			c.Text(Rect{b.X - b.W/2, b.Y - valueH, b.W * 2, valueH}, FormatValue(b.Value), TextStyle{Size: o.FontSize, Color: o.TextColor, Bold: true, Align: AlignCenter})
		}
		if i < len(d.Labels) {
			labelW := b.W + Gutter(plot.W, len(totals))
			lines := ClampLines(WrapText(d.Labels[i], labelW, o.FontSize, c.TextWidth), 3)
			for li, line := range lines {
				c.Text(Rect{b.X + b.W/2 - labelW/2, baseline + 2 + float64(li)*lineH, labelW, lineH}, line, TextStyle{Size: o.FontSize, Color: o.TextColor, Align: AlignCenter})
			}
		}
	}
}

// DrawPie 饼图；innerRatio > 0 时为环形图。图例以两列网格画在图下方。
func DrawPie(c Canvas, area Rect, d report.Dataset, o ChartOptions, innerRatio float64) {
	o = o.withDefaults()
	if d.Empty() {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}

	plot := area
	if o.ShowLegend {
		legendH := legendHeight(len(d.Labels), o.FontSize)
		drawLegend(c, Rect{area.X, area.Y + area.H - legendH, area.W, legendH}, d.Labels, o)
		plot.H -= legendH + o.FontSize
	}
	radius := math.Min(plot.W, plot.H)/2 - 4
	if radius <= 0 {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}
	center := plot.Center()
	inner := radius * innerRatio

	slices := PieLayout(d.Totals(), center, radius)
	for _, s := range slices {
		color := o.Palette.Color(o.ColorOffset + s.Index)
		for _, t := range ArcFan(center, inner, radius, s.Start, s.End, o.Segments) {
			c.FillTriangle(t, color)
		}
	}
	if !o.ShowValues {
		return
	}
	for _, s := range slices {
		if !s.ShowLabel {
			continue
		}
		label := strconv.FormatFloat(math.Round(s.Fraction*1000)/10, 'f', 1, 64) + "%"
		w := c.TextWidth(label, o.FontSize) + 4
		c.Text(Rect{s.LabelAt.X - w/2, s.LabelAt.Y - o.FontSize/2, w, o.FontSize}, label, TextStyle{Size: o.FontSize, Color: headerText, Bold: true, Align: AlignCenter})
	}
}

// DrawCloud 词云，第一条序列为 0-100 权重
func DrawCloud(c Canvas, area Rect, d report.Dataset, o ChartOptions, maxSize float64) {
	o = o.withDefaults()
	if d.Empty() {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}
	if maxSize <= 0 {
		maxSize = 36
	}
	var weights []float64
	if len(d.Series) > 0 {
		weights = d.Series[0].Values
	}
	for _, w := range CloudLayout(d.Labels, weights, area, maxSize/3, maxSize, c.TextWidth) {
		c.Text(w.Box, w.Text, TextStyle{Size: w.Size, Color: o.Palette.Color(o.ColorOffset + w.Index), Bold: w.Size > maxSize*0.6, Align: AlignCenter})
	}
}

// DrawTable 表格：表头填充主色，单元格按列宽换行，放不下的行不画
func DrawTable(c Canvas, area Rect, d report.Dataset, widths []float64, o ChartOptions) {
	o = o.withDefaults()
	if d.Empty() {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}
	cols := ColumnWidths(len(d.Columns), widths, area.W)
	const pad = 4.0
	lineH := o.FontSize * 1.25

	y := area.Y
	headerH := lineH + 2*pad
	c.FillRect(Rect{area.X, y, area.W, headerH}, o.Palette.Color(o.ColorOffset))
	x := area.X
	for i, col := range d.Columns {
		c.Text(Rect{x + pad, y + pad, cols[i] - 2*pad, lineH}, col, TextStyle{Size: o.FontSize, Color: headerText, Bold: true})
		x += cols[i]
	}
	y += headerH

	for ri, row := range d.Rows {
		cells := make([][]string, len(cols))
		n := 1
		for i := range cols {
			if i < len(row) {
				cells[i] = WrapText(row[i], cols[i]-2*pad, o.FontSize, c.TextWidth)
			}
			n = max(n, len(cells[i]))
		}
		rowH := float64(n)*lineH + 2*pad
		if y+rowH > area.Y+area.H {
			break
		}
		if ri%2 == 1 {
			c.FillRect(Rect{area.X, y, area.W, rowH}, placeholderFill)
		}
		x = area.X
		for i, lines := range cells {
			for li, line := range lines {
				c.Text(Rect{x + pad, y + pad + float64(li)*lineH, cols[i] - 2*pad, lineH}, line, TextStyle{Size: o.FontSize, Color: o.TextColor})
			}
			x += cols[i]
		}
		y += rowH
	}
	c.FillRect(Rect{area.X, y, area.W, 0.75}, gridLine)
}

// DrawKPI 指标卡片，等宽横排
func DrawKPI(c Canvas, area Rect, d report.Dataset, suffix string, st TextStyle, o ChartOptions) {
	o = o.withDefaults()
	if len(d.Labels) == 0 || len(d.Series) == 0 {
		DrawPlaceholder(c, area, o.FontSize)
		return
	}
	n := float64(len(d.Labels))
	const gap = 16.0
	w := (area.W - gap*(n-1)) / n
	for i, label := range d.Labels {
		x := area.X + float64(i)*(w+gap)
		c.FillRect(Rect{x, area.Y, w, area.H}, placeholderFill)
		c.FillRect(Rect{x, area.Y, 4, area.H}, o.Palette.Color(o.ColorOffset+i))
		v := 0.0
		if i < len(d.Series[0].Values) {
			v = d.Series[0].Values[i]
		}
		c.Text(Rect{x, area.Y + area.H*0.15, w, area.H * 0.45}, FormatValue(v)+suffix, TextStyle{Size: st.Size, Color: st.Color, Bold: true, Align: AlignCenter})
		c.Text(Rect{x, area.Y + area.H*0.62, w, area.H * 0.25}, label, TextStyle{Size: o.FontSize * 1.2, Color: o.TextColor, Align: AlignCenter})
	}
}

// legendHeight 两列网格所需高度
func legendHeight(n int, size float64) float64 {
	rows := (n + 1) / 2
	return float64(rows) * size * 1.6
}

// drawLegend 两列网格，每项一个色块加标签
func drawLegend(c Canvas, area Rect, labels []string, o ChartOptions) {
	rowH := o.FontSize * 1.6
	colW := area.W / 2
	for i, label := range labels {
		col, row := i%2, i/2
		x := area.X + float64(col)*colW
		y := area.Y + float64(row)*rowH
		sw := o.FontSize
		c.FillRect(Rect{x, y + (rowH-sw)/2, sw, sw}, o.Palette.Color(o.ColorOffset+i))
		lines := ClampLines(WrapText(label, colW-sw-12, o.FontSize, c.TextWidth), 1)
		if len(lines) > 0 {
			c.Text(Rect{x + sw + 6, y, colW - sw - 12, rowH}, lines[0], TextStyle{Size: o.FontSize, Color: o.TextColor})
		}
	}
}

// ColumnWidths 按权重把 total 分给 n 列，缺失或非正的权重按 1 计
func ColumnWidths(n int, weights []float64, total float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		w := 1.0
		if i < len(weights) && weights[i] > 0 {
			w = weights[i]
		}
		out[i] = w
		sum += w
	}
	for i := range out {
		out[i] = out[i] / sum * total
	}
	return out
}

// FormatValue 整数不带小数，其余保留一位
func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return fmt.Sprintf("%.1f", v)
}
