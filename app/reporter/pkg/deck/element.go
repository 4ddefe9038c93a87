// Package deck 把报告模型编译为与输出格式无关的幻灯片序列
package deck

import (
	"encoding/json"
	"fmt"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// 逻辑画布尺寸，所有元素坐标都在此坐标系内
const (
	CanvasWidth  = 960.0
	CanvasHeight = 540.0
)

// Frame 元素在逻辑画布中的位置与尺寸
type Frame struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Element 幻灯片元素，只有本包内定义的类型可以实现
type Element interface {
	Bounds() Frame
	isElement()
}

// Align 文本对齐
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Style 元素的显示提示
type Style struct {
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"` // RRGGBB
	Bold     bool    `json:"bold,omitempty"`
	Align    Align   `json:"align,omitempty"`
}

// Title 标题文本
type Title struct {
	Frame
	Style
	Text string `json:"text"`
}

// Text 正文。Literal 非空时直接使用，否则取数据集 Lines[From:To]
type Text struct {
	Frame
	Style
	Literal    string `json:"literal,omitempty"`
	DatasetKey string `json:"datasetKey,omitempty"`
	From       int    `json:"from,omitempty"`
	To         int    `json:"to,omitempty"` // 0 表示到末尾
	Bullets    bool   `json:"bullets,omitempty"`
}

// ChartType 图表类型
type ChartType string

const (
	ChartBar   ChartType = "bar"
	ChartPie   ChartType = "pie"
	ChartDonut ChartType = "donut"
	ChartCloud ChartType = "cloud"
)

// Chart 图表，只声明数据集键和显示提示
type Chart struct {
	Frame
	Style
	Type        ChartType `json:"type"`
	DatasetKey  string    `json:"datasetKey"`
	Caption     string    `json:"caption,omitempty"`
	Stacked     bool      `json:"stacked,omitempty"`
	ShowLegend  bool      `json:"showLegend,omitempty"`
	ShowValues  bool      `json:"showValues,omitempty"`
	Horizontal  bool      `json:"horizontal,omitempty"`
	ColorOffset int       `json:"colorOffset,omitempty"`
}

// Table 表格
type Table struct {
	Frame
	Style
	DatasetKey   string    `json:"datasetKey"`
	ColumnWidths []float64 `json:"columnWidths,omitempty"` // 相对宽度
}

// KPI 指标卡片组
type KPI struct {
	Frame
	Style
	DatasetKey string `json:"datasetKey"`
	Suffix     string `json:"suffix,omitempty"`
}

// Image 图片，Format 为 png 或 jpg
type Image struct {
	Frame
	Data   []byte `json:"-"`
	Format string `json:"format"`
}

func (e Title) Bounds() Frame { return e.Frame }
func (e Text) Bounds() Frame  { return e.Frame }
func (e Chart) Bounds() Frame { return e.Frame }
func (e Table) Bounds() Frame { return e.Frame }
func (e KPI) Bounds() Frame   { return e.Frame }
func (e Image) Bounds() Frame { return e.Frame }

func (Title) isElement() {}
func (Text) isElement()  {}
func (Chart) isElement() {}
func (Table) isElement() {}
func (KPI) isElement()   {}
func (Image) isElement() {}

// 元素的 JSON 类型标记
const (
	ElementTitle = "title"
	ElementText  = "text"
	ElementChart = "chart"
	ElementTable = "table"
	ElementKPI   = "kpi"
	ElementImage = "image"
)

// marshalElement 输出带 kind 字段的扁平对象
func marshalElement(e Element) ([]byte, error) {
	switch v := e.(type) {
	case Title:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			Title
		}{ElementTitle, v})
	case Text:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			Text
		}{ElementText, v})
	case Chart:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			Chart
		}{ElementChart, v})
	case Table:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			Table
		}{ElementTable, v})
	case KPI:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			KPI
		}{ElementKPI, v})
	case Image:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			Image
		}{ElementImage, v})
	default:
		return nil, fmt.Errorf("unknown element %T", e)
	}
}

// Lines 解析文本元素实际显示的行
func (e Text) Lines(m *report.Model) []string {
	if e.Literal != "" {
		return []string{e.Literal}
	}
	d, ok := m.Dataset(e.DatasetKey)
	if !ok {
		return nil
	}
	from, to := e.From, e.To
	if to <= 0 || to > len(d.Lines) {
		to = len(d.Lines)
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return nil
	}
	return d.Lines[from:to]
}

// DatasetKey 返回元素引用的数据集键，没有引用时返回空串
func DatasetKey(e Element) string {
	switch v := e.(type) {
	case Text:
		return v.DatasetKey
	case Chart:
		return v.DatasetKey
	case Table:
		return v.DatasetKey
	case KPI:
		return v.DatasetKey
	default:
		return ""
	}
}
