// Package vector 用矩形、三角形和文本三种原语绘制图表，供没有原生图表对象的输出格式使用
package vector

import (
	"math"
)

// 饼图参数
const (
	// Segments 每个扇区的三角扇细分数
	Segments = 50
	// LabelRadius 百分比标签所在半径比例
	LabelRadius = 0.7
	// LabelThreshold 小于该占比的扇区不画标签
	LabelThreshold = 0.05
	// StartAngle 12 点钟方向
	StartAngle = -math.Pi / 2
)

// Point 画布坐标，y 轴向下
type Point struct {
	X, Y float64
}

// Rect 矩形区域
type Rect struct {
	X, Y, W, H float64
}

// Center 中心点
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Inset 四边各收缩 d
func (r Rect) Inset(d float64) Rect {
	return Rect{r.X + d, r.Y + d, math.Max(0, r.W-2*d), math.Max(0, r.H-2*d)}
}

// Triangle 三角形
type Triangle [3]Point

// Polar 从 center 沿 angle 方向走 radius 得到的点。y 轴向下，角度增大即顺时针
func Polar(center Point, radius, angle float64) Point {
	return Point{center.X + radius*math.Cos(angle), center.Y + radius*math.Sin(angle)}
}

// ArcFan 把 [start, end] 的扇区（inner > 0 时为环形）切成 segments 个等角三角扇
func ArcFan(center Point, inner, outer, start, end float64, segments int) []Triangle {
	if segments <= 0 {
		segments = Segments
	}
	if end <= start || outer <= 0 {
		return nil
	}
	step := (end - start) / float64(segments)
	n := segments
	if inner > 0 {
		n *= 2
	}
	out := make([]Triangle, 0, n)
	for i := 0; i < segments; i++ {
		a0 := start + step*float64(i)
		a1 := a0 + step
		o0, o1 := Polar(center, outer, a0), Polar(center, outer, a1)
		if inner <= 0 {
			out = append(out, Triangle{center, o0, o1})
			continue
		}
		i0, i1 := Polar(center, inner, a0), Polar(center, inner, a1)
		out = append(out, Triangle{i0, o0, o1}, Triangle{i0, o1, i1})
	}
	return out
}

// Slice 饼图扇区
type Slice struct {
	Index     int
	Value     float64
	Fraction  float64
	Start     float64
	End       float64
	LabelAt   Point
	ShowLabel bool
}

// PieLayout 从 12 点钟方向开始顺时针排列扇区，跨度 = value/T * 2π。
// T 为 0 时返回 nil，负值按 0 处理。
func PieLayout(values []float64, center Point, radius float64) []Slice {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return nil
	}

	slices := make([]Slice, 0, len(values))
	angle := StartAngle
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		frac := v / total
		span := frac * 2 * math.Pi
		s := Slice{
			Index:     i,
			Value:     v,
			Fraction:  frac,
			Start:     angle,
			End:       angle + span,
			ShowLabel: frac >= LabelThreshold,
		}
		s.LabelAt = Polar(center, radius*LabelRadius, angle+span/2)
		slices = append(slices, s)
		angle += span
	}
	return slices
}

// Bar 单根柱子
type Bar struct {
	Index int
	Value float64
	X     float64
	Y     float64
	W     float64
	H     float64
}

// Gutter 默认间距：区域宽度的 25% 平均分给 n+1 个空隙
func Gutter(width float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return width * 0.25 / float64(n+1)
}

// BarLayout barWidth = (area.W - totalGutter) / n，高度按 max(maxValue, 1) 线性缩放，
// 柱子底部对齐 area 的底边
func BarLayout(values []float64, area Rect, gutter float64) []Bar {
	n := len(values)
	if n == 0 {
		return nil
	}
	totalGutter := gutter * float64(n+1)
	barWidth := (area.W - totalGutter) / float64(n)
	if barWidth < 0 {
		barWidth = 0
	}
	maxValue := 1.0
	for _, v := range values {
		maxValue = math.Max(maxValue, v)
	}
	baseline := area.Y + area.H

	bars := make([]Bar, n)
	for i, v := range values {
		h := math.Max(v, 0) / maxValue * area.H
		bars[i] = Bar{
			Index: i,
			Value: v,
			X:     area.X + gutter + float64(i)*(barWidth+gutter),
			Y:     baseline - h,
			W:     barWidth,
			H:     h,
		}
	}
	return bars
}
