// Package render 定义渲染器契约与共享调色板
package render

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// Format 输出格式
type Format string

const (
	FormatPPTX Format = "pptx"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat 不支持的输出格式
var ErrUnknownFormat = errors.New("unsupported format")

// ParseFormat 解析输出格式
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPPTX:
		return FormatPPTX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// Ext 文件扩展名
func (f Format) Ext() string {
	return string(f)
}

// Renderer 把幻灯片序列渲染为二进制文档
type Renderer interface {
	Render(ctx context.Context, d *deck.Deck, m *report.Model) ([]byte, error)
	Format() Format
}

// Placeholder 空数据集的占位文本
const Placeholder = "No data available"

// DefaultPalette 默认调色板
var DefaultPalette = Palette{colors: []string{
	"2E75B6", "ED7D31", "A5A5A5", "FFC000", "5B9BD5", "70AD47", "264478", "9E480E",
}}

// Palette 固定调色板，两个渲染器按同一索引取色
type Palette struct {
	colors []string
}

// NewPalette 创建调色板，非法颜色返回错误
func NewPalette(colors ...string) (Palette, error) {
	if len(colors) == 0 {
		return DefaultPalette, nil
	}
	out := make([]string, 0, len(colors))
	for _, c := range colors {
		c = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
		if _, _, _, err := parseHex(c); err != nil {
			return Palette{}, err
		}
		out = append(out, c)
	}
	return Palette{colors: out}, nil
}

// Len 颜色数量
func (p Palette) Len() int {
	if len(p.colors) == 0 {
		return len(DefaultPalette.colors)
	}
	return len(p.colors)
}

// Color 返回第 i 个颜色（RRGGBB），超出范围时循环
func (p Palette) Color(i int) string {
	colors := p.colors
	if len(colors) == 0 {
		colors = DefaultPalette.colors
	}
	if i < 0 {
		i = -i
	}
	return colors[i%len(colors)]
}

// RGB 返回第 i 个颜色的分量
func (p Palette) RGB(i int) (int, int, int) {
	r, g, b, _ := parseHex(p.Color(i))
	return r, g, b
}

// HexRGB 解析 RRGGBB，失败时返回黑色
func HexRGB(hex string) (int, int, int) {
	r, g, b, err := parseHex(strings.TrimPrefix(hex, "#"))
	if err != nil {
		return 0, 0, 0
	}
	return r, g, b
}

func parseHex(c string) (int, int, int, error) {
	if len(c) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", c)
	}
	v, err := strconv.ParseUint(c, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", c, err)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}
