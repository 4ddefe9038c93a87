package vector

import (
	"strings"
)

// Measure 返回文本在给定字号下的宽度
type Measure func(s string, size float64) float64

// WrapText 按宽度贪心换行；单词本身超宽时独占一行
func WrapText(text string, width, size float64, measure Measure) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate, size) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// ClampLines 最多保留 n 行，被截断时在最后一行末尾加省略号
func ClampLines(lines []string, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] = strings.TrimRight(out[n-1], " .,;:") + "…"
	return out
}

// Word 词云中的一个词
type Word struct {
	Text  string
	Size  float64
	Index int
	Box   Rect
}

// CloudLayout 近似词云：字号按权重在 [minSize, maxSize] 内线性插值，
// 按输入顺序逐行居中排布，放不下的词被丢弃。结果只依赖输入，保证可重复。
func CloudLayout(labels []string, weights []float64, area Rect, minSize, maxSize float64, measure Measure) []Word {
	if len(labels) == 0 || area.W <= 0 || area.H <= 0 {
		return nil
	}
	const gap = 12.0

	type row struct {
		words []Word
		width float64
		h     float64
	}
	var rows []row
	cur := row{}
	usedH := 0.0

	flush := func() bool {
		if len(cur.words) == 0 {
			return true
		}
		if usedH+cur.h > area.H {
			return false
		}
		rows = append(rows, cur)
		usedH += cur.h
		cur = row{}
		return true
	}

	for i, label := range labels {
		w := 0.0
		if i < len(weights) {
			w = weights[i]
		}
		size := minSize + (maxSize-minSize)*clamp(w, 0, 100)/100
		width := measure(label, size)
		if width > area.W {
			continue
		}
		extra := width
		if len(cur.words) > 0 {
			extra += gap
		}
		if cur.width+extra > area.W {
			if !flush() {
				break
			}
			extra = width
		}
		cur.words = append(cur.words, Word{Text: label, Size: size, Index: i, Box: Rect{W: width, H: size * 1.3}})
		cur.width += extra
		cur.h = max(cur.h, size*1.3)
	}
	flush()

	top := area.Y + (area.H-usedH)/2
	var out []Word
	for _, r := range rows {
		x := area.X + (area.W-r.width)/2
		for _, w := range r.words {
			w.Box.X = x
			w.Box.Y = top + (r.h-w.Box.H)/2
			out = append(out, w)
			x += w.Box.W + gap
		}
		top += r.h
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DrawTextBlock 逐段换行后自上而下排布，超出区域的行不画。bullets 为真时每段加项目符号。
func DrawTextBlock(c Canvas, area Rect, paragraphs []string, st TextStyle, bullets bool) {
	if st.Size <= 0 {
		st.Size = 12
	}
	lineH := st.Size * 1.35
	indent := 0.0
	if bullets {
		indent = st.Size * 1.2
	}
	y := area.Y
	for _, p := range paragraphs {
		lines := WrapText(p, area.W-indent, st.Size, c.TextWidth)
		for i, line := range lines {
			if y+lineH > area.Y+area.H {
				return
			}
			if bullets && i == 0 {
				c.Text(Rect{area.X, y, indent, lineH}, "•", TextStyle{Size: st.Size, Color: st.Color, Bold: true})
			}
			c.Text(Rect{area.X + indent, y, area.W - indent, lineH}, line, st)
			y += lineH
		}
		if bullets {
			y += lineH / 2
		}
	}
}
