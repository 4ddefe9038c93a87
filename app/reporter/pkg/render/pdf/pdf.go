// Package pdf 用 fpdf 的矢量原语渲染幻灯片，图表全部由矩形和三角扇手工绘制
package pdf

import (
	"bytes"
	"context"
	"crypto/sha1"
	_ "embed"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/logger"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render/vector"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

const fontFamily = "DejaVu"

// 内嵌 UTF-8 字体，覆盖拉丁扩展、西里尔和希腊字符
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// Renderer PDF 渲染器
type Renderer struct {
	palette render.Palette
	regular []byte
	bold    []byte
}

// Option PDF 渲染器可选项
type Option func(*Renderer)

// WithFonts 替换内嵌字体（TrueType），需要中日韩字形时传入 Noto Sans CJK 等字体。bold 为空时沿用 regular。
func WithFonts(regular, bold []byte) Option {
	return func(r *Renderer) {
		if len(regular) == 0 {
			return
		}
		r.regular = regular
		r.bold = bold
		if len(bold) == 0 {
			r.bold = regular
		}
	}
}

// New 创建 PDF 渲染器
func New(p render.Palette, opts ...Option) *Renderer {
	r := &Renderer{palette: p, regular: regularFont, bold: boldFont}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format 输出格式
func (r *Renderer) Format() render.Format {
	return render.FormatPDF
}

// Render 每页幻灯片对应一页 960x540 pt 的 PDF
func (r *Renderer) Render(ctx context.Context, d *deck.Deck, m *report.Model) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: deck.CanvasWidth, Ht: deck.CanvasHeight},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(d.Title, true)
	doc.SetCreator("pr_presence", true)
	doc.SetCatalogSort(true)
	if !m.GeneratedAt.IsZero() {
		doc.SetCreationDate(m.GeneratedAt)
		doc.SetModificationDate(m.GeneratedAt)
	}

	doc.AddUTF8FontFromBytes(fontFamily, "", r.regular)
	doc.AddUTF8FontFromBytes(fontFamily, "B", r.bold)
	if doc.Err() {
		return nil, fmt.Errorf("load fonts: %w", doc.Error())
	}

	c := &canvas{doc: doc, images: make(map[string]string)}
	for _, s := range d.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.AddPage()
		if err := vector.DrawSlide(c, s, m, r.palette); err != nil {
			logger.Log.Warnf("幻灯片 %s 图片绘制失败: %v", s.ID, err)
		}
		if doc.Err() {
			return nil, fmt.Errorf("render slide %s: %w", s.ID, doc.Error())
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// canvas 把 vector.Canvas 原语映射到 fpdf
type canvas struct {
	doc    *fpdf.Fpdf
	images map[string]string
}

func (c *canvas) FillRect(r vector.Rect, color string) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.doc.SetFillColor(render.HexRGB(color))
	c.doc.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (c *canvas) FillTriangle(t vector.Triangle, color string) {
	c.doc.SetFillColor(render.HexRGB(color))
	// 描边与填充同色，消除相邻三角形之间的细缝
	c.doc.SetDrawColor(render.HexRGB(color))
	c.doc.SetLineWidth(0.3)
	c.doc.Polygon([]fpdf.PointType{
		{X: t[0].X, Y: t[0].Y},
		{X: t[1].X, Y: t[1].Y},
		{X: t[2].X, Y: t[2].Y},
	}, "FD")
}

func (c *canvas) Text(box vector.Rect, s string, st vector.TextStyle) {
	if s == "" {
		return
	}
	c.setFont(st.Size, st.Bold)
	c.doc.SetTextColor(render.HexRGB(st.Color))
	align := "LM"
	switch st.Align {
	case vector.AlignCenter:
		align = "CM"
	case vector.AlignRight:
		align = "RM"
	}
	c.doc.SetXY(box.X, box.Y)
	c.doc.CellFormat(box.W, box.H, s, "", 0, align, false, 0, "")
}

func (c *canvas) TextWidth(s string, size float64) float64 {
	c.setFont(size, false)
	return c.doc.GetStringWidth(s)
}

func (c *canvas) Image(r vector.Rect, data []byte, format string) error {
	imageType := strings.ToUpper(format)
	if imageType == "JPEG" {
		imageType = "JPG"
	}
	sum := sha1.Sum(data)
	name, ok := c.images[hex.EncodeToString(sum[:])]
	if !ok {
		name = "img" + hex.EncodeToString(sum[:8])
		opts := fpdf.ImageOptions{ImageType: imageType}
		c.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if c.doc.Err() {
			err := c.doc.Error()
			c.doc.ClearError()
			return fmt.Errorf("register image: %w", err)
		}
		c.images[hex.EncodeToString(sum[:])] = name
	}
	c.doc.ImageOptions(name, r.X, r.Y, r.W, r.H, false, fpdf.ImageOptions{ImageType: imageType}, 0, "")
	return nil
}

func (c *canvas) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	if size <= 0 {
		size = 12
	}
	c.doc.SetFont(fontFamily, style, size)
}
