// Package pptx 生成带原生图表对象的 PowerPoint 文档
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// Renderer PPTX 渲染器
type Renderer struct {
	palette render.Palette
}

// New 创建 PPTX 渲染器
func New(p render.Palette) *Renderer {
	return &Renderer{palette: p}
}

// Format 输出格式
func (r *Renderer) Format() render.Format {
	return render.FormatPPTX
}

// Render 生成 OOXML 包。同一模型与时间戳产生相同的字节
func (r *Renderer) Render(ctx context.Context, d *deck.Deck, m *report.Model) ([]byte, error) {
	b := &builder{imageExts: make(map[string]struct{})}
	for _, s := range d.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w := newSlideWriter(b, m, r.palette)
		b.addSlide(w.write(s), relsXML(w.rels))
	}

	n := b.slides
	b.put("ppt/presentation.xml", presentationXML(n), ctPresentation)
	b.put("ppt/_rels/presentation.xml.rels", presentationRels(n), "")
	b.put("ppt/slideMasters/slideMaster1.xml", slideMasterXML(), ctSlideMaster)
	b.put("ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels(), "")
	b.put("ppt/slideLayouts/slideLayout1.xml", slideLayoutXML(), ctSlideLayout)
	b.put("ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels(), "")
	b.put("ppt/theme/theme1.xml", themeXML(r.palette), ctTheme)
	b.put("docProps/core.xml", coreXML(d.Title, m.GeneratedAt), ctCore)
	b.put("docProps/app.xml", appXML(n), ctApp)
	b.put("_rels/.rels", rootRels(), "")

	return b.pack(m.GeneratedAt)
}

type part struct {
	name string
	data []byte
}

// builder 收集包内所有部件
type builder struct {
	parts     []part
	overrides []override
	slides    int
	charts    int
	images    int
	imageExts map[string]struct{}
}

func (b *builder) put(name string, data []byte, contentType string) {
	b.parts = append(b.parts, part{name, data})
	if contentType != "" {
		b.overrides = append(b.overrides, override{"/" + name, contentType})
	}
}

func (b *builder) addSlide(xml, rels []byte) {
	b.slides++
	b.put(fmt.Sprintf("ppt/slides/slide%d.xml", b.slides), xml, ctSlide)
	b.put(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", b.slides), rels, "")
}

// addChart 返回相对幻灯片的目标路径
func (b *builder) addChart(xml []byte) string {
	b.charts++
	name := fmt.Sprintf("chart%d.xml", b.charts)
	b.put("ppt/charts/"+name, xml, ctChart)
	return "../charts/" + name
}

func (b *builder) addImage(data []byte, format string) string {
	ext := strings.ToLower(strings.TrimPrefix(format, "."))
	if ext == "jpg" {
		ext = "jpeg"
	}
	if ext == "" {
		ext = "png"
	}
	b.images++
	b.imageExts[ext] = struct{}{}
	name := fmt.Sprintf("image%d.%s", b.images, ext)
	b.put("ppt/media/"+name, data, "")
	return "../media/" + name
}

func (b *builder) pack(modified time.Time) ([]byte, error) {
	if modified.IsZero() {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	exts := make([]string, 0, len(b.imageExts))
	for ext := range b.imageExts {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// [Content_Types].xml 必须是第一个条目
	all := append([]part{{"[Content_Types].xml", contentTypesXML(b.overrides, exts)}}, b.parts...)
	for _, p := range all {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close pptx: %w", err)
	}
	return buf.Bytes(), nil
}
