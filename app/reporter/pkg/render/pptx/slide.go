package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render/vector"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// 1 个逻辑单位 = 1 pt = 12700 EMU
const (
	emuPerUnit     = 12700
	slideWidthEMU  = int(deck.CanvasWidth * emuPerUnit)
	slideHeightEMU = int(deck.CanvasHeight * emuPerUnit)
)

const (
	placeholderFill = "F2F2F2"
	placeholderText = "7F7F7F"
	headerText      = "FFFFFF"
)

func emu(v float64) int {
	return int(math.Round(v * emuPerUnit))
}

func hundredths(size float64) int {
	return int(math.Round(size * 100))
}

func esc(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func solidFill(color string) string {
	return fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, color)
}

func textColor(c string) string {
	if c == "" {
		return "333333"
	}
	return c
}

// slideWriter 生成单页幻灯片 XML，并收集该页引用的图表和图片
type slideWriter struct {
	pkg     *builder
	b       strings.Builder
	nextID  int
	rels    []rel
	palette render.Palette
	model   *report.Model
}

func newSlideWriter(pkg *builder, m *report.Model, p render.Palette) *slideWriter {
	w := &slideWriter{pkg: pkg, nextID: 2, palette: p, model: m}
	w.rels = append(w.rels, rel{"rId1", relSlideLayout, "../slideLayouts/slideLayout1.xml"})
	return w
}

func (w *slideWriter) id() int {
	id := w.nextID
	w.nextID++
	return id
}

func (w *slideWriter) addRel(typ, target string) string {
	id := fmt.Sprintf("rId%d", len(w.rels)+1)
	w.rels = append(w.rels, rel{id, typ, target})
	return id
}

func (w *slideWriter) write(s deck.Slide) []byte {
	fmt.Fprintf(&w.b, `%s<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"><p:cSld>`, xmlHeader, nsA, nsR, nsP)
	if s.Background != "" {
		fmt.Fprintf(&w.b, `<p:bg><p:bgPr>%s<a:effectLst/></p:bgPr></p:bg>`, solidFill(s.Background))
	}
	w.b.WriteString(`<p:spTree>` + emptyTree)
	for _, e := range s.Elements {
		w.element(e)
	}
	w.b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return []byte(w.b.String())
}

func (w *slideWriter) element(e deck.Element) {
	switch v := e.(type) {
	case deck.Title:
		w.textBox("Title", v.Frame, []string{v.Text}, v.Style, false, "")
	case deck.Text:
		w.textBox("Text", v.Frame, v.Lines(w.model), v.Style, v.Bullets, "")
	case deck.Chart:
		d, _ := w.model.Dataset(v.DatasetKey)
		switch {
		case d.Empty():
			w.placeholder(v.Frame, v.FontSize)
		case v.Type == deck.ChartCloud:
			w.cloud(v, d)
		default:
			target := w.pkg.addChart(chartXML(v, d, w.palette))
			w.chartFrame(v.Frame, w.addRel(relChart, target))
		}
	case deck.Table:
		d, _ := w.model.Dataset(v.DatasetKey)
		if d.Empty() {
			w.placeholder(v.Frame, v.FontSize)
			return
		}
		w.table(v, d)
	case deck.KPI:
		d, _ := w.model.Dataset(v.DatasetKey)
		w.kpi(v, d)
	case deck.Image:
		if len(v.Data) == 0 {
			return
		}
		target := w.pkg.addImage(v.Data, v.Format)
		w.picture(v.Frame, w.addRel(relImage, target))
	}
}

func xfrm(f deck.Frame) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, emu(f.X), emu(f.Y), emu(f.W), emu(f.H))
}

func runXML(text string, size float64, color string, bold bool) string {
	b := ""
	if bold {
		b = ` b="1"`
	}
	return fmt.Sprintf(`<a:r><a:rPr lang="en-US" sz="%d"%s dirty="0">%s</a:rPr><a:t>%s</a:t></a:r>`,
		hundredths(size), b, solidFill(textColor(color)), esc(text))
}

func algn(a deck.Align) string {
	if a == deck.AlignCenter {
		return "ctr"
	}
	return "l"
}

// textBox 文本框。fill 为空时无填充
func (w *slideWriter) textBox(name string, f deck.Frame, paragraphs []string, st deck.Style, bullets bool, fill string) {
	size := st.FontSize
	if size <= 0 {
		size = 14
	}
	id := w.id()
	fmt.Fprintf(&w.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, id, name, id)
	fmt.Fprintf(&w.b, `<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`, xfrm(f))
	if fill != "" {
		w.b.WriteString(solidFill(fill))
	} else {
		w.b.WriteString(`<a:noFill/>`)
	}
	w.b.WriteString(`</p:spPr>`)
	anchor := "t"
	if st.Align == deck.AlignCenter {
		anchor = "ctr"
	}
	fmt.Fprintf(&w.b, `<p:txBody><a:bodyPr wrap="square" lIns="91440" tIns="45720" rIns="91440" bIns="45720" anchor="%s"><a:normAutofit/></a:bodyPr><a:lstStyle/>`, anchor)
	if len(paragraphs) == 0 {
		w.b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	for _, para := range paragraphs {
		if bullets {
			fmt.Fprintf(&w.b, `<a:p><a:pPr marL="285750" indent="-285750" algn="%s"><a:spcAft><a:spcPts val="600"/></a:spcAft><a:buFont typeface="Arial"/><a:buChar char="•"/></a:pPr>`, algn(st.Align))
		} else {
			fmt.Fprintf(&w.b, `<a:p><a:pPr algn="%s"/>`, algn(st.Align))
		}
		w.b.WriteString(runXML(para, size, st.Color, st.Bold))
		w.b.WriteString(`</a:p>`)
	}
	w.b.WriteString(`</p:txBody></p:sp>`)
}

func (w *slideWriter) placeholder(f deck.Frame, size float64) {
	if size <= 0 {
		size = 12
	}
	w.textBox("Placeholder", f, []string{render.Placeholder}, deck.Style{FontSize: size * 1.2, Color: placeholderText, Align: deck.AlignCenter}, false, placeholderFill)
}

func (w *slideWriter) chartFrame(f deck.Frame, relID string) {
	id := w.id()
	fmt.Fprintf(&w.b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Chart %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	fmt.Fprintf(&w.b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`, emu(f.X), emu(f.Y), emu(f.W), emu(f.H))
	fmt.Fprintf(&w.b, `<a:graphic><a:graphicData uri="%s"><c:chart xmlns:c="%s" r:id="%s"/></a:graphicData></a:graphic></p:graphicFrame>`, nsC, nsC, relID)
}

func (w *slideWriter) table(t deck.Table, d report.Dataset) {
	size := t.FontSize
	if size <= 0 {
		size = 10
	}
	cols := vector.ColumnWidths(len(d.Columns), t.ColumnWidths, t.W)
	rowH := emu(size * 2)

	id := w.id()
	fmt.Fprintf(&w.b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/><p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>`, id, id)
	fmt.Fprintf(&w.b, `<p:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></p:xfrm>`, emu(t.X), emu(t.Y), emu(t.W), rowH*(len(d.Rows)+1))
	w.b.WriteString(`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`)
	for _, c := range cols {
		fmt.Fprintf(&w.b, `<a:gridCol w="%d"/>`, emu(c))
	}
	w.b.WriteString(`</a:tblGrid>`)

	w.row(d.Columns, len(cols), rowH, size, headerText, true, w.palette.Color(0))
	for i, r := range d.Rows {
		fill := "FFFFFF"
		if i%2 == 1 {
			fill = placeholderFill
		}
		w.row(r, len(cols), rowH, size, textColor(t.Color), false, fill)
	}
	w.b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func (w *slideWriter) row(cells []string, n, h int, size float64, color string, bold bool, fill string) {
	fmt.Fprintf(&w.b, `<a:tr h="%d">`, h)
	for i := 0; i < n; i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		fmt.Fprintf(&w.b, `<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p>%s</a:p></a:txBody><a:tcPr>%s</a:tcPr></a:tc>`,
			runXML(text, size, color, bold), solidFill(fill))
	}
	w.b.WriteString(`</a:tr>`)
}

func (w *slideWriter) kpi(k deck.KPI, d report.Dataset) {
	if len(d.Labels) == 0 || len(d.Series) == 0 {
		w.placeholder(k.Frame, 12)
		return
	}
	n := float64(len(d.Labels))
	const gap = 16.0
	cw := (k.W - gap*(n-1)) / n
	for i, label := range d.Labels {
		v := 0.0
		if i < len(d.Series[0].Values) {
			v = d.Series[0].Values[i]
		}
		f := deck.Frame{X: k.X + float64(i)*(cw+gap), Y: k.Y, W: cw, H: k.H}
		id := w.id()
		fmt.Fprintf(&w.b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="KPI %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id, id)
		fmt.Fprintf(&w.b, `<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>%s<a:ln w="38100">%s</a:ln></p:spPr>`,
			xfrm(f), solidFill(placeholderFill), solidFill(w.palette.Color(i)))
		w.b.WriteString(`<p:txBody><a:bodyPr wrap="square" anchor="ctr"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
		fmt.Fprintf(&w.b, `<a:p><a:pPr algn="ctr"/>%s</a:p>`, runXML(vector.FormatValue(v)+k.Suffix, k.FontSize, k.Color, true))
		fmt.Fprintf(&w.b, `<a:p><a:pPr algn="ctr"/>%s</a:p>`, runXML(label, 12, "", false))
		w.b.WriteString(`</p:txBody></p:sp>`)
	}
}

// cloud 词云没有原生图表对象，按与矢量渲染器相同的布局逐词放置文本框
func (w *slideWriter) cloud(ch deck.Chart, d report.Dataset) {
	maxSize := ch.FontSize
	if maxSize <= 0 {
		maxSize = 36
	}
	var weights []float64
	if len(d.Series) > 0 {
		weights = d.Series[0].Values
	}
	area := vector.Rect{X: ch.X, Y: ch.Y, W: ch.W, H: ch.H}
	for _, word := range vector.CloudLayout(d.Labels, weights, area, maxSize/3, maxSize, approxWidth) {
		f := deck.Frame{X: word.Box.X - 8, Y: word.Box.Y, W: word.Box.W + 16, H: word.Box.H + 8}
		st := deck.Style{FontSize: word.Size, Color: w.palette.Color(ch.ColorOffset + word.Index), Bold: word.Size > maxSize*0.6, Align: deck.AlignCenter}
		w.textBox("Word", f, []string{word.Text}, st, false, "")
	}
}

func (w *slideWriter) picture(f deck.Frame, relID string) {
	id := w.id()
	fmt.Fprintf(&w.b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>`, id, id)
	fmt.Fprintf(&w.b, `<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relID)
	fmt.Fprintf(&w.b, `<p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`, xfrm(f))
}

// approxWidth 没有字体度量时按平均字宽估算
func approxWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.55
}
