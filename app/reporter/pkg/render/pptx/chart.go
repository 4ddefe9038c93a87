package pptx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render/vector"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// chartXML 把数据集的标签和数值直接写入原生图表对象
func chartXML(ch deck.Chart, d report.Dataset, p render.Palette) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s">`, nsC, nsA, nsR)
	b.WriteString(`<c:roundedCorners val="0"/><c:chart><c:autoTitleDeleted val="1"/><c:plotArea><c:layout/>`)

	switch ch.Type {
	case deck.ChartPie:
		b.WriteString(`<c:pieChart><c:varyColors val="1"/>`)
		writePieSeries(&b, ch, d, p)
		b.WriteString(`<c:firstSliceAng val="0"/></c:pieChart>`)
	case deck.ChartDonut:
		b.WriteString(`<c:doughnutChart><c:varyColors val="1"/>`)
		writePieSeries(&b, ch, d, p)
		b.WriteString(`<c:firstSliceAng val="0"/><c:holeSize val="50"/></c:doughnutChart>`)
	default:
		writeBarChart(&b, ch, d, p)
	}
	b.WriteString(`</c:plotArea>`)

	if ch.ShowLegend {
		b.WriteString(`<c:legend><c:legendPos val="b"/><c:overlay val="0"/></c:legend>`)
	}
	b.WriteString(`<c:plotVisOnly val="1"/><c:dispBlanksAs val="gap"/></c:chart>`)
	size := ch.FontSize
	if size <= 0 {
		size = 10
	}
	fmt.Fprintf(&b, `<c:txPr><a:bodyPr/><a:lstStyle/><a:p><a:pPr><a:defRPr sz="%d">%s</a:defRPr></a:pPr><a:endParaRPr lang="en-US"/></a:p></c:txPr>`,
		hundredths(size), solidFill(textColor(ch.Color)))
	b.WriteString(`</c:chartSpace>`)
	return []byte(b.String())
}

func writeBarChart(b *strings.Builder, ch deck.Chart, d report.Dataset, p render.Palette) {
	dir := "col"
	if ch.Horizontal {
		dir = "bar"
	}
	series := d.Series
	stacked := ch.Stacked && len(series) > 1
	if !stacked && len(series) > 1 {
		series = []report.Series{{Name: series[0].Name, Values: d.Totals()}}
	}
	grouping := "clustered"
	if stacked {
		grouping = "stacked"
	}
	fmt.Fprintf(b, `<c:barChart><c:barDir val="%s"/><c:grouping val="%s"/><c:varyColors val="0"/>`, dir, grouping)
	for i, s := range series {
		fmt.Fprintf(b, `<c:ser><c:idx val="%d"/><c:order val="%d"/><c:tx><c:v>%s</c:v></c:tx>`, i, i, esc(s.Name))
		fmt.Fprintf(b, `<c:spPr>%s</c:spPr><c:invertIfNegative val="0"/>`, solidFill(p.Color(ch.ColorOffset+i)))
		if ch.ShowValues && (!stacked || i == len(series)-1) {
			b.WriteString(dataLabels(nil, true, false))
		}
		writeCategories(b, d.Labels)
		writeValues(b, s.Values, len(d.Labels))
		b.WriteString(`</c:ser>`)
	}
	b.WriteString(`<c:gapWidth val="60"/>`)
	if stacked {
		b.WriteString(`<c:overlap val="100"/>`)
	}
	b.WriteString(`<c:axId val="1001"/><c:axId val="1002"/></c:barChart>`)

	catPos, valPos := "b", "l"
	if ch.Horizontal {
		catPos, valPos = "l", "b"
	}
	fmt.Fprintf(b, `<c:catAx><c:axId val="1001"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="%s"/>`, catPos)
	b.WriteString(`<c:numFmt formatCode="General" sourceLinked="0"/><c:majorTickMark val="none"/><c:minorTickMark val="none"/><c:tickLblPos val="nextTo"/>`)
	b.WriteString(`<c:crossAx val="1002"/><c:crosses val="autoZero"/><c:auto val="1"/><c:lblAlgn val="ctr"/><c:lblOffset val="100"/><c:noMultiLvlLbl val="0"/></c:catAx>`)
	fmt.Fprintf(b, `<c:valAx><c:axId val="1002"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="%s"/>`, valPos)
	b.WriteString(`<c:majorGridlines><c:spPr><a:ln w="6350"><a:solidFill><a:srgbClr val="D9D9D9"/></a:solidFill></a:ln></c:spPr></c:majorGridlines>`)
	b.WriteString(`<c:numFmt formatCode="General" sourceLinked="0"/><c:majorTickMark val="none"/><c:minorTickMark val="none"/><c:tickLblPos val="nextTo"/>`)
	b.WriteString(`<c:crossAx val="1001"/><c:crosses val="autoZero"/><c:crossBetween val="between"/></c:valAx>`)
}

// writePieSeries 每个数据点单独着色；占比低于阈值的数据标签被删除
func writePieSeries(b *strings.Builder, ch deck.Chart, d report.Dataset, p render.Palette) {
	values := d.Totals()
	name := "Series"
	if len(d.Series) > 0 {
		name = d.Series[0].Name
	}
	fmt.Fprintf(b, `<c:ser><c:idx val="0"/><c:order val="0"/><c:tx><c:v>%s</c:v></c:tx>`, esc(name))
	for i := range d.Labels {
		fmt.Fprintf(b, `<c:dPt><c:idx val="%d"/><c:bubble3D val="0"/><c:spPr>%s<a:ln w="12700"><a:solidFill><a:srgbClr val="FFFFFF"/></a:solidFill></a:ln></c:spPr></c:dPt>`,
			i, solidFill(p.Color(ch.ColorOffset+i)))
	}
	if ch.ShowValues {
		var hidden []int
		for _, s := range vector.PieLayout(values, vector.Point{}, 1) {
			if !s.ShowLabel {
				hidden = append(hidden, s.Index)
			}
		}
		b.WriteString(dataLabels(hidden, false, true))
	}
	writeCategories(b, d.Labels)
	writeValues(b, values, len(d.Labels))
	b.WriteString(`</c:ser>`)
}

func dataLabels(hidden []int, showVal, showPercent bool) string {
	var b strings.Builder
	b.WriteString(`<c:dLbls>`)
	for _, idx := range hidden {
		fmt.Fprintf(&b, `<c:dLbl><c:idx val="%d"/><c:delete val="1"/></c:dLbl>`, idx)
	}
	if showPercent {
		b.WriteString(`<c:numFmt formatCode="0.0%" sourceLinked="0"/>`)
	}
	b.WriteString(`<c:spPr><a:noFill/><a:ln><a:noFill/></a:ln></c:spPr>`)
	fmt.Fprintf(&b, `<c:showLegendKey val="0"/><c:showVal val="%s"/><c:showCatName val="0"/><c:showSerName val="0"/><c:showPercent val="%s"/><c:showBubbleSize val="0"/>`,
		boolVal(showVal), boolVal(showPercent))
	b.WriteString(`</c:dLbls>`)
	return b.String()
}

func writeCategories(b *strings.Builder, labels []string) {
	fmt.Fprintf(b, `<c:cat><c:strLit><c:ptCount val="%d"/>`, len(labels))
	for i, l := range labels {
		fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, esc(l))
	}
	b.WriteString(`</c:strLit></c:cat>`)
}

func writeValues(b *strings.Builder, values []float64, n int) {
	fmt.Fprintf(b, `<c:val><c:numLit><c:formatCode>General</c:formatCode><c:ptCount val="%d"/>`, n)
	for i := 0; i < n && i < len(values); i++ {
		fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, strconv.FormatFloat(values[i], 'f', -1, 64))
	}
	b.WriteString(`</c:numLit></c:val>`)
}

func boolVal(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
