package vector

import (
	"math"
	"strings"
	"testing"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

type recorder struct {
	rects     []Rect
	triangles []Triangle
	colors    []string
	texts     []string
}

func (r *recorder) FillRect(rect Rect, color string) {
	r.rects = append(r.rects, rect)
}

func (r *recorder) FillTriangle(t Triangle, color string) {
	r.triangles = append(r.triangles, t)
	r.colors = append(r.colors, color)
}

func (r *recorder) Text(box Rect, s string, st TextStyle) {
	r.texts = append(r.texts, s)
}

func (r *recorder) TextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

func (r *recorder) hasText(s string) bool {
	for _, t := range r.texts {
		if t == s {
			return true
		}
	}
	return false
}

func series(labels []string, values ...float64) report.Dataset {
	return report.Dataset{Kind: report.KindSeries, Labels: labels, Series: []report.Series{{Name: "v", Values: values}}}
}

func TestPieLayout_SpansSumToFullCircle(t *testing.T) {
	slices := PieLayout([]float64{3, 1, 4, 1, 5}, Point{100, 100}, 50)
	sum := 0.0
	for i, s := range slices {
		sum += s.End - s.Start
		if i > 0 && s.Start != slices[i-1].End {
			t.Errorf("slice %d does not start where %d ends", i, i-1)
		}
	}
	if math.Abs(sum-2*math.Pi) > 1e-9 {
		t.Errorf("angular spans sum to %v, want 2π", sum)
	}
	if slices[0].Start != -math.Pi/2 {
		t.Errorf("first slice starts at %v, want -π/2", slices[0].Start)
	}
}

func TestPieLayout_LabelThresholdAndRadius(t *testing.T) {
	center := Point{0, 0}
	slices := PieLayout([]float64{96, 4}, center, 100)
	if !slices[0].ShowLabel {
		t.Error("96% slice should be labelled")
	}
	if slices[1].ShowLabel {
		t.Error("4% slice label should be suppressed")
	}
	for _, s := range slices {
		d := math.Hypot(s.LabelAt.X-center.X, s.LabelAt.Y-center.Y)
		if math.Abs(d-70) > 1e-9 {
			t.Errorf("label at distance %v, want 70", d)
		}
	}

	exact := PieLayout([]float64{95, 5}, center, 100)
	if !exact[1].ShowLabel {
		t.Error("slice at exactly 5% should be labelled")
	}
}

func TestPieLayout_ClockwiseFromTop(t *testing.T) {
	slices := PieLayout([]float64{1, 1, 1, 1}, Point{0, 0}, 10)
	// 第一个扇区位于右上象限：x > 0 且 y < 0
	if l := slices[0].LabelAt; l.X <= 0 || l.Y >= 0 {
		t.Errorf("first slice label at %+v, want upper-right quadrant", l)
	}
	if l := slices[1].LabelAt; l.X <= 0 || l.Y <= 0 {
		t.Errorf("second slice label at %+v, want lower-right quadrant", l)
	}
}

func TestPieLayout_ZeroTotal(t *testing.T) {
	if got := PieLayout([]float64{0, 0}, Point{}, 10); got != nil {
		t.Errorf("PieLayout(zero) = %v, want nil", got)
	}
}

func TestArcFan_SegmentCount(t *testing.T) {
	if got := len(ArcFan(Point{}, 0, 10, 0, math.Pi, Segments)); got != 50 {
		t.Errorf("pie fan has %d triangles, want 50", got)
	}
	if got := len(ArcFan(Point{}, 5, 10, 0, math.Pi, Segments)); got != 100 {
		t.Errorf("donut fan has %d triangles, want 100", got)
	}
	fan := ArcFan(Point{1, 1}, 0, 10, 0, math.Pi/2, 10)
	for _, tri := range fan {
		if tri[0] != (Point{1, 1}) {
			t.Fatalf("pie triangle must start at the center: %+v", tri)
		}
	}
}

func TestBarLayout(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 100, H: 50}
	bars := BarLayout([]float64{10, 5, 0}, area, 10)
	wantW := (100.0 - 40) / 3
	for i, b := range bars {
		if math.Abs(b.W-wantW) > 1e-9 {
			t.Errorf("bar %d width = %v, want %v", i, b.W, wantW)
		}
		if math.Abs(b.Y+b.H-50) > 1e-9 {
			t.Errorf("bar %d not anchored at baseline", i)
		}
	}
	if bars[0].H != 50 || bars[1].H != 25 || bars[2].H != 0 {
		t.Errorf("heights = %v %v %v", bars[0].H, bars[1].H, bars[2].H)
	}

	// 全零时以 1 为最大值，不会除以 0
	zero := BarLayout([]float64{0, 0}, area, 10)
	for _, b := range zero {
		if math.IsNaN(b.H) || b.H != 0 {
			t.Errorf("zero bar height = %v", b.H)
		}
	}
}

func TestWrapText(t *testing.T) {
	measure := func(s string, size float64) float64 { return float64(len(s)) }
	got := WrapText("the quick brown fox jumps", 10, 1, measure)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WrapText() = %q, want %q", got, want)
	}
	if got := WrapText("   ", 10, 1, measure); got != nil {
		t.Errorf("WrapText(blank) = %q", got)
	}
}

func TestClampLines(t *testing.T) {
	got := ClampLines([]string{"a", "b", "c"}, 2)
	if len(got) != 2 || got[1] != "b…" {
		t.Errorf("ClampLines() = %q", got)
	}
}

func TestCloudLayout_Deterministic(t *testing.T) {
	measure := func(s string, size float64) float64 { return float64(len(s)) * size * 0.5 }
	labels := []string{"banking", "growth", "merger", "climate", "fintech"}
	weights := []float64{100, 75, 50, 25, 0}
	area := Rect{0, 0, 400, 200}
	a := CloudLayout(labels, weights, area, 12, 36, measure)
	b := CloudLayout(labels, weights, area, 12, 36, measure)
	if len(a) != len(labels) {
		t.Fatalf("placed %d words, want %d", len(a), len(labels))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("layout not deterministic at %d", i)
		}
		w := a[i]
		if w.Box.X < area.X || w.Box.X+w.Box.W > area.X+area.W || w.Box.Y < area.Y || w.Box.Y+w.Box.H > area.Y+area.H {
			t.Errorf("word %q outside area: %+v", w.Text, w.Box)
		}
	}
	if a[0].Size != 36 || a[4].Size != 12 {
		t.Errorf("sizes = %v..%v, want 36..12", a[0].Size, a[4].Size)
	}
}

func TestDrawPie_EmptyDrawsPlaceholder(t *testing.T) {
	rec := &recorder{}
	DrawPie(rec, Rect{0, 0, 300, 300}, series([]string{"Web", "Print"}, 0, 0), ChartOptions{ShowLegend: true, ShowValues: true}, 0)
	if len(rec.triangles) != 0 {
		t.Errorf("empty pie drew %d triangles", len(rec.triangles))
	}
	if !rec.hasText(render.Placeholder) {
		t.Error("empty pie should draw the placeholder")
	}
}

func TestDrawPie_FansAndLegend(t *testing.T) {
	rec := &recorder{}
	p := render.DefaultPalette
	DrawPie(rec, Rect{0, 0, 300, 300}, series([]string{"Web", "Print", "Radio"}, 50, 48, 2), ChartOptions{Palette: p, ShowLegend: true, ShowValues: true}, 0)
	if got := len(rec.triangles); got != 3*Segments {
		t.Errorf("drew %d triangles, want %d", got, 3*Segments)
	}
	if rec.colors[0] != p.Color(0) || rec.colors[Segments] != p.Color(1) {
		t.Error("slice colors should follow the palette index")
	}
	if !rec.hasText("50.0%") || !rec.hasText("48.0%") {
		t.Errorf("missing slice labels in %q", rec.texts)
	}
	if rec.hasText("2.0%") {
		t.Error("sub-5% label should be suppressed")
	}
	for _, l := range []string{"Web", "Print", "Radio"} {
		if !rec.hasText(l) {
			t.Errorf("legend missing %q", l)
		}
	}
}

func TestDrawBar_EmptyDrawsPlaceholder(t *testing.T) {
	rec := &recorder{}
	DrawBar(rec, Rect{0, 0, 300, 200}, report.Dataset{Kind: report.KindSeries}, ChartOptions{})
	if !rec.hasText(render.Placeholder) {
		t.Error("empty bar chart should draw the placeholder")
	}
}

func TestDrawBar_ValuesAndLabels(t *testing.T) {
	rec := &recorder{}
	DrawBar(rec, Rect{0, 0, 400, 300}, series([]string{"Jane Wanjiru (Daily Nation)", "Ken"}, 4, 2), ChartOptions{ShowValues: true})
	for _, s := range []string{"4", "2", "Ken"} {
		if !rec.hasText(s) {
			t.Errorf("missing %q in %q", s, rec.texts)
		}
	}
}

func TestDrawBar_StackedLegend(t *testing.T) {
	rec := &recorder{}
	d := report.Dataset{
		Kind:   report.KindSeries,
		Labels: []string{"Jan 2026", "Feb 2026"},
		Series: []report.Series{{Name: "Web", Values: []float64{1, 2}}, {Name: "Print", Values: []float64{3, 0}}},
	}
	DrawBar(rec, Rect{0, 0, 400, 300}, d, ChartOptions{Stacked: true, ShowLegend: true, ShowValues: true})
	if !rec.hasText("4") || !rec.hasText("2") {
		t.Errorf("stacked totals missing in %q", rec.texts)
	}
	if !rec.hasText("Web") || !rec.hasText("Print") {
		t.Error("series legend missing")
	}
}

func TestDrawTable_SkipsOverflowRows(t *testing.T) {
	rec := &recorder{}
	d := report.Dataset{Kind: report.KindTable, Columns: []string{"A"}, Rows: [][]string{{"one"}, {"two"}, {"three"}}}
	DrawTable(rec, Rect{0, 0, 200, 60}, d, nil, ChartOptions{FontSize: 10})
	if !rec.hasText("A") || !rec.hasText("one") {
		t.Errorf("texts = %q", rec.texts)
	}
	if rec.hasText("three") {
		t.Error("row past the bottom edge should not be drawn")
	}
}

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		weights []float64
		want    []float64
	}{
		{"no columns", 0, nil, []float64{}},
		{"even without weights", 4, nil, []float64{100, 100, 100, 100}},
		{"weighted", 2, []float64{3, 1}, []float64{300, 100}},
		{"missing and non-positive weights count as one", 3, []float64{2, -1}, []float64{200, 100, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColumnWidths(tt.n, tt.weights, 400)
			if len(got) != len(tt.want) {
				t.Fatalf("ColumnWidths() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("ColumnWidths()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	for v, want := range map[float64]string{0: "0", 42: "42", 33.3: "33.3", 12.26: "12.3", -4: "-4"} {
		if got := FormatValue(v); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", v, got, want)
		}
	}
}
