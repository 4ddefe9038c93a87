package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/analytics"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

func fixture(t *testing.T, stories []model.Story, opts deck.Options) (*deck.Deck, *report.Model) {
	t.Helper()
	w, err := model.NewDateWindow(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	client := model.Client{
		Entity:      model.Entity{ID: "acme", Name: "Acme & Sons"},
		Competitors: []model.Entity{{ID: "globex", Name: "Globex"}},
	}
	res := analytics.Aggregate(&corpus.Corpus{Stories: stories}, client, w, analytics.DefaultLimits())
	m, err := report.Build(report.Input{Client: client, Window: w, GeneratedAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Result: res})
	if err != nil {
		t.Fatal(err)
	}
	d, err := deck.Compile(m, opts)
	if err != nil {
		t.Fatal(err)
	}
	return d, m
}

func sampleStories() []model.Story {
	return []model.Story{
		{ID: "1", Medium: model.MediumWeb, Title: "Acme & Sons <record> year", Keywords: "banking, profit", Authors: []string{"Jane Wanjiru"}, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Outlet: model.Outlet{ID: "o1", Name: "Daily Nation"}},
		{ID: "2", Medium: model.MediumPrint, Title: "Globex expands", Keywords: "banking", Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Outlet: model.Outlet{ID: "o2", Name: "The Standard"}},
		{ID: "3", Medium: model.MediumTV, Title: "Acme & Sons and Globex", Keywords: "fintech", Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Outlet: model.Outlet{ID: "o3", Name: "Citizen TV"}},
	}
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	if zr.File[0].Name != "[Content_Types].xml" {
		t.Errorf("first entry = %q", zr.File[0].Name)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		parts[f.Name] = string(b)
	}
	return parts
}

func wellFormed(t *testing.T, name, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Errorf("%s is not well-formed XML: %v", name, err)
			return
		}
	}
}

func TestRender_PackageStructure(t *testing.T) {
	d, m := fixture(t, sampleStories(), deck.Options{Logo: []byte("\x89PNG fake"), LogoFormat: "png"})
	out, err := New(render.DefaultPalette).Render(context.Background(), d, m)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	parts := unzip(t, out)

	for _, name := range []string{
		"_rels/.rels", "ppt/presentation.xml", "ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml", "ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml", "docProps/core.xml", "docProps/app.xml", "ppt/media/image1.png",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	slides := 0
	for name, doc := range parts {
		if strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".rels") {
			wellFormed(t, name, doc)
		}
		if strings.HasPrefix(name, "ppt/slides/slide") {
			slides++
		}
	}
	if slides != len(d.Slides) {
		t.Errorf("package has %d slides, want %d", slides, len(d.Slides))
	}
	if !strings.Contains(parts["[Content_Types].xml"], `Extension="png"`) {
		t.Error("png content type not registered")
	}
}

func TestRender_NativeCharts(t *testing.T) {
	d, m := fixture(t, sampleStories(), deck.Options{})
	out, err := New(render.DefaultPalette).Render(context.Background(), d, m)
	if err != nil {
		t.Fatal(err)
	}
	parts := unzip(t, out)

	var all strings.Builder
	for name, doc := range parts {
		if strings.HasPrefix(name, "ppt/charts/") {
			all.WriteString(doc)
		}
	}
	charts := all.String()
	for _, tag := range []string{"<c:pieChart>", "<c:doughnutChart>", "<c:barChart>", `<c:grouping val="stacked"/>`, `<c:legendPos val="b"/>`} {
		if !strings.Contains(charts, tag) {
			t.Errorf("charts missing %s", tag)
		}
	}

	// 第一张图是媒体分布饼图，Radio 占比 0%，标签应被删除
	pie := parts["ppt/charts/chart1.xml"]
	if !strings.Contains(pie, "<c:pieChart>") {
		t.Fatalf("chart1 is not the media pie: %s", pie[:200])
	}
	if !strings.Contains(pie, `<c:dLbl><c:idx val="2"/><c:delete val="1"/></c:dLbl>`) {
		t.Error("sub-threshold slice label should be deleted")
	}
	if !strings.Contains(pie, `<a:srgbClr val="`+render.DefaultPalette.Color(0)+`"/>`) {
		t.Error("palette colour not applied")
	}
}

func TestRender_EmptyCorpusUsesPlaceholders(t *testing.T) {
	d, m := fixture(t, nil, deck.Options{})
	out, err := New(render.DefaultPalette).Render(context.Background(), d, m)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	parts := unzip(t, out)

	chartElems := 0
	for _, s := range d.Slides {
		for _, e := range s.Elements {
			if _, ok := e.(deck.Chart); ok {
				chartElems++
			}
		}
	}
	placeholders := 0
	for name, doc := range parts {
		if strings.HasPrefix(name, "ppt/charts/") {
			t.Errorf("empty corpus should not produce chart part %s", name)
		}
		if strings.HasPrefix(name, "ppt/slides/slide") {
			placeholders += strings.Count(doc, render.Placeholder)
		}
	}
	if placeholders < chartElems {
		t.Errorf("got %d placeholders for %d chart elements", placeholders, chartElems)
	}
}

func TestRender_Deterministic(t *testing.T) {
	d, m := fixture(t, sampleStories(), deck.Options{})
	r := New(render.DefaultPalette)
	a, err := r.Render(context.Background(), d, m)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(context.Background(), d, m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same model differ")
	}
}

func TestEsc(t *testing.T) {
	if got := esc(`A & B <c> "d"`); got != "A &amp; B &lt;c&gt; &#34;d&#34;" {
		t.Errorf("esc() = %q", got)
	}
}
