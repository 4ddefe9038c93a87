package deck

import (
	"encoding/json"
	"fmt"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

// Version 幻灯片顺序版本，调整顺序或版式时递增
const Version = "2"

// SlideKind 幻灯片类型
type SlideKind string

const (
	KindCover   SlideKind = "cover"
	KindDivider SlideKind = "divider"
	KindContent SlideKind = "content"
)

// Slide 一页幻灯片
type Slide struct {
	ID         string    `json:"id"`
	Kind       SlideKind `json:"kind"`
	Background string    `json:"background"` // RRGGBB
	Elements   []Element `json:"elements"`
}

// MarshalJSON 每个元素带 kind 字段，便于调试输出区分元素类型
func (s Slide) MarshalJSON() ([]byte, error) {
	elems := make([]json.RawMessage, 0, len(s.Elements))
	for _, e := range s.Elements {
		b, err := marshalElement(e)
		if err != nil {
			return nil, fmt.Errorf("slide %s: %w", s.ID, err)
		}
		elems = append(elems, b)
	}
	return json.Marshal(struct {
		ID         string            `json:"id"`
		Kind       SlideKind         `json:"kind"`
		Background string            `json:"background"`
		Elements   []json.RawMessage `json:"elements"`
	}{s.ID, s.Kind, s.Background, elems})
}

// Deck 有序幻灯片集合
type Deck struct {
	Version string  `json:"version"`
	Title   string  `json:"title"`
	Slides  []Slide `json:"slides"`
}

// Theme 背景与文字颜色
type Theme struct {
	CoverBackground   string
	DividerBackground string
	ContentBackground string
	HeadingColor      string
	BodyColor         string
	InverseColor      string
}

// DefaultTheme 默认配色
func DefaultTheme() Theme {
	return Theme{
		CoverBackground:   "1F3864",
		DividerBackground: "2E75B6",
		ContentBackground: "FFFFFF",
		HeadingColor:      "1F3864",
		BodyColor:         "333333",
		InverseColor:      "FFFFFF",
	}
}

// Options 编译选项
type Options struct {
	Theme           Theme
	TakeoutsPerPage int
	Logo            []byte
	LogoFormat      string
}

func (o Options) withDefaults() Options {
	if o.Theme == (Theme{}) {
		o.Theme = DefaultTheme()
	}
	if o.TakeoutsPerPage <= 0 {
		o.TakeoutsPerPage = 4
	}
	return o
}

// 版式常量
const (
	margin     = 40.0
	titleY     = 28.0
	titleH     = 50.0
	bodyY      = 96.0
	bodyH      = CanvasHeight - bodyY - margin
	bodyW      = CanvasWidth - 2*margin
	titleSize  = 28.0
	bodySize   = 14.0
	tableSize  = 10.0
	kpiSize    = 30.0
	legendSize = 10.0
)

// Compile 按固定顺序生成幻灯片并校验数据集引用，校验失败时不产出任何幻灯片
func Compile(m *report.Model, opts Options) (*Deck, error) {
	if m == nil {
		return nil, reporterr.IncompleteReportModel("deck.Compile", "report model is nil")
	}
	opts = opts.withDefaults()
	b := &builder{theme: opts.Theme}

	b.cover(m, opts)
	b.content("brief", "Brief",
		Text{Frame: Frame{margin, bodyY, bodyW, 200}, Style: b.body(bodySize), DatasetKey: report.KeyBrief},
		KPI{Frame: Frame{margin, 330, bodyW, 150}, Style: Style{FontSize: kpiSize, Color: b.theme.HeadingColor, Bold: true, Align: AlignCenter}, DatasetKey: report.KeyOverviewKPI},
	)

	b.divider("divider-media", "Media Landscape")
	b.content("scope", "Scope of Coverage",
		Table{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: b.body(tableSize), DatasetKey: report.KeyScopeTable, ColumnWidths: []float64{1, 1, 4}},
	)
	b.content("media-sources", "Media Sources",
		Chart{Frame: Frame{margin + 160, bodyY, bodyW - 320, bodyH}, Style: b.body(legendSize), Type: ChartPie, DatasetKey: report.KeyMediaDistribution, ShowLegend: true, ShowValues: true},
	)
	b.content("trend", "Monthly Coverage Trend",
		Chart{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: b.body(legendSize), Type: ChartBar, DatasetKey: report.KeyMonthlyTrend, Stacked: true, ShowLegend: true, ShowValues: true},
	)
	b.content("themes", "Thematic Areas",
		Chart{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: Style{FontSize: 36, Align: AlignCenter}, Type: ChartCloud, DatasetKey: report.KeyThemes},
	)
	b.content("journalists", "Top Journalists",
		Chart{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: b.body(legendSize), Type: ChartBar, DatasetKey: report.KeyJournalists, ShowValues: true},
	)

	b.divider("divider-visibility", "Client Visibility")
	half := (bodyW - 20) / 2
	b.content("visibility", "Share of Voice",
		Chart{Frame: Frame{margin, bodyY, half, bodyH}, Style: b.body(legendSize), Type: ChartDonut, DatasetKey: report.KeyVisibilityShare, ShowLegend: true, ShowValues: true},
		Chart{Frame: Frame{margin + half + 20, bodyY, half, bodyH}, Style: b.body(legendSize), Type: ChartBar, DatasetKey: report.KeyVisibilityOrgs, ShowValues: true, ColorOffset: 2},
	)
	b.content("client-stories", "Major Stories",
		Table{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: b.body(tableSize), DatasetKey: report.KeyClientStories, ColumnWidths: []float64{1, 1.2, 2, 4}},
	)

	b.divider("divider-competitors", "Competitor Landscape")
	b.content("competitors", "Competitor Share of Voice",
		Chart{Frame: Frame{margin + 160, bodyY, bodyW - 320, bodyH}, Style: b.body(legendSize), Type: ChartPie, DatasetKey: report.KeyCompetitorShare, ShowLegend: true, ShowValues: true},
	)
	for _, c := range m.Competitors {
		if c.Mentions == 0 {
			continue
		}
		b.content("competitor-"+c.ID, c.Name+": Major Stories",
			Table{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: b.body(tableSize), DatasetKey: report.CompetitorStoriesKey(c.ID), ColumnWidths: []float64{1, 1.2, 2, 4}},
		)
	}

	b.content("sentiment", "Sentiment",
		Chart{Frame: Frame{margin, bodyY, bodyW * 0.6, bodyH}, Style: b.body(legendSize), Type: ChartPie, DatasetKey: report.KeySentiment, ShowLegend: true, ShowValues: true},
		KPI{Frame: Frame{margin + bodyW*0.62, bodyY + 40, bodyW * 0.38, bodyH - 80}, Style: Style{FontSize: kpiSize, Color: b.theme.HeadingColor, Bold: true, Align: AlignCenter}, DatasetKey: report.KeySentimentKPI, Suffix: "%"},
	)
	b.takeouts(m, opts.TakeoutsPerPage)

	d := &Deck{Version: Version, Title: m.Client.Name + " PR Presence Report", Slides: b.slides}
	if err := Validate(d, m); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate 确认每个元素引用的数据集都存在于模型中
func Validate(d *Deck, m *report.Model) error {
	for _, s := range d.Slides {
		for _, e := range s.Elements {
			key := DatasetKey(e)
			if key == "" {
				continue
			}
			if !m.Has(key) {
				return reporterr.IncompleteReportModel("deck.Validate", "slide %q references missing dataset %q", s.ID, key)
			}
		}
	}
	return nil
}

// Keys 返回幻灯片引用的全部数据集键（去重，保持首次出现顺序）
func (d *Deck) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, s := range d.Slides {
		for _, e := range s.Elements {
			k := DatasetKey(e)
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

type builder struct {
	theme  Theme
	slides []Slide
}

func (b *builder) body(size float64) Style {
	return Style{FontSize: size, Color: b.theme.BodyColor, Align: AlignLeft}
}

func (b *builder) title(text string, color string) Title {
	return Title{
		Frame: Frame{margin, titleY, bodyW, titleH},
		Style: Style{FontSize: titleSize, Color: color, Bold: true, Align: AlignLeft},
		Text:  text,
	}
}

func (b *builder) cover(m *report.Model, opts Options) {
	s := Slide{ID: "cover", Kind: KindCover, Background: b.theme.CoverBackground}
	s.Elements = append(s.Elements,
		Title{
			Frame: Frame{margin, 190, bodyW, 70},
			Style: Style{FontSize: 40, Color: b.theme.InverseColor, Bold: true, Align: AlignCenter},
			Text:  m.Client.Name,
		},
		Text{
			Frame:      Frame{margin, 270, bodyW, 80},
			Style:      Style{FontSize: 18, Color: b.theme.InverseColor, Align: AlignCenter},
			DatasetKey: report.KeyCover,
			From:       1,
		},
	)
	if len(opts.Logo) > 0 {
		s.Elements = append(s.Elements, Image{Frame: Frame{CanvasWidth/2 - 60, 60, 120, 120}, Data: opts.Logo, Format: opts.LogoFormat})
	}
	b.slides = append(b.slides, s)
}

func (b *builder) divider(id, text string) {
	t := b.title(text, b.theme.InverseColor)
	t.Frame = Frame{margin, 235, bodyW, 70}
	t.FontSize = 36
	t.Align = AlignCenter
	b.slides = append(b.slides, Slide{ID: id, Kind: KindDivider, Background: b.theme.DividerBackground, Elements: []Element{t}})
}

func (b *builder) content(id, heading string, elems ...Element) {
	s := Slide{ID: id, Kind: KindContent, Background: b.theme.ContentBackground}
	s.Elements = append(s.Elements, b.title(heading, b.theme.HeadingColor))
	s.Elements = append(s.Elements, elems...)
	b.slides = append(b.slides, s)
}

func (b *builder) takeouts(m *report.Model, perPage int) {
	n := len(m.Takeouts)
	pages := (n + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	for p := 0; p < pages; p++ {
		heading := "Key Takeouts"
		if pages > 1 {
			heading = fmt.Sprintf("Key Takeouts (%d/%d)", p+1, pages)
		}
		from := p * perPage
		to := min(from+perPage, n)
		b.content(fmt.Sprintf("takeouts-%d", p+1), heading,
			Text{Frame: Frame{margin, bodyY, bodyW, bodyH}, Style: b.body(16), DatasetKey: report.KeyTakeouts, From: from, To: to, Bullets: true},
		)
	}
}
