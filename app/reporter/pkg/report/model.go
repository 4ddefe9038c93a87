// Package report 把聚合结果组装为不可变的报告模型
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/analytics"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

// maxVisibilityOrgs 可见度柱状图最多展示的机构数
const maxVisibilityOrgs = 10

// ClientInfo 报告对象概要
type ClientInfo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Competitors []CompetitorRef `json:"competitors"`
}

// CompetitorRef 竞品引用
type CompetitorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Model 报告模型，构建后只读
type Model struct {
	Client        ClientInfo                     `json:"client"`
	Window        model.DateWindow               `json:"window"`
	WindowLabel   string                         `json:"windowLabel"`
	GeneratedAt   time.Time                      `json:"generatedAt"`
	TotalStories  int                            `json:"totalStories"`
	Mentions      int                            `json:"clientMentions"`
	Scope         []analytics.MediumScope        `json:"scopeOfCoverage"`
	Distribution  []analytics.MediumShare        `json:"mediaDistribution"`
	Trend         []analytics.MonthBucket        `json:"monthlyTrend"`
	Themes        []analytics.Theme              `json:"thematicAreas"`
	Journalists   []analytics.Journalist         `json:"journalistRanking"`
	Visibility    []analytics.OrgVisibility      `json:"orgVisibility"`
	ClientStories []analytics.StorySample        `json:"clientMajorStories"`
	Competitors   []analytics.CompetitorAnalysis `json:"competitorAnalysis"`
	Sentiment     analytics.SentimentRollup      `json:"sentimentRollup"`
	Takeouts      []string                       `json:"keyTakeouts"`

	datasets map[string]Dataset
}

// Input 构建报告模型所需的输入
type Input struct {
	Client      model.Client
	Window      model.DateWindow
	GeneratedAt time.Time
	Result      *analytics.Result
}

// Build 组装报告模型并注册命名数据集。幻灯片对数据集的引用由 deck.Validate 校验。
func Build(in Input) (*Model, error) {
	const op = "report.Build"
	if in.Result == nil {
		return nil, reporterr.IncompleteReportModel(op, "aggregation result is nil")
	}
	r := in.Result

	info := ClientInfo{ID: in.Client.ID, Name: in.Client.Name, Competitors: make([]CompetitorRef, 0, len(in.Client.Competitors))}
	for _, c := range in.Client.Competitors {
		info.Competitors = append(info.Competitors, CompetitorRef{ID: c.ID, Name: c.Name})
	}

	m := &Model{
		Client:        info,
		Window:        in.Window,
		WindowLabel:   in.Window.Label(),
		GeneratedAt:   in.GeneratedAt,
		TotalStories:  r.TotalStories,
		Mentions:      r.ClientMentions,
		Scope:         r.Scope,
		Distribution:  r.Distribution,
		Trend:         r.Trend,
		Themes:        r.Themes,
		Journalists:   r.Journalists,
		Visibility:    r.Visibility,
		ClientStories: r.ClientStories,
		Competitors:   r.Competitors,
		Sentiment:     r.Sentiment,
		Takeouts:      r.Takeouts,
	}
	m.datasets = buildDatasets(m)
	return m, nil
}

// Dataset 按键查找数据集
func (m *Model) Dataset(key string) (Dataset, bool) {
	d, ok := m.datasets[key]
	return d, ok
}

// Has 数据集是否存在
func (m *Model) Has(key string) bool {
	_, ok := m.datasets[key]
	return ok
}

// Keys 返回全部数据集键（有序）
func (m *Model) Keys() []string {
	keys := make([]string, 0, len(m.datasets))
	for k := range m.datasets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Datasets 返回全部数据集（按键有序）
func (m *Model) Datasets() []Dataset {
	keys := m.Keys()
	out := make([]Dataset, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.datasets[k])
	}
	return out
}

func buildDatasets(m *Model) map[string]Dataset {
	ds := make(map[string]Dataset)
	add := func(d Dataset) { ds[d.Key] = d }

	add(Dataset{Key: KeyCover, Kind: KindText, Lines: []string{
		m.Client.Name,
		"PR Presence Report",
		m.WindowLabel,
	}})
	add(Dataset{Key: KeyBrief, Kind: KindText, Lines: briefLines(m)})

	scope := Dataset{Key: KeyScopeTable, Kind: KindTable, Columns: []string{"Medium", "Outlets", "Sample outlets"}}
	outlets := 0
	for _, s := range m.Scope {
		outlets += s.Outlets
		scope.Rows = append(scope.Rows, []string{s.Medium.Label(), fmt.Sprintf("%d", s.Outlets), strings.Join(s.Samples, ", ")})
	}
	add(scope)

	add(Dataset{
		Key:    KeyOverviewKPI,
		Kind:   KindKPI,
		Labels: []string{"Stories monitored", "Client mentions", "Outlets"},
		Series: []Series{{Name: "Value", Values: []float64{float64(m.TotalStories), float64(m.Mentions), float64(outlets)}}},
	})

	dist := Dataset{Key: KeyMediaDistribution, Kind: KindSeries, Series: []Series{{Name: "Stories"}}}
	for _, d := range m.Distribution {
		dist.Labels = append(dist.Labels, d.Medium.Label())
		dist.Series[0].Values = append(dist.Series[0].Values, float64(d.Count))
	}
	add(dist)

	trend := Dataset{Key: KeyMonthlyTrend, Kind: KindSeries}
	perMedium := make(map[model.Medium][]float64, len(model.Media))
	for _, b := range m.Trend {
		trend.Labels = append(trend.Labels, b.Month)
		perMedium[model.MediumWeb] = append(perMedium[model.MediumWeb], float64(b.Web))
		perMedium[model.MediumPrint] = append(perMedium[model.MediumPrint], float64(b.Print))
		perMedium[model.MediumRadio] = append(perMedium[model.MediumRadio], float64(b.Radio))
		perMedium[model.MediumTV] = append(perMedium[model.MediumTV], float64(b.TV))
	}
	for _, md := range model.Media {
		trend.Series = append(trend.Series, Series{Name: md.Label(), Values: perMedium[md]})
	}
	add(trend)

	themes := Dataset{Key: KeyThemes, Kind: KindSeries, Series: []Series{{Name: "Weight"}, {Name: "Stories"}}}
	for _, t := range m.Themes {
		themes.Labels = append(themes.Labels, t.Keyword)
		themes.Series[0].Values = append(themes.Series[0].Values, float64(t.Weight))
		themes.Series[1].Values = append(themes.Series[1].Values, float64(t.Count))
	}
	add(themes)

	journalists := Dataset{Key: KeyJournalists, Kind: KindSeries, Series: []Series{{Name: "Stories"}}}
	for _, j := range m.Journalists {
		label := j.Name
		if j.Outlet != "" {
			label = fmt.Sprintf("%s (%s)", j.Name, j.Outlet)
		}
		journalists.Labels = append(journalists.Labels, label)
		journalists.Series[0].Values = append(journalists.Series[0].Values, float64(j.Articles))
	}
	add(journalists)

	clientMentions, peerMentions := 0, 0
	orgs := Dataset{Key: KeyVisibilityOrgs, Kind: KindSeries, Series: []Series{{Name: "Mentions"}}}
	for i, v := range m.Visibility {
		if v.IsClient {
			clientMentions += v.Mentions
		} else {
			peerMentions += v.Mentions
		}
		if i < maxVisibilityOrgs {
			orgs.Labels = append(orgs.Labels, v.Name)
			orgs.Series[0].Values = append(orgs.Series[0].Values, float64(v.Mentions))
		}
	}
	add(Dataset{
		Key:    KeyVisibilityShare,
		Kind:   KindSeries,
		Labels: []string{m.Client.Name, "Industry peers"},
		Series: []Series{{Name: "Mentions", Values: []float64{float64(clientMentions), float64(peerMentions)}}},
	})
	add(orgs)

	add(storyTable(KeyClientStories, m.ClientStories))

	compShare := Dataset{Key: KeyCompetitorShare, Kind: KindSeries, Series: []Series{{Name: "Mentions"}}}
	for _, c := range m.Competitors {
		compShare.Labels = append(compShare.Labels, c.Name)
		compShare.Series[0].Values = append(compShare.Series[0].Values, float64(c.Mentions))
		if c.Mentions > 0 {
			add(storyTable(CompetitorStoriesKey(c.ID), c.MajorStories))
		}
	}
	add(compShare)

	s := m.Sentiment
	add(Dataset{
		Key:    KeySentiment,
		Kind:   KindSeries,
		Labels: []string{"Positive", "Neutral", "Negative"},
		Series: []Series{{Name: "Stories", Values: []float64{float64(s.Positive), float64(s.Neutral), float64(s.Negative)}}},
	})
	add(Dataset{
		Key:    KeySentimentKPI,
		Kind:   KindKPI,
		Labels: []string{"Positive", "Neutral", "Negative"},
		Series: []Series{{Name: "Percent", Values: []float64{s.PositivePct, s.NeutralPct, s.NegativePct}}},
	})

	add(Dataset{Key: KeyTakeouts, Kind: KindText, Lines: append([]string(nil), m.Takeouts...)})
	return ds
}

func briefLines(m *Model) []string {
	lines := []string{
		fmt.Sprintf("This report reviews media coverage of %s across web, print, radio and TV between %s.", m.Client.Name, m.WindowLabel),
		fmt.Sprintf("%d stories were monitored in the client's industries, of which %d mentioned %s directly.", m.TotalStories, m.Mentions, m.Client.Name),
	}
	if n := len(m.Client.Competitors); n > 0 {
		lines = append(lines, fmt.Sprintf("Coverage is benchmarked against %d competitors.", n))
	}
	return lines
}

func storyTable(key string, stories []analytics.StorySample) Dataset {
	d := Dataset{Key: key, Kind: KindTable, Columns: []string{"Date", "Outlet", "Headline", "Synopsis"}}
	for _, st := range stories {
		d.Rows = append(d.Rows, []string{st.Date.Format("02 Jan 2006"), st.Outlet, st.Title, st.Synopsis})
	}
	return d
}
