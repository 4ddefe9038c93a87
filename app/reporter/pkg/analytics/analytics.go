// Package analytics 计算报告的全部派生指标
package analytics

import (
	"math"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// Limits 各排行榜与样本的上限
type Limits struct {
	Themes        int
	OutletSamples int
	MajorStories  int
	Journalists   int
	SynopsisRunes int
}

// DefaultLimits 默认上限
func DefaultLimits() Limits {
	return Limits{
		Themes:        25,
		OutletSamples: 6,
		MajorStories:  6,
		Journalists:   5,
		SynopsisRunes: 300,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.Themes <= 0 {
		l.Themes = d.Themes
	}
	if l.OutletSamples <= 0 {
		l.OutletSamples = d.OutletSamples
	}
	if l.MajorStories <= 0 {
		l.MajorStories = d.MajorStories
	}
	if l.Journalists <= 0 {
		l.Journalists = d.Journalists
	}
	if l.SynopsisRunes <= 0 {
		l.SynopsisRunes = d.SynopsisRunes
	}
	return l
}

// Result 聚合结果
type Result struct {
	TotalStories   int                  `json:"totalStories"`
	ClientMentions int                  `json:"clientMentions"`
	Scope          []MediumScope        `json:"scopeOfCoverage"`
	Distribution   []MediumShare        `json:"mediaDistribution"`
	Trend          []MonthBucket        `json:"monthlyTrend"`
	Themes         []Theme              `json:"thematicAreas"`
	Journalists    []Journalist         `json:"journalistRanking"`
	Visibility     []OrgVisibility      `json:"orgVisibility"`
	ClientStories  []StorySample        `json:"clientMajorStories"`
	Competitors    []CompetitorAnalysis `json:"competitorAnalysis"`
	Sentiment      SentimentRollup      `json:"sentimentRollup"`
	Takeouts       []string             `json:"keyTakeouts"`
}

// Aggregate 按固定顺序计算所有指标，后续步骤复用前面的结果
func Aggregate(c *corpus.Corpus, client model.Client, window model.DateWindow, limits Limits) *Result {
	limits = limits.withDefaults()
	stories := c.Stories

	r := &Result{TotalStories: len(stories)}
	r.Scope = ScopeOfCoverage(stories, limits.OutletSamples)
	r.Distribution = MediaDistribution(stories)
	r.Trend = MonthlyTrend(stories, window)
	r.Themes = ThematicAreas(stories, limits.Themes)

	clientMatcher := NewMatcher(client.Entity)
	clientStories := clientMatcher.Filter(stories)
	r.ClientMentions = len(clientStories)
	r.Visibility = OrgVisibilityRanking(stories, client.Entity, c.Organizations)
	r.Journalists = JournalistRanking(clientStories, limits.Journalists)
	r.ClientStories = MajorStories(clientStories, limits.MajorStories, limits.SynopsisRunes)
	r.Competitors = CompetitorAnalyses(stories, client.Competitors, limits)
	r.Sentiment = Sentiment(stories)
	r.Takeouts = KeyTakeouts(r, client.Name, window)
	return r
}

// round1 四舍五入到一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percent 计算百分比，分母为 0 时返回 0
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}
