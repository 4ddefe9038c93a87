package report

// DatasetKind 数据集类型
type DatasetKind string

const (
	KindSeries DatasetKind = "series"
	KindTable  DatasetKind = "table"
	KindText   DatasetKind = "text"
	KindKPI    DatasetKind = "kpi"
)

// 固定数据集键，幻灯片元素只通过这些键引用数据
const (
	KeyCover             = "cover"
	KeyBrief             = "brief"
	KeyScopeTable        = "scope.table"
	KeyOverviewKPI       = "overview.kpi"
	KeyMediaDistribution = "media.distribution"
	KeyMonthlyTrend      = "trend.monthly"
	KeyThemes            = "themes"
	KeyJournalists       = "journalists.top"
	KeyVisibilityShare   = "visibility.share"
	KeyVisibilityOrgs    = "visibility.orgs"
	KeyClientStories     = "client.stories"
	KeyCompetitorShare   = "competitors.share"
	KeySentiment         = "sentiment"
	KeySentimentKPI      = "sentiment.kpi"
	KeyTakeouts          = "takeouts"
)

// RequiredKeys 固定幻灯片顺序所依赖的数据集
var RequiredKeys = []string{
	KeyCover, KeyBrief, KeyScopeTable, KeyOverviewKPI, KeyMediaDistribution,
	KeyMonthlyTrend, KeyThemes, KeyJournalists, KeyVisibilityShare,
	KeyVisibilityOrgs, KeyClientStories, KeyCompetitorShare, KeySentiment,
	KeySentimentKPI, KeyTakeouts,
}

// CompetitorStoriesKey 单个竞品重点报道表的键
func CompetitorStoriesKey(competitorID string) string {
	return "competitor." + competitorID + ".stories"
}

// Series 一组数值
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Dataset 命名数据集，渲染器只认识这一种数据形态
type Dataset struct {
	Key     string      `json:"key"`
	Kind    DatasetKind `json:"kind"`
	Labels  []string    `json:"labels,omitempty"`
	Series  []Series    `json:"series,omitempty"`
	Columns []string    `json:"columns,omitempty"`
	Rows    [][]string  `json:"rows,omitempty"`
	Lines   []string    `json:"lines,omitempty"`
}

// Empty 没有标签、没有行、没有文本，或所有数值均为 0
func (d Dataset) Empty() bool {
	switch d.Kind {
	case KindTable:
		return len(d.Rows) == 0
	case KindText:
		return len(d.Lines) == 0
	default:
		if len(d.Labels) == 0 {
			return true
		}
		for _, s := range d.Series {
			for _, v := range s.Values {
				if v != 0 {
					return false
				}
			}
		}
		return true
	}
}

// Totals 每个标签在所有序列上的合计
func (d Dataset) Totals() []float64 {
	totals := make([]float64, len(d.Labels))
	for _, s := range d.Series {
		for i, v := range s.Values {
			if i < len(totals) {
				totals[i] += v
			}
		}
	}
	return totals
}
