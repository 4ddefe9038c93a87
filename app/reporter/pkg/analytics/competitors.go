package analytics

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// StorySample 重点报道样本
type StorySample struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Synopsis string       `json:"synopsis"`
	Outlet   string       `json:"outlet"`
	Medium   model.Medium `json:"medium"`
	Date     time.Time    `json:"date"`
}

// CompetitorAnalysis 单个竞品的声量
type CompetitorAnalysis struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Mentions     int           `json:"mentions"`
	Percentage   float64       `json:"percentage"` // 占全部竞品提及之和
	MajorStories []StorySample `json:"majorStories"`
}

// CompetitorAnalyses 统计每个竞品的提及量，占比以所有竞品提及之和为分母
func CompetitorAnalyses(stories []model.Story, competitors []model.Entity, limits Limits) []CompetitorAnalysis {
	limits = limits.withDefaults()
	out := make([]CompetitorAnalysis, 0, len(competitors))
	total := 0
	for _, comp := range competitors {
		matched := NewMatcher(comp).Filter(stories)
		total += len(matched)
		out = append(out, CompetitorAnalysis{
			ID:           comp.ID,
			Name:         comp.Name,
			Mentions:     len(matched),
			MajorStories: MajorStories(matched, limits.MajorStories, limits.SynopsisRunes),
		})
	}
	for i := range out {
		out[i].Percentage = percent(out[i].Mentions, total)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mentions != out[j].Mentions {
			return out[i].Mentions > out[j].Mentions
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MajorStories 按日期从早到晚取前 limit 条报道作为样本
func MajorStories(stories []model.Story, limit, synopsisRunes int) []StorySample {
	sorted := make([]model.Story, len(stories))
	copy(sorted, stories)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	samples := make([]StorySample, 0, len(sorted))
	for _, st := range sorted {
		text := st.Summary
		if strings.TrimSpace(text) == "" {
			text = st.Content
		}
		samples = append(samples, StorySample{
			ID:       st.ID,
			Title:    st.Title,
			Synopsis: Synopsis(text, synopsisRunes),
			Outlet:   st.Outlet.Name,
			Medium:   st.Medium,
			Date:     st.Date,
		})
	}
	return samples
}

// Synopsis 压缩空白后截取前 n 个字符，尽量在词边界截断
func Synopsis(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := n
	for i := n; i > n*2/3; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}) + "…"
}
