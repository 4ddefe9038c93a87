package analytics

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// Theme 主题关键词及其归一化权重
type Theme struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
	Weight  int    `json:"weight"` // [0,100]
}

// ThematicAreas 统计关键词频次，取前 top 个并做 min-max 归一化
func ThematicAreas(stories []model.Story, top int) []Theme {
	counts := make(map[string]int)
	for _, st := range stories {
		for _, tok := range strings.Split(st.Keywords, ",") {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if utf8.RuneCountInString(tok) <= 2 {
				continue
			}
			counts[tok]++
		}
	}

	themes := make([]Theme, 0, len(counts))
	for k, c := range counts {
		themes = append(themes, Theme{Keyword: k, Count: c})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Keyword < themes[j].Keyword
	})
	if len(themes) > top {
		themes = themes[:top]
	}
	NormalizeWeights(themes)
	return themes
}

// NormalizeWeights weight = round((count-min)/(max-min)*100)；全部相等时统一为 50
func NormalizeWeights(themes []Theme) {
	if len(themes) == 0 {
		return
	}
	lo, hi := themes[0].Count, themes[0].Count
	for _, t := range themes {
		lo = min(lo, t.Count)
		hi = max(hi, t.Count)
	}
	for i := range themes {
		if hi == lo {
			themes[i].Weight = 50
			continue
		}
		themes[i].Weight = int(math.Round(float64(themes[i].Count-lo) / float64(hi-lo) * 100))
	}
}
