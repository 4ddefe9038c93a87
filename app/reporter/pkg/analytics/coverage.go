package analytics

import (
	"sort"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// MediumScope 单一媒体的覆盖范围
type MediumScope struct {
	Medium  model.Medium `json:"medium"`
	Outlets int          `json:"outlets"`
	Samples []string     `json:"samples"`
}

// MediumShare 单一媒体的报道量占比
type MediumShare struct {
	Medium     model.Medium `json:"medium"`
	Count      int          `json:"count"`
	Percentage float64      `json:"percentage"`
}

// MonthBucket 月度趋势桶，Total 恒等于四类媒体之和
type MonthBucket struct {
	Month string `json:"month"`
	Print int    `json:"print"`
	Web   int    `json:"web"`
	TV    int    `json:"tv"`
	Radio int    `json:"radio"`
	Total int    `json:"total"`
}

// ScopeOfCoverage 统计每类媒体的去重媒体数，并按字母序抽样名称
func ScopeOfCoverage(stories []model.Story, samples int) []MediumScope {
	outlets := make(map[model.Medium]map[string]string, len(model.Media))
	for _, m := range model.Media {
		outlets[m] = make(map[string]string)
	}
	for _, st := range stories {
		id := st.Outlet.ID
		if id == "" {
			id = st.Outlet.Name
		}
		if id == "" {
			continue
		}
		byID, ok := outlets[st.Medium]
		if !ok {
			continue
		}
		if _, seen := byID[id]; !seen {
			byID[id] = st.Outlet.Name
		}
	}

	scope := make([]MediumScope, 0, len(model.Media))
	for _, m := range model.Media {
		names := make([]string, 0, len(outlets[m]))
		seen := make(map[string]struct{})
		for _, name := range outlets[m] {
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > samples {
			names = names[:samples]
		}
		scope = append(scope, MediumScope{Medium: m, Outlets: len(outlets[m]), Samples: names})
	}
	return scope
}

// MediaDistribution 各媒体报道量占全部语料的百分比，分母一致
func MediaDistribution(stories []model.Story) []MediumShare {
	counts := make(map[model.Medium]int, len(model.Media))
	for _, st := range stories {
		counts[st.Medium]++
	}
	shares := make([]MediumShare, 0, len(model.Media))
	for _, m := range model.Media {
		shares = append(shares, MediumShare{
			Medium:     m,
			Count:      counts[m],
			Percentage: percent(counts[m], len(stories)),
		})
	}
	return shares
}

// MonthlyTrend 先为窗口内每个月初始化零值桶，再单次遍历累加
func MonthlyTrend(stories []model.Story, window model.DateWindow) []MonthBucket {
	months := window.Months()
	buckets := make([]MonthBucket, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		key := model.MonthKey(m)
		buckets[i] = MonthBucket{Month: key}
		index[key] = i
	}

	for _, st := range stories {
		i, ok := index[model.MonthKey(st.Date.In(window.Start.Location()))]
		if !ok {
			continue
		}
		b := &buckets[i]
		switch st.Medium {
		case model.MediumPrint:
			b.Print++
		case model.MediumWeb:
			b.Web++
		case model.MediumTV:
			b.TV++
		case model.MediumRadio:
			b.Radio++
		default:
			continue
		}
		b.Total = b.Print + b.Web + b.TV + b.Radio
	}
	return buckets
}
