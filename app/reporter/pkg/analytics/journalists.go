package analytics

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// Journalist 记者/主持人排行项
type Journalist struct {
	Name     string `json:"name"`
	Outlet   string `json:"outlet"`
	Articles int    `json:"articles"`
}

// JournalistRanking 按规范化后的作者名分组计数，取前 top 名。
// 规范化：去空白、小写，长度不超过 3 的（多为缩写）丢弃。同一篇报道里重复署名只计一次。
func JournalistRanking(stories []model.Story, top int) []Journalist {
	byKey := make(map[string]*Journalist)
	var order []string
	for _, st := range stories {
		seen := make(map[string]struct{}, len(st.Authors))
		for _, author := range st.Authors {
			name := strings.TrimSpace(author)
			key := strings.ToLower(name)
			if utf8.RuneCountInString(key) <= 3 {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			j, ok := byKey[key]
			if !ok {
				j = &Journalist{Name: name, Outlet: st.Outlet.Name}
				byKey[key] = j
				order = append(order, key)
			}
			j.Articles++
		}
	}

	ranking := make([]Journalist, 0, len(order))
	for _, key := range order {
		ranking = append(ranking, *byKey[key])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Articles != ranking[j].Articles {
			return ranking[i].Articles > ranking[j].Articles
		}
		return strings.ToLower(ranking[i].Name) < strings.ToLower(ranking[j].Name)
	})
	if len(ranking) > top {
		ranking = ranking[:top]
	}
	return ranking
}
