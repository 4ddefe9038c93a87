package analytics

import (
	"sort"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/catalog"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// Matcher 按实体关键词匹配报道
type Matcher struct {
	Entity   model.Entity
	keywords model.KeywordSet
}

// NewMatcher 创建实体匹配器
func NewMatcher(e model.Entity) *Matcher {
	return &Matcher{Entity: e, keywords: catalog.NewKeywordSet(e)}
}

// Match 报道拼接文本包含任一关键词即视为提及
func (m *Matcher) Match(st model.Story) bool {
	return m.keywords.MatchText(st.SearchText())
}

// Filter 返回提及该实体的报道，保持原有顺序
func (m *Matcher) Filter(stories []model.Story) []model.Story {
	var out []model.Story
	for _, st := range stories {
		if m.Match(st) {
			out = append(out, st)
		}
	}
	return out
}

// Count 提及该实体的报道数
func (m *Matcher) Count(stories []model.Story) int {
	n := 0
	for _, st := range stories {
		if m.Match(st) {
			n++
		}
	}
	return n
}

// OrgVisibility 同行业机构的声量
type OrgVisibility struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Mentions   int     `json:"mentions"`
	Percentage float64 `json:"percentage"`
	IsClient   bool    `json:"isClient"`
}

// OrgVisibilityRanking 计算客户与同行业机构的提及量及占比（声量份额），客户总是参与排名
func OrgVisibilityRanking(stories []model.Story, client model.Entity, peers []model.Entity) []OrgVisibility {
	orgs := []model.Entity{client}
	for _, p := range peers {
		if p.ID != client.ID {
			orgs = append(orgs, p)
		}
	}

	ranking := make([]OrgVisibility, 0, len(orgs))
	total := 0
	for _, o := range orgs {
		n := NewMatcher(o).Count(stories)
		total += n
		ranking = append(ranking, OrgVisibility{ID: o.ID, Name: o.Name, Mentions: n, IsClient: o.ID == client.ID})
	}
	for i := range ranking {
		ranking[i].Percentage = percent(ranking[i].Mentions, total)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Mentions != ranking[j].Mentions {
			return ranking[i].Mentions > ranking[j].Mentions
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}
