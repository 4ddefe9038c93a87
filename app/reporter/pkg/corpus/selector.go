// Package corpus 按时间窗口选取报告语料
package corpus

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

// Query 语料查询条件
type Query struct {
	Window      model.DateWindow
	IndustryIDs []string
	Keywords    model.KeywordSet
}

// Provider 报道语料的外部契约，只读
type Provider interface {
	// FetchStories 拉取某一媒体类型的报道。实现可以多取，Selector 会再次过滤。
	FetchStories(ctx context.Context, medium model.Medium, q Query) ([]model.Story, error)
	// ListOrganizations 列出属于给定行业的所有机构（客户与竞品），industryIDs 为空时返回空
	ListOrganizations(ctx context.Context, industryIDs []string) ([]model.Entity, error)
}

// Corpus 一次报告使用的语料快照
type Corpus struct {
	Stories       []model.Story
	Organizations []model.Entity
}

// Selector 语料选取器
type Selector struct {
	provider Provider
}

// NewSelector 创建语料选取器
func NewSelector(provider Provider) *Selector {
	return &Selector{provider: provider}
}

// Select 并发拉取四类媒体的报道和同行业机构，全部完成后再合并。
// 任一拉取失败则整体失败，不消费部分结果。
func (s *Selector) Select(ctx context.Context, q Query) (*Corpus, error) {
	perMedium := make([][]model.Story, len(model.Media))
	var orgs []model.Entity

	g, gctx := errgroup.WithContext(ctx)
	for i, medium := range model.Media {
		g.Go(func() error {
			stories, err := s.provider.FetchStories(gctx, medium, q)
			if err != nil {
				return err
			}
			perMedium[i] = stories
			return nil
		})
	}
	g.Go(func() error {
		var err error
		orgs, err = s.provider.ListOrganizations(gctx, q.IndustryIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, reporterr.AggregationFailed("corpus.Select", err)
	}

	var stories []model.Story
	for i, batch := range perMedium {
		for _, st := range batch {
			st.Medium = model.Media[i]
			if Matches(st, q) {
				stories = append(stories, st)
			}
		}
	}
	sortStories(stories)
	sort.SliceStable(orgs, func(i, j int) bool { return orgs[i].ID < orgs[j].ID })

	return &Corpus{Stories: stories, Organizations: dedupeEntities(orgs)}, nil
}

// Matches 高召回过滤：日期在窗口内，且行业匹配或任一关键词出现在正文中
func Matches(st model.Story, q Query) bool {
	if !q.Window.Contains(st.Date) {
		return false
	}
	if len(q.IndustryIDs) == 0 && len(q.Keywords) == 0 {
		return true
	}
	for _, id := range q.IndustryIDs {
		if st.IndustryID != "" && st.IndustryID == id {
			return true
		}
	}
	return q.Keywords.MatchText(st.SearchText())
}

func sortStories(stories []model.Story) {
	rank := make(map[model.Medium]int, len(model.Media))
	for i, m := range model.Media {
		rank[m] = i
	}
	sort.SliceStable(stories, func(i, j int) bool {
		a, b := stories[i], stories[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Medium != b.Medium {
			return rank[a.Medium] < rank[b.Medium]
		}
		return a.ID < b.ID
	})
}

func dedupeEntities(in []model.Entity) []model.Entity {
	seen := make(map[string]struct{}, len(in))
	out := make([]model.Entity, 0, len(in))
	for _, e := range in {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}
