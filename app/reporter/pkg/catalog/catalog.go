// Package catalog 解析客户与竞品的关键词集合
package catalog

import (
	"context"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

// Provider 实体目录的外部契约。未找到时返回 (nil, nil)。
type Provider interface {
	// GetClient 获取客户及其竞品
	GetClient(ctx context.Context, id string) (*model.Client, error)
	// GetEntity 获取任意客户或竞品
	GetEntity(ctx context.Context, id string) (*model.Entity, error)
}

// Index 实体关键词索引
type Index struct {
	provider Provider
}

// NewIndex 创建关键词索引
func NewIndex(provider Provider) *Index {
	return &Index{provider: provider}
}

// Client 获取客户，未知 ID 返回 NotFound
func (i *Index) Client(ctx context.Context, id string) (*model.Client, error) {
	c, err := i.provider.GetClient(ctx, id)
	if err != nil {
		return nil, reporterr.AggregationFailed("catalog.Client", err)
	}
	if c == nil {
		return nil, reporterr.NotFound("catalog.Client", "client %q not found", id)
	}
	return c, nil
}

// KeywordSet 返回实体的关键词集合（始终包含实体名称）
func (i *Index) KeywordSet(ctx context.Context, id string) (model.KeywordSet, error) {
	e, err := i.provider.GetEntity(ctx, id)
	if err != nil {
		return nil, reporterr.AggregationFailed("catalog.KeywordSet", err)
	}
	if e == nil {
		return nil, reporterr.NotFound("catalog.KeywordSet", "entity %q not found", id)
	}
	return NewKeywordSet(*e), nil
}

// NewKeywordSet {name} ∪ keywords，小写去重
func NewKeywordSet(e model.Entity) model.KeywordSet {
	words := make([]string, 0, len(e.Keywords)+1)
	words = append(words, e.Name)
	words = append(words, e.Keywords...)
	return model.NewKeywordSet(words...)
}
