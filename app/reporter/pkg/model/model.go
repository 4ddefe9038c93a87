package model

import (
	"sort"
	"strings"
	"time"
)

// Medium 媒体类型
type Medium string

const (
	MediumWeb   Medium = "web"
	MediumPrint Medium = "print"
	MediumRadio Medium = "radio"
	MediumTV    Medium = "tv"
)

// Media 固定的媒体展示顺序，图例顺序依赖于此
var Media = []Medium{MediumWeb, MediumPrint, MediumRadio, MediumTV}

// Label 媒体的展示名称
func (m Medium) Label() string {
	switch m {
	case MediumWeb:
		return "Web"
	case MediumPrint:
		return "Print"
	case MediumRadio:
		return "Radio"
	case MediumTV:
		return "TV"
	default:
		return string(m)
	}
}

// Sentiment 整体情感倾向
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment 解析情感字段，空值或未知值返回 nil（未评分）
func ParseSentiment(s string) *Sentiment {
	v := Sentiment(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return &v
	default:
		return nil
	}
}

// Outlet 媒体/电台引用，在拉取语料时一次性解析
type Outlet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Story 单条监测报道
type Story struct {
	ID         string     `json:"id"`
	Medium     Medium     `json:"medium"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Summary    string     `json:"summary,omitempty"`
	Keywords   string     `json:"keywords"` // 逗号分隔
	Date       time.Time  `json:"date"`
	CreatedAt  time.Time  `json:"createdAt"`
	Sentiment  *Sentiment `json:"overallSentiment"`
	IndustryID string     `json:"industryId,omitempty"`
	Authors    []string   `json:"authors,omitempty"` // web/print 为作者，radio/tv 为主持人
	Outlet     Outlet     `json:"outlet"`
}

// SearchText 用于关键词匹配的小写拼接文本
func (s *Story) SearchText() string {
	return strings.ToLower(s.Title + " " + s.Content + " " + s.Keywords + " " + s.Summary)
}

// Entity 客户或竞品
type Entity struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	IndustryIDs []string `json:"industryIds"`
}

// Client 客户及其竞品列表
type Client struct {
	Entity
	Competitors []Entity `json:"competitors"`
}

// KeywordSet 小写、去重、排序后的关键词集合
type KeywordSet []string

// NewKeywordSet 构建关键词集合，丢弃空白项
func NewKeywordSet(words ...string) KeywordSet {
	seen := make(map[string]struct{}, len(words))
	set := make(KeywordSet, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		set = append(set, w)
	}
	sort.Strings(set)
	return set
}

// Union 合并多个关键词集合
func Union(sets ...KeywordSet) KeywordSet {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return NewKeywordSet(all...)
}

// MatchText 判断小写文本是否包含任一关键词（子串、不锚定）
func (k KeywordSet) MatchText(lowerText string) bool {
	for _, w := range k {
		if strings.Contains(lowerText, w) {
			return true
		}
	}
	return false
}
