package storage

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/catalog"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// FixtureFile YAML 样例语料文件结构
type FixtureFile struct {
	Clients       []fixtureClient `yaml:"clients"`
	Entities      []fixtureEntity `yaml:"entities"`
	Organizations []fixtureEntity `yaml:"organizations"`
	Stories       []fixtureStory  `yaml:"stories"`
}

type fixtureEntity struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Industries []string `yaml:"industries"`
}

type fixtureClient struct {
	fixtureEntity `yaml:",inline"`
	Competitors   []string `yaml:"competitors"`
}

type fixtureStory struct {
	ID        string   `yaml:"id"`
	Medium    string   `yaml:"medium"`
	Title     string   `yaml:"title"`
	Content   string   `yaml:"content"`
	Summary   string   `yaml:"summary"`
	Keywords  string   `yaml:"keywords"`
	Date      string   `yaml:"date"`
	CreatedAt string   `yaml:"created_at"`
	Sentiment string   `yaml:"sentiment"`
	Industry  string   `yaml:"industry"`
	Authors   []string `yaml:"authors"`
	Outlet    struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"outlet"`
}

// Fixture 基于 YAML 文件的只读语料源，用于演示和测试
type Fixture struct {
	clients  map[string]model.Client
	entities map[string]model.Entity
	orgs     []model.Entity
	stories  []model.Story
}

var (
	_ corpus.Provider  = (*Fixture)(nil)
	_ catalog.Provider = (*Fixture)(nil)
)

// LoadFixture 从文件加载样例语料
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture 解析 YAML 样例语料
func ParseFixture(data []byte) (*Fixture, error) {
	var file FixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	f := &Fixture{
		clients:  make(map[string]model.Client, len(file.Clients)),
		entities: make(map[string]model.Entity, len(file.Clients)+len(file.Entities)),
	}
	for _, e := range file.Entities {
		f.entities[e.ID] = e.entity()
	}
	for _, e := range file.Organizations {
		ent := e.entity()
		f.orgs = append(f.orgs, ent)
		if _, ok := f.entities[ent.ID]; !ok {
			f.entities[ent.ID] = ent
		}
	}
	for _, c := range file.Clients {
		f.entities[c.ID] = c.entity()
	}
	for _, c := range file.Clients {
		client := model.Client{Entity: c.entity()}
		for _, id := range c.Competitors {
			comp, ok := f.entities[id]
			if !ok {
				return nil, fmt.Errorf("client %q: unknown competitor %q", c.ID, id)
			}
			client.Competitors = append(client.Competitors, comp)
		}
		f.clients[c.ID] = client
	}

	for i, s := range file.Stories {
		st, err := s.story()
		if err != nil {
			return nil, fmt.Errorf("story %d (%s): %w", i, s.ID, err)
		}
		f.stories = append(f.stories, st)
	}
	return f, nil
}

func (e fixtureEntity) entity() model.Entity {
	return model.Entity{ID: e.ID, Name: e.Name, Keywords: e.Keywords, IndustryIDs: e.Industries}
}

func (s fixtureStory) story() (model.Story, error) {
	medium := model.Medium(s.Medium)
	if !slices.Contains(model.Media, medium) {
		return model.Story{}, fmt.Errorf("unknown medium %q", s.Medium)
	}
	date, err := parseDate(s.Date)
	if err != nil {
		return model.Story{}, err
	}
	created := date
	if s.CreatedAt != "" {
		if created, err = parseDate(s.CreatedAt); err != nil {
			return model.Story{}, err
		}
	}
	return model.Story{
		ID:         s.ID,
		Medium:     medium,
		Title:      s.Title,
		Content:    PlainText(s.Content),
		Summary:    s.Summary,
		Keywords:   s.Keywords,
		Date:       date,
		CreatedAt:  created,
		Sentiment:  model.ParseSentiment(s.Sentiment),
		IndustryID: s.Industry,
		Authors:    s.Authors,
		Outlet:     model.Outlet{ID: s.Outlet.ID, Name: s.Outlet.Name},
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// GetClient 获取客户，未知 ID 返回 (nil, nil)
func (f *Fixture) GetClient(_ context.Context, id string) (*model.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetEntity 获取客户或竞品
func (f *Fixture) GetEntity(_ context.Context, id string) (*model.Entity, error) {
	e, ok := f.entities[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// FetchStories 返回某一媒体类型在窗口内的报道，关键词和行业过滤交给 Selector
func (f *Fixture) FetchStories(ctx context.Context, medium model.Medium, q corpus.Query) ([]model.Story, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Story
	for _, s := range f.stories {
		if s.Medium == medium && q.Window.Contains(s.Date) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListOrganizations 列出行业有交集的机构，industryIDs 为空时没有同行
func (f *Fixture) ListOrganizations(ctx context.Context, industryIDs []string) ([]model.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Entity
	for _, o := range f.orgs {
		if overlaps(o.IndustryIDs, industryIDs) {
			out = append(out, o)
		}
	}
	return out, nil
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}
