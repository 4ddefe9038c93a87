package storage

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/lib/pq"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/catalog"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/config"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/logger"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// storyTable 一种媒体类型的报道表及其媒体/电台关联表
type storyTable struct {
	stories string
	outlets string
	// authors web/print 为作者，radio/tv 为主持人，均为 text[]
	authors string
}

var storyTables = map[model.Medium]storyTable{
	model.MediumWeb:   {stories: "web_stories", outlets: "media_outlets", authors: "authors"},
	model.MediumPrint: {stories: "print_stories", outlets: "media_outlets", authors: "authors"},
	model.MediumRadio: {stories: "radio_stories", outlets: "stations", authors: "presenters"},
	model.MediumTV:    {stories: "tv_stories", outlets: "stations", authors: "presenters"},
}

const (
	organizationsTable = "organizations"
	competitorsTable   = "client_competitors"
)

// Postgres 监测库的只读访问，同时实现语料源和实体目录
type Postgres struct {
	db *sql.DB
}

var (
	_ corpus.Provider  = (*Postgres)(nil)
	_ catalog.Provider = (*Postgres)(nil)
)

// OpenPostgres 打开并检查数据库连接，返回的 cleanup 负责关闭连接
func OpenPostgres(cfg config.DBConfig) (*sql.DB, func(), error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	cleanup := func() {
		logger.Log.Info("closing the data resources")
		if err := db.Close(); err != nil {
			logger.Log.Errorf("关闭数据库连接失败: %v", err)
		}
	}
	return db, cleanup, nil
}

// NewPostgres 基于已有连接创建存储
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// FetchStories 拉取一种媒体类型的报道。SQL 只做窗口、行业和关键词的粗过滤，精确匹配交给 Selector。
func (p *Postgres) FetchStories(ctx context.Context, medium model.Medium, q corpus.Query) ([]model.Story, error) {
	query, args, err := storiesQuery(medium, q)
	if err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s stories: %w", medium, err)
	}
	defer rows.Close()

	var stories []model.Story
	for rows.Next() {
		var (
			st                                     model.Story
			summary, keywords, sentiment, industry sql.NullString
			content, outletID, outletName          sql.NullString
			created                                sql.NullTime
		)
		if err := rows.Scan(&st.ID, &st.Title, &content, &summary, &keywords, &st.Date, &created,
			&sentiment, &industry, pq.Array(&st.Authors), &outletID, &outletName); err != nil {
			return nil, fmt.Errorf("scan %s story: %w", medium, err)
		}
		st.Medium = medium
		st.Content = PlainText(content.String)
		st.Summary = summary.String
		st.Keywords = keywords.String
		st.CreatedAt = st.Date
		if created.Valid {
			st.CreatedAt = created.Time
		}
		st.Sentiment = model.ParseSentiment(sentiment.String)
		st.IndustryID = industry.String
		st.Outlet = model.Outlet{ID: outletID.String, Name: outletName.String}
		stories = append(stories, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s stories: %w", medium, err)
	}
	return stories, nil
}

func storiesQuery(medium model.Medium, q corpus.Query) (string, []any, error) {
	tbl, ok := storyTables[medium]
	if !ok {
		return "", nil, fmt.Errorf("unknown medium %q", medium)
	}
	b := entsql.Dialect(dialect.Postgres)
	s := b.Table(tbl.stories)
	o := b.Table(tbl.outlets)

	preds := []*entsql.Predicate{
		entsql.GTE(s.C("date"), q.Window.Start),
		entsql.LTE(s.C("date"), q.Window.End),
	}
	var recall []*entsql.Predicate
	if len(q.IndustryIDs) > 0 {
		ids := make([]any, len(q.IndustryIDs))
		for i, id := range q.IndustryIDs {
			ids[i] = id
		}
		recall = append(recall, entsql.In(s.C("industry_id"), ids...))
	}
	for _, kw := range q.Keywords {
		recall = append(recall,
			entsql.ContainsFold(s.C("title"), kw),
			entsql.ContainsFold(s.C("content"), kw),
			entsql.ContainsFold(s.C("summary"), kw),
			entsql.ContainsFold(s.C("keywords"), kw),
		)
	}
	if len(recall) > 0 {
		preds = append(preds, entsql.Or(recall...))
	}

	query, args := b.Select(
		s.C("id"), s.C("title"), s.C("content"), s.C("summary"), s.C("keywords"),
		s.C("date"), s.C("created_at"), s.C("sentiment"), s.C("industry_id"), s.C(tbl.authors),
		o.C("id"), o.C("name"),
	).
		From(s).
		LeftJoin(o).On(s.C("outlet_id"), o.C("id")).
		Where(entsql.And(preds...)).
		OrderBy(s.C("date"), s.C("id")).
		Query()
	return query, args, nil
}

// ListOrganizations 列出与给定行业有交集的机构，industryIDs 为空时返回空
func (p *Postgres) ListOrganizations(ctx context.Context, industryIDs []string) ([]model.Entity, error) {
	if len(industryIDs) == 0 {
		return nil, nil
	}
	b := entsql.Dialect(dialect.Postgres)
	t := b.Table(organizationsTable)
	query, args := b.Select(entityColumns(t)...).From(t).
		Where(overlap(t.C("industry_ids"), industryIDs)).
		OrderBy(t.C("id")).
		Query()
	return p.queryEntities(ctx, query, args)
}

// GetClient 获取客户及其竞品，未找到返回 (nil, nil)
func (p *Postgres) GetClient(ctx context.Context, id string) (*model.Client, error) {
	b := entsql.Dialect(dialect.Postgres)
	t := b.Table(organizationsTable)
	query, args := b.Select(entityColumns(t)...).From(t).
		Where(entsql.And(entsql.EQ(t.C("id"), id), entsql.EQ(t.C("is_client"), true))).
		Query()
	entities, err := p.queryEntities(ctx, query, args)
	if err != nil || len(entities) == 0 {
		return nil, err
	}

	cc := b.Table(competitorsTable)
	query, args = b.Select(entityColumns(t)...).From(cc).
		Join(t).On(cc.C("competitor_id"), t.C("id")).
		Where(entsql.EQ(cc.C("client_id"), id)).
		OrderBy(t.C("name")).
		Query()
	competitors, err := p.queryEntities(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return &model.Client{Entity: entities[0], Competitors: competitors}, nil
}

// GetEntity 获取客户或竞品，未找到返回 (nil, nil)
func (p *Postgres) GetEntity(ctx context.Context, id string) (*model.Entity, error) {
	b := entsql.Dialect(dialect.Postgres)
	t := b.Table(organizationsTable)
	query, args := b.Select(entityColumns(t)...).From(t).Where(entsql.EQ(t.C("id"), id)).Query()
	entities, err := p.queryEntities(ctx, query, args)
	if err != nil || len(entities) == 0 {
		return nil, err
	}
	return &entities[0], nil
}

func entityColumns(t *entsql.SelectTable) []string {
	return []string{t.C("id"), t.C("name"), t.C("keywords"), t.C("industry_ids")}
}

// overlap Postgres 数组交集运算符 &&
func overlap(col string, values []string) *entsql.Predicate {
	return entsql.P(func(b *entsql.Builder) {
		b.Ident(col).WriteString(" && ").Arg(pq.Array(values))
	})
}

func (p *Postgres) queryEntities(ctx context.Context, query string, args []any) ([]model.Entity, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query organizations: %w", err)
	}
	defer rows.Close()

	var out []model.Entity
	for rows.Next() {
		var e model.Entity
		if err := rows.Scan(&e.ID, &e.Name, pq.Array(&e.Keywords), pq.Array(&e.IndustryIDs)); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
