package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

func testWindow(t *testing.T) model.DateWindow {
	t.Helper()
	w, err := model.NewDateWindow(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestStoriesQuery(t *testing.T) {
	tests := []struct {
		name     string
		medium   model.Medium
		q        corpus.Query
		contains []string
		args     int
	}{
		{
			name:     "web joins media outlets",
			medium:   model.MediumWeb,
			q:        corpus.Query{},
			contains: []string{`FROM "web_stories"`, `LEFT JOIN "media_outlets"`, `"web_stories"."authors"`},
			args:     2,
		},
		{
			name:     "radio joins stations and reads presenters",
			medium:   model.MediumRadio,
			q:        corpus.Query{IndustryIDs: []string{"banking"}},
			contains: []string{`FROM "radio_stories"`, `LEFT JOIN "stations"`, `"radio_stories"."presenters"`, " IN "},
			args:     3,
		},
		{
			name:     "keywords widen recall over title content summary and keywords",
			medium:   model.MediumTV,
			q:        corpus.Query{IndustryIDs: []string{"banking", "fintech"}, Keywords: model.NewKeywordSet("acme", "globex")},
			contains: []string{`FROM "tv_stories"`, `"tv_stories"."summary" ILIKE`, `"tv_stories"."content" ILIKE`, " OR "},
			args:     2 + 2 + 2*4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.q.Window = testWindow(t)
			query, args, err := storiesQuery(tt.medium, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(query, want) {
					t.Errorf("query missing %q:\n%s", want, query)
				}
			}
			if len(args) != tt.args {
				t.Errorf("len(args) = %d, want %d (%s)", len(args), tt.args, query)
			}
			if !strings.Contains(query, "$1") || strings.Contains(query, "?") {
				t.Errorf("expected postgres placeholders: %s", query)
			}
		})
	}
}

func TestStoriesQuery_UnknownMedium(t *testing.T) {
	if _, _, err := storiesQuery("podcast", corpus.Query{}); err == nil {
		t.Error("expected error for unknown medium")
	}
}

func TestPostgres_ListOrganizationsWithoutIndustries(t *testing.T) {
	// 行业为空时直接返回，不访问数据库
	orgs, err := NewPostgres(nil).ListOrganizations(context.Background(), nil)
	if err != nil || len(orgs) != 0 {
		t.Errorf("ListOrganizations(nil) = %v, %v, want no peers", orgs, err)
	}
}
