package storage

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

const fixtureYAML = `
clients:
  - id: acme
    name: Acme Bank
    keywords: [acme, "acme group"]
    industries: [banking]
    competitors: [globex]
entities:
  - id: globex
    name: Globex
    industries: [banking]
organizations:
  - id: globex
    name: Globex
    industries: [banking]
  - id: hooli
    name: Hooli
    industries: [tech]
stories:
  - id: w1
    medium: web
    title: Acme opens branch
    content: "<p>Acme Bank opened   a branch.</p>"
    date: 2026-01-05
    sentiment: Positive
    industry: banking
    authors: [Jane Doe]
    outlet: {id: o1, name: Daily News}
  - id: r1
    medium: radio
    title: Morning show
    content: Globex interview
    date: 2026-02-10T08:00:00Z
    outlet: {id: s1, name: FM 101}
  - id: w2
    medium: web
    title: Old news
    content: Acme
    date: 2025-06-01
`

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture([]byte(fixtureYAML))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	client, err := f.GetClient(ctx, "acme")
	if err != nil || client == nil {
		t.Fatalf("GetClient() = %v, %v", client, err)
	}
	if got := []string{client.Competitors[0].ID}; !cmp.Equal(got, []string{"globex"}) {
		t.Errorf("competitors = %v", got)
	}
	if c, _ := f.GetClient(ctx, "nobody"); c != nil {
		t.Errorf("unknown client = %+v, want nil", c)
	}
	if e, _ := f.GetEntity(ctx, "globex"); e == nil || e.Name != "Globex" {
		t.Errorf("GetEntity(globex) = %+v", e)
	}

	q := corpus.Query{Window: testWindow(t)}
	web, err := f.FetchStories(ctx, model.MediumWeb, q)
	if err != nil {
		t.Fatal(err)
	}
	if len(web) != 1 || web[0].ID != "w1" {
		t.Fatalf("web stories = %+v", web)
	}
	w1 := web[0]
	if w1.Content != "Acme Bank opened a branch." {
		t.Errorf("content = %q", w1.Content)
	}
	if w1.Sentiment == nil || *w1.Sentiment != model.SentimentPositive {
		t.Errorf("sentiment = %v", w1.Sentiment)
	}
	if !w1.CreatedAt.Equal(w1.Date) {
		t.Errorf("created_at should default to date")
	}

	radio, _ := f.FetchStories(ctx, model.MediumRadio, q)
	if len(radio) != 1 || radio[0].Sentiment != nil {
		t.Errorf("radio stories = %+v", radio)
	}
}

func TestFixture_ListOrganizations(t *testing.T) {
	f, err := ParseFixture([]byte(fixtureYAML))
	if err != nil {
		t.Fatal(err)
	}
	ids := func(es []model.Entity) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}
	banking, _ := f.ListOrganizations(context.Background(), []string{"banking"})
	if diff := cmp.Diff([]string{"globex"}, ids(banking)); diff != "" {
		t.Errorf("banking orgs (-want +got):\n%s", diff)
	}
	none, _ := f.ListOrganizations(context.Background(), nil)
	if len(none) != 0 {
		t.Errorf("orgs without industries = %v, want none", ids(none))
	}
}

func TestParseFixture_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown competitor", "clients:\n  - id: a\n    name: A\n    competitors: [ghost]\n"},
		{"unknown medium", "stories:\n  - id: s\n    medium: podcast\n    date: 2026-01-01\n"},
		{"bad date", "stories:\n  - id: s\n    medium: web\n    date: yesterday\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFixture([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
