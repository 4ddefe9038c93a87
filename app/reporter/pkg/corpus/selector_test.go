package corpus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

type fakeProvider struct {
	stories map[model.Medium][]model.Story
	orgs    []model.Entity
	failOn  model.Medium
	calls   atomic.Int32
}

func (f *fakeProvider) FetchStories(ctx context.Context, medium model.Medium, q Query) ([]model.Story, error) {
	f.calls.Add(1)
	if medium == f.failOn {
		return nil, errors.New("storage timeout")
	}
	return f.stories[medium], nil
}

func (f *fakeProvider) ListOrganizations(ctx context.Context, industryIDs []string) ([]model.Entity, error) {
	f.calls.Add(1)
	return f.orgs, nil
}

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func testWindow(t *testing.T) model.DateWindow {
	t.Helper()
	w, err := model.NewDateWindow(day("2026-01-01"), day("2026-03-31"))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestSelector_Select(t *testing.T) {
	p := &fakeProvider{
		stories: map[model.Medium][]model.Story{
			model.MediumWeb: {
				{ID: "w2", Title: "Acme opens plant", Date: day("2026-02-10")},
				{ID: "w1", Title: "Unrelated", Content: "nothing here", Date: day("2026-02-01")},
				{ID: "w3", Title: "Acme too early", Date: day("2025-12-31")},
			},
			model.MediumPrint: {
				{ID: "p1", Title: "Sector outlook", IndustryID: "banking", Date: day("2026-01-05")},
			},
			model.MediumRadio: {
				{ID: "r1", Title: "Morning show", Keywords: "ACME, rates", Date: day("2026-02-10")},
			},
		},
		orgs: []model.Entity{{ID: "o2", Name: "Beta"}, {ID: "o1", Name: "Acme"}, {ID: "o1", Name: "Acme"}},
	}
	sel := NewSelector(p)

	c, err := sel.Select(context.Background(), Query{
		Window:      testWindow(t),
		IndustryIDs: []string{"banking"},
		Keywords:    model.NewKeywordSet("acme"),
	})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := p.calls.Load(); got != 5 {
		t.Errorf("provider calls = %d, want 5", got)
	}

	var ids []string
	for _, st := range c.Stories {
		ids = append(ids, st.ID)
	}
	want := []string{"p1", "w2", "r1"}
	if len(ids) != len(want) {
		t.Fatalf("stories = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("stories[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
	if c.Stories[2].Medium != model.MediumRadio {
		t.Errorf("medium not stamped: %q", c.Stories[2].Medium)
	}
	if len(c.Organizations) != 2 || c.Organizations[0].ID != "o1" {
		t.Errorf("organizations = %+v", c.Organizations)
	}
}

func TestSelector_FailureAbortsWholeSelection(t *testing.T) {
	p := &fakeProvider{failOn: model.MediumTV}
	_, err := NewSelector(p).Select(context.Background(), Query{Window: testWindow(t)})
	if !reporterr.Is(err, reporterr.KindAggregationFailed) {
		t.Fatalf("Select() error = %v, want AggregationFailed", err)
	}
}

func TestMatches(t *testing.T) {
	w := testWindow(t)
	tests := []struct {
		name  string
		story model.Story
		q     Query
		want  bool
	}{
		{
			name:  "summary keyword",
			story: model.Story{Summary: "Statement from ACME", Date: day("2026-01-02")},
			q:     Query{Window: w, Keywords: model.NewKeywordSet("acme")},
			want:  true,
		},
		{
			name:  "industry only",
			story: model.Story{IndustryID: "energy", Date: day("2026-01-02")},
			q:     Query{Window: w, IndustryIDs: []string{"energy"}, Keywords: model.NewKeywordSet("acme")},
			want:  true,
		},
		{
			name:  "no filters keeps window",
			story: model.Story{Date: day("2026-01-02")},
			q:     Query{Window: w},
			want:  true,
		},
		{
			name:  "outside window",
			story: model.Story{Title: "acme", Date: day("2026-04-01")},
			q:     Query{Window: w, Keywords: model.NewKeywordSet("acme")},
			want:  false,
		},
		{
			name:  "no match",
			story: model.Story{Title: "weather", Date: day("2026-01-02")},
			q:     Query{Window: w, Keywords: model.NewKeywordSet("acme")},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.story, tt.q); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
