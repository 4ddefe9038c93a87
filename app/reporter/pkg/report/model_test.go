package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/analytics"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

func testWindow(t *testing.T) model.DateWindow {
	t.Helper()
	w, err := model.NewDateWindow(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func testClient() model.Client {
	return model.Client{
		Entity: model.Entity{ID: "acme", Name: "Acme"},
		Competitors: []model.Entity{
			{ID: "globex", Name: "Globex"},
			{ID: "initech", Name: "Initech"},
		},
	}
}

func buildModel(t *testing.T, stories []model.Story) *Model {
	t.Helper()
	w := testWindow(t)
	client := testClient()
	res := analytics.Aggregate(&corpus.Corpus{Stories: stories}, client, w, analytics.DefaultLimits())
	m, err := Build(Input{Client: client, Window: w, GeneratedAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), Result: res})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

func TestBuild_RegistersRequiredDatasets(t *testing.T) {
	m := buildModel(t, []model.Story{
		{ID: "1", Medium: model.MediumWeb, Title: "Acme expands", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Outlet: model.Outlet{ID: "o1", Name: "Daily"}},
		{ID: "2", Medium: model.MediumPrint, Title: "Globex and Acme", Date: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), Outlet: model.Outlet{ID: "o2", Name: "Herald"}},
	})

	for _, k := range RequiredKeys {
		if !m.Has(k) {
			t.Errorf("dataset %q missing", k)
		}
	}
	if !m.Has(CompetitorStoriesKey("globex")) {
		t.Errorf("competitor with matches should have a stories table")
	}
	if m.Has(CompetitorStoriesKey("initech")) {
		t.Errorf("competitor without matches should not have a stories table")
	}
}

func TestBuild_TrendSeriesFollowMediaOrder(t *testing.T) {
	m := buildModel(t, []model.Story{
		{ID: "1", Medium: model.MediumTV, Title: "Acme", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	})
	d, ok := m.Dataset(KeyMonthlyTrend)
	if !ok {
		t.Fatal("trend dataset missing")
	}
	if diff := cmp.Diff([]string{"Jan 2026", "Feb 2026", "Mar 2026"}, d.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	var names []string
	for _, s := range d.Series {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"Web", "Print", "Radio", "TV"}, names); diff != "" {
		t.Errorf("series order mismatch (-want +got):\n%s", diff)
	}
	if got := d.Series[3].Values; got[2] != 1 {
		t.Errorf("TV March = %v, want 1", got[2])
	}
}

func TestBuild_EmptyCorpusDatasetsAreEmpty(t *testing.T) {
	m := buildModel(t, nil)
	for _, k := range []string{KeyMediaDistribution, KeyMonthlyTrend, KeyThemes, KeyJournalists, KeyCompetitorShare, KeySentiment, KeyClientStories} {
		d, _ := m.Dataset(k)
		if !d.Empty() {
			t.Errorf("dataset %q should be empty for an empty corpus", k)
		}
	}
	takeouts, _ := m.Dataset(KeyTakeouts)
	if takeouts.Empty() {
		t.Error("takeouts always carry fallback sentences")
	}
}

func TestBuild_NilResult(t *testing.T) {
	_, err := Build(Input{Client: testClient(), Window: testWindow(t)})
	if !reporterr.Is(err, reporterr.KindIncompleteReportModel) {
		t.Fatalf("Build(nil result) error = %v, want IncompleteReportModel", err)
	}
}

func TestModel_Has(t *testing.T) {
	m := buildModel(t, nil)
	if !m.Has(KeyThemes) {
		t.Errorf("Has(%q) = false on an empty corpus", KeyThemes)
	}
	if m.Has("does.not.exist") {
		t.Error("Has() reported an unregistered key")
	}
	if _, ok := m.Dataset("does.not.exist"); ok {
		t.Error("Dataset() returned an unregistered key")
	}
}

func TestDataset_Empty(t *testing.T) {
	tests := []struct {
		name string
		d    Dataset
		want bool
	}{
		{"no labels", Dataset{Kind: KindSeries}, true},
		{"all zero", Dataset{Kind: KindSeries, Labels: []string{"a"}, Series: []Series{{Values: []float64{0}}}}, true},
		{"non zero", Dataset{Kind: KindSeries, Labels: []string{"a"}, Series: []Series{{Values: []float64{2}}}}, false},
		{"table rows", Dataset{Kind: KindTable, Rows: [][]string{{"x"}}}, false},
		{"text", Dataset{Kind: KindText}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
