package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

type mockProvider struct {
	entities map[string]model.Entity
	err      error
}

func (m *mockProvider) GetClient(ctx context.Context, id string) (*model.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entities[id]
	if !ok {
		return nil, nil
	}
	return &model.Client{Entity: e}, nil
}

func (m *mockProvider) GetEntity(ctx context.Context, id string) (*model.Entity, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entities[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func TestIndex_KeywordSet(t *testing.T) {
	idx := NewIndex(&mockProvider{entities: map[string]model.Entity{
		"c1": {ID: "c1", Name: "Safaricom", Keywords: []string{"M-Pesa", "safaricom", " Bonga "}},
	}})

	got, err := idx.KeywordSet(context.Background(), "c1")
	if err != nil {
		t.Fatalf("KeywordSet() error = %v", err)
	}
	want := model.KeywordSet{"bonga", "m-pesa", "safaricom"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("KeywordSet() mismatch (-want +got):\n%s", diff)
	}
}

func TestIndex_UnknownEntity(t *testing.T) {
	idx := NewIndex(&mockProvider{entities: map[string]model.Entity{}})

	if _, err := idx.KeywordSet(context.Background(), "missing"); !reporterr.Is(err, reporterr.KindNotFound) {
		t.Errorf("KeywordSet() error = %v, want NotFound", err)
	}
	if _, err := idx.Client(context.Background(), "missing"); !reporterr.Is(err, reporterr.KindNotFound) {
		t.Errorf("Client() error = %v, want NotFound", err)
	}
}

func TestIndex_ProviderFailure(t *testing.T) {
	idx := NewIndex(&mockProvider{err: errors.New("connection reset")})

	if _, err := idx.Client(context.Background(), "c1"); !reporterr.Is(err, reporterr.KindAggregationFailed) {
		t.Errorf("Client() error = %v, want AggregationFailed", err)
	}
}
