package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/pr_presence/app/presence/internal/domain"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/engine"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/export"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// mockReportEngine 模拟报告引擎
type mockReportEngine struct {
	window model.DateWindow
	opts   engine.RunOptions
}

func (m *mockReportEngine) Analyze(ctx context.Context, clientID string, window model.DateWindow) (*report.Model, error) {
	m.window = window
	return &report.Model{Client: report.ClientInfo{ID: clientID}}, nil
}

func (m *mockReportEngine) Run(ctx context.Context, opts engine.RunOptions) (*export.Payload, error) {
	m.opts = opts
	p := export.Package([]byte("doc"), "Acme", opts.Window.Label(), opts.Format.Ext())
	return &p, nil
}

func newTestUseCase(e *mockReportEngine) *ReportUseCase {
	uc := NewReportUseCase(e, log.DefaultLogger)
	uc.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	return uc
}

func TestReportUseCase_Export(t *testing.T) {
	e := &mockReportEngine{}
	uc := newTestUseCase(e)

	req := &domain.ReportRequest{ClientID: "acme", DateRange: domain.DateRange{StartDate: "2026-01-01", EndDate: "2026-03-31"}}
	reply, err := uc.Export(context.Background(), req, "pdf")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if e.opts.ClientID != "acme" || e.opts.Format != render.FormatPDF {
		t.Errorf("RunOptions = %+v", e.opts)
	}
	if want := "Acme_PR_Presence_01_Jan_2026_-_31_Mar_2026.pdf"; reply.Filename != want {
		t.Errorf("Filename = %q, want %q", reply.Filename, want)
	}
}

func TestReportUseCase_ExportRejectsBadInput(t *testing.T) {
	uc := newTestUseCase(&mockReportEngine{})
	tests := []struct {
		name   string
		req    *domain.ReportRequest
		format string
	}{
		{"unknown format", &domain.ReportRequest{ClientID: "acme"}, "docx"},
		{"bad preset", &domain.ReportRequest{ClientID: "acme", DateRange: domain.DateRange{Preset: "1y"}}, "pptx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Export(context.Background(), tt.req, tt.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReportUseCase_Analyze(t *testing.T) {
	e := &mockReportEngine{}
	uc := newTestUseCase(e)

	m, err := uc.Analyze(context.Background(), &domain.ReportRequest{ClientID: "acme", DateRange: domain.DateRange{Preset: "30d"}})
	if err != nil {
		t.Fatal(err)
	}
	if m.Client.ID != "acme" {
		t.Errorf("client = %q", m.Client.ID)
	}
	if want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC); !e.window.Start.Equal(want) {
		t.Errorf("window start = %v, want %v", e.window.Start, want)
	}
}
