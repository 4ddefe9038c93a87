package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
report:
  themes: 20
  takeouts_per_page: 4
  palette: ["2E75B6", "ED7D31"]
corpus:
  source: postgres
db:
  host: localhost
  port: 5432
  user: presence
  password: secret
  name: monitoring
log:
  level: debug
concurrency:
  qps: 2
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Report.Themes != 20 || len(cfg.Report.Palette) != 2 || cfg.Concurrency.QPS != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	want := "host=localhost port=5432 user=presence password=secret dbname=monitoring sslmode=disable"
	if got := cfg.DB.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestParse_CorpusSource(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    string
		wantErr bool
	}{
		{"default to file", "corpus:\n  fixture: stories.yaml\n", SourceFile, false},
		{"file without fixture", "corpus:\n  source: file\n", "", true},
		{"unknown source", "corpus:\n  source: kafka\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Corpus.Source != tt.want {
				t.Errorf("source = %q, want %q", cfg.Corpus.Source, tt.want)
			}
		})
	}
}
