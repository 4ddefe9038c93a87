package server

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/pr_presence/app/presence/internal/conf"
	"github.com/iWorld-y/pr_presence/app/presence/internal/data"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/catalog"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/config"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/engine"
	prLogger "github.com/iWorld-y/pr_presence/app/reporter/pkg/logger"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/storage"
)

// NewReportEngine 初始化报告引擎
func NewReportEngine(c *conf.Reporter, d *data.Data, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)
	cfg := toConfig(c)

	// 初始化日志
	if err := prLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init reporter logger: %v", err)
		_ = prLogger.InitLogger("info", "") // 降级处理
	}

	// 初始化语料源
	var (
		entities catalog.Provider
		stories  corpus.Provider
	)
	switch {
	case cfg.Corpus.Source == config.SourcePostgres:
		if d.DB() == nil {
			return nil, nil, fmt.Errorf("corpus source %q requires data.database", config.SourcePostgres)
		}
		pg := storage.NewPostgres(d.DB())
		entities, stories = pg, pg
	default:
		f, err := storage.LoadFixture(cfg.Corpus.Fixture)
		if err != nil {
			helper.Errorf("Failed to load fixture corpus: %v", err)
			return nil, nil, err
		}
		entities, stories = f, f
	}

	// 初始化核心引擎
	eng, err := engine.NewEngine(cfg, entities, stories)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up report engine")
	}
	return eng, cleanup, nil
}

// toConfig 将 internal/conf.Reporter 转换为 pkg/config.Config
func toConfig(c *conf.Reporter) *config.Config {
	cfg := &config.Config{Corpus: config.CorpusConfig{Source: config.SourceFile}}
	if c == nil {
		return cfg
	}
	if r := c.Report; r != nil {
		cfg.Report = config.ReportConfig{
			Themes:          int(r.Themes),
			OutletSamples:   int(r.OutletSamples),
			MajorStories:    int(r.MajorStories),
			Journalists:     int(r.Journalists),
			SynopsisRunes:   int(r.SynopsisRunes),
			TakeoutsPerPage: int(r.TakeoutsPerPage),
			Palette:         r.Palette,
			LogoPath:        r.LogoPath,
			PDFFont:         r.PdfFont,
			PDFFontBold:     r.PdfFontBold,
		}
	}
	if c.Corpus != nil {
		if c.Corpus.Source != "" {
			cfg.Corpus.Source = c.Corpus.Source
		}
		cfg.Corpus.Fixture = c.Corpus.Fixture
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{QPS: int(c.Concurrency.Qps), RPM: int(c.Concurrency.Rpm)}
	}
	return cfg
}
