package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/analytics"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/catalog"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/config"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/deck"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/export"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/logger"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/metrics"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render/pdf"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render/pptx"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

var tracer = otel.Tracer("reporter")

// Engine 核心处理引擎：目录 → 语料 → 聚合 → 模型 → 幻灯片 → 渲染 → 打包
type Engine struct {
	index     *catalog.Index
	selector  *corpus.Selector
	limits    analytics.Limits
	deckOpts  deck.Options
	renderers map[render.Format]render.Renderer
	limiter   *rate.Limiter
	now       func() time.Time
}

// Option 引擎可选项
type Option func(*Engine)

// WithClock 替换时钟，GeneratedAt 取自该时钟
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRenderer 注册或替换某一格式的渲染器
func WithRenderer(r render.Renderer) Option {
	return func(e *Engine) { e.renderers[r.Format()] = r }
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config, entities catalog.Provider, stories corpus.Provider, opts ...Option) (*Engine, error) {
	palette := render.DefaultPalette
	if len(cfg.Report.Palette) > 0 {
		p, err := render.NewPalette(cfg.Report.Palette...)
		if err != nil {
			return nil, fmt.Errorf("调色板配置无效: %w", err)
		}
		palette = p
	}

	deckOpts := deck.Options{TakeoutsPerPage: cfg.Report.TakeoutsPerPage}
	if cfg.Report.LogoPath != "" {
		logo, err := os.ReadFile(cfg.Report.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("读取 Logo 失败: %w", err)
		}
		deckOpts.Logo = logo
		deckOpts.LogoFormat = strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.Report.LogoPath)), ".")
	}

	var pdfOpts []pdf.Option
	if cfg.Report.PDFFont != "" {
		regular, err := os.ReadFile(cfg.Report.PDFFont)
		if err != nil {
			return nil, fmt.Errorf("读取 PDF 字体失败: %w", err)
		}
		var bold []byte
		if cfg.Report.PDFFontBold != "" {
			if bold, err = os.ReadFile(cfg.Report.PDFFontBold); err != nil {
				return nil, fmt.Errorf("读取 PDF 粗体字体失败: %w", err)
			}
		}
		pdfOpts = append(pdfOpts, pdf.WithFonts(regular, bold))
	}

	// 初始化限流器，未配置 RPM 时不限流
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Concurrency.RPM > 0 {
		burst := cfg.Concurrency.QPS
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.Concurrency.RPM)/60.0), burst)
	}

	e := &Engine{
		index:    catalog.NewIndex(entities),
		selector: corpus.NewSelector(stories),
		limits: analytics.Limits{
			Themes:        cfg.Report.Themes,
			OutletSamples: cfg.Report.OutletSamples,
			MajorStories:  cfg.Report.MajorStories,
			Journalists:   cfg.Report.Journalists,
			SynopsisRunes: cfg.Report.SynopsisRunes,
		},
		deckOpts: deckOpts,
		renderers: map[render.Format]render.Renderer{
			render.FormatPDF:  pdf.New(palette, pdfOpts...),
			render.FormatPPTX: pptx.New(palette),
		},
		limiter: limiter,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RunOptions 运行选项
type RunOptions struct {
	ClientID         string
	Window           model.DateWindow
	Format           render.Format
	ProgressCallback func(status string, progress int)
}

func (o RunOptions) progress(status string, progress int) {
	if o.ProgressCallback != nil {
		o.ProgressCallback(status, progress)
	}
}

// Run 执行一次报告生成任务，返回 base64 文档和文件名
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*export.Payload, error) {
	ctx, span := tracer.Start(ctx, "report.Run", trace.WithAttributes(
		attribute.String("client.id", opts.ClientID),
		attribute.String("report.format", string(opts.Format)),
	))
	defer span.End()

	payload, err := e.run(ctx, opts)
	metrics.ReportsTotal.WithLabelValues(string(opts.Format), status(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.Errorf("客户 [%s] 报告生成失败: %v", opts.ClientID, err)
		return nil, err
	}
	return payload, nil
}

func (e *Engine) run(ctx context.Context, opts RunOptions) (*export.Payload, error) {
	renderer, ok := e.renderers[opts.Format]
	if !ok {
		return nil, fmt.Errorf("%w %q", render.ErrUnknownFormat, opts.Format)
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	logger.Log.Infof("开始为客户 [%s] 生成 %s 报告，时间窗口 %s", opts.ClientID, opts.Format, opts.Window.Label())
	opts.progress("starting", 0)

	m, err := e.analyze(ctx, opts)
	if err != nil {
		return nil, err
	}

	var d *deck.Deck
	err = e.stage(ctx, "compile", func(context.Context) error {
		var err error
		d, err = deck.Compile(m, e.deckOpts)
		return err
	})
	if err != nil {
		return nil, err
	}
	opts.progress("compiled deck", 75)

	var doc []byte
	err = e.stage(ctx, "render", func(ctx context.Context) error {
		var err error
		doc, err = renderer.Render(ctx, d, m)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	metrics.DocumentSize.WithLabelValues(string(opts.Format)).Observe(float64(len(doc)))
	metrics.SlidesRendered.WithLabelValues(string(opts.Format)).Add(float64(len(d.Slides)))
	opts.progress("rendered document", 90)

	payload := export.Package(doc, m.Client.Name, m.WindowLabel, opts.Format.Ext())
	logger.Log.WithField("slides", len(d.Slides)).WithField("bytes", len(doc)).
		Infof("客户 [%s] 报告生成完成: %s", opts.ClientID, payload.Filename)
	opts.progress("completed", 100)
	return &payload, nil
}

// Analyze 只执行到报告模型为止，供分析接口使用
func (e *Engine) Analyze(ctx context.Context, clientID string, window model.DateWindow) (*report.Model, error) {
	ctx, span := tracer.Start(ctx, "report.Analyze", trace.WithAttributes(attribute.String("client.id", clientID)))
	defer span.End()

	m, err := e.analyze(ctx, RunOptions{ClientID: clientID, Window: window})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return m, nil
}

func (e *Engine) analyze(ctx context.Context, opts RunOptions) (*report.Model, error) {
	var (
		client *model.Client
		query  corpus.Query
	)
	err := e.stage(ctx, "catalog", func(ctx context.Context) error {
		var err error
		client, err = e.index.Client(ctx, opts.ClientID)
		if err != nil {
			return err
		}
		keywords, err := e.index.KeywordSet(ctx, client.ID)
		if err != nil {
			return err
		}
		sets := []model.KeywordSet{keywords}
		for _, c := range client.Competitors {
			sets = append(sets, catalog.NewKeywordSet(c))
		}
		query = corpus.Query{Window: opts.Window, IndustryIDs: client.IndustryIDs, Keywords: model.Union(sets...)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	opts.progress("resolved client", 10)

	var c *corpus.Corpus
	err = e.stage(ctx, "corpus", func(ctx context.Context) error {
		var err error
		c, err = e.selector.Select(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	observeCorpus(c)
	logger.Log.Debugf("客户 [%s] 选中 %d 条报道，%d 个同行业机构", client.ID, len(c.Stories), len(c.Organizations))
	opts.progress("selected corpus", 30)

	var result *analytics.Result
	err = e.stage(ctx, "aggregate", func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result = analytics.Aggregate(c, *client, opts.Window, e.limits)
		return nil
	})
	if err != nil {
		return nil, err
	}
	opts.progress("aggregated metrics", 60)

	var m *report.Model
	err = e.stage(ctx, "model", func(context.Context) error {
		var err error
		m, err = report.Build(report.Input{
			Client:      *client,
			Window:      opts.Window,
			GeneratedAt: e.now(),
			Result:      result,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// stage 为流水线阶段记录 span 和耗时
func (e *Engine) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracer.Start(ctx, "report.stage."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func observeCorpus(c *corpus.Corpus) {
	counts := make(map[model.Medium]int, len(model.Media))
	for _, st := range c.Stories {
		counts[st.Medium]++
	}
	for _, m := range model.Media {
		metrics.CorpusStories.WithLabelValues(string(m)).Observe(float64(counts[m]))
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case reporterr.Is(err, reporterr.KindNotFound):
		return "not_found"
	default:
		return "failed"
	}
}
