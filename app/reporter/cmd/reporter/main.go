package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/catalog"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/config"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/corpus"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/engine"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/export"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/logger"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/storage"
)

var (
	flagConf   string
	flagClient string
	flagRange  string
	flagStart  string
	flagEnd    string
	flagFormat string
	flagOut    string
)

func init() {
	flag.StringVar(&flagConf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagClient, "client", "", "client id")
	flag.StringVar(&flagRange, "range", "90d", "preset date range: 7d, 30d, 90d or 12m")
	flag.StringVar(&flagStart, "start", "", "custom range start (YYYY-MM-DD), overrides -range")
	flag.StringVar(&flagEnd, "end", "", "custom range end (YYYY-MM-DD)")
	flag.StringVar(&flagFormat, "format", "pptx", "output format: pptx or pdf")
	flag.StringVar(&flagOut, "out", ".", "output directory")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}

// run 返回前释放语料源和信号监听
func run() error {
	// 1. 加载配置
	cfg, err := config.LoadConfig(flagConf)
	if err != nil {
		return fmt.Errorf("无法加载配置文件: %w", err)
	}
	if flagClient == "" {
		return errors.New("参数错误: 未指定客户 (-client)")
	}
	format, err := render.ParseFormat(flagFormat)
	if err != nil {
		return fmt.Errorf("参数错误: %w", err)
	}
	window, err := resolveWindow(time.Now())
	if err != nil {
		return fmt.Errorf("参数错误: %w", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("无法初始化日志: %w", err)
	}
	logger.Log.Info("启动 PR Presence 报告生成...")

	// 3. 初始化语料源
	entities, stories, cleanup, err := openProviders(cfg)
	if err != nil {
		return fmt.Errorf("无法初始化语料源: %w", err)
	}
	defer cleanup()

	e, err := engine.NewEngine(cfg, entities, stories)
	if err != nil {
		return fmt.Errorf("引擎初始化失败: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// 4. 生成报告
	payload, err := e.Run(ctx, engine.RunOptions{
		ClientID: flagClient,
		Window:   window,
		Format:   format,
		ProgressCallback: func(status string, progress int) {
			logger.Log.Debugf("进度 %3d%% %s", progress, status)
		},
	})
	if err != nil {
		return fmt.Errorf("报告生成失败: %w", err)
	}

	// 5. 写入文件
	data, err := export.Decode(*payload)
	if err != nil {
		return fmt.Errorf("解码报告失败: %w", err)
	}
	path := filepath.Join(flagOut, payload.Filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入报告失败: %w", err)
	}
	logger.Log.Infof("报告已保存至 %s", path)
	return nil
}

func resolveWindow(now time.Time) (model.DateWindow, error) {
	if flagStart == "" {
		return model.WindowFromPreset(flagRange, now)
	}
	start, err := time.Parse(time.DateOnly, flagStart)
	if err != nil {
		return model.DateWindow{}, err
	}
	end := now
	if flagEnd != "" {
		if end, err = time.Parse(time.DateOnly, flagEnd); err != nil {
			return model.DateWindow{}, err
		}
	}
	return model.NewDateWindow(start, end)
}

var openProviders = func(cfg *config.Config) (catalog.Provider, corpus.Provider, func(), error) {
	if cfg.Corpus.Source == config.SourcePostgres {
		db, cleanup, err := storage.OpenPostgres(cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		pg := storage.NewPostgres(db)
		logger.Log.Info("已成功连接到数据库")
		return pg, pg, cleanup, nil
	}
	f, err := storage.LoadFixture(cfg.Corpus.Fixture)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Log.Infof("使用样例语料 %s", cfg.Corpus.Fixture)
	return f, f, func() {}, nil
}
