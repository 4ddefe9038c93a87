package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/pr_presence/app/presence/internal/conf"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "presence"
	// Version 是服务的版本号
	Version string
	// flagconf 是配置文件的路径命令行参数
	flagconf string
	// flagLevel 服务日志级别
	flagLevel string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/presence/configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagLevel, "level", "info", "service log level: debug, info, warn, error")
}

func main() {
	flag.Parse()
	// 服务日志带上实例信息，报告引擎使用自己的 logrus 日志
	logger := log.NewFilter(
		log.With(log.NewStdLogger(os.Stdout),
			"ts", log.DefaultTimestamp,
			"caller", log.DefaultCaller,
			"service.id", id,
			"service.name", Name,
			"service.version", Version,
		),
		log.FilterLevel(log.ParseLevel(flagLevel)),
	)
	helper := log.NewHelper(logger)

	c := config.New(config.WithSource(file.NewSource(flagconf)))
	defer c.Close()

	if err := c.Load(); err != nil {
		helper.Fatalf("load config %s: %v", flagconf, err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		helper.Fatalf("scan config: %v", err)
	}
	if bc.Reporter == nil {
		helper.Fatal("config: reporter section is required")
	}

	app, cleanup, err := initApp(bc.Server, bc.Data, bc.Reporter, logger)
	if err != nil {
		helper.Fatalf("init app: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		helper.Errorf("app stopped: %v", err)
	}
}
