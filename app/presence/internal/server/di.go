package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/pr_presence/app/presence/internal/data"
	"github.com/iWorld-y/pr_presence/app/presence/internal/repo"
	"github.com/iWorld-y/pr_presence/app/presence/internal/service"
	"github.com/iWorld-y/pr_presence/app/presence/internal/usecase"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/engine"
)

// ProviderSet 是报告服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	NewReportEngine,
	wire.Bind(new(repo.ReportEngine), new(*engine.Engine)),

	// UseCase providers
	usecase.NewReportUseCase,

	// Service providers
	service.NewReportService,
)
