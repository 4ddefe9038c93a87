package usecase

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/pr_presence/app/presence/internal/domain"
	"github.com/iWorld-y/pr_presence/app/presence/internal/repo"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/engine"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// ReportUseCase 报告业务逻辑
type ReportUseCase struct {
	engine repo.ReportEngine
	now    func() time.Time
	log    *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例
func NewReportUseCase(eng repo.ReportEngine, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{engine: eng, now: time.Now, log: log.NewHelper(logger)}
}

// Analyze 返回报告模型，供交互式编辑器使用
func (uc *ReportUseCase) Analyze(ctx context.Context, req *domain.ReportRequest) (*report.Model, error) {
	window, err := req.DateRange.Window(uc.now())
	if err != nil {
		return nil, err
	}
	return uc.engine.Analyze(ctx, req.ClientID, window)
}

// Export 生成指定格式的报告文档
func (uc *ReportUseCase) Export(ctx context.Context, req *domain.ReportRequest, format string) (*domain.ExportReply, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	window, err := req.DateRange.Window(uc.now())
	if err != nil {
		return nil, err
	}
	payload, err := uc.engine.Run(ctx, engine.RunOptions{
		ClientID: req.ClientID,
		Window:   window,
		Format:   f,
		ProgressCallback: func(status string, progress int) {
			uc.log.WithContext(ctx).Debugw("client", req.ClientID, "status", status, "progress", progress)
		},
	})
	if err != nil {
		return nil, err
	}
	return &domain.ExportReply{Data: payload.Data, Filename: payload.Filename}, nil
}
