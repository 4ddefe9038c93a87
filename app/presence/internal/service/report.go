package service

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/pr_presence/app/presence/internal/domain"
	"github.com/iWorld-y/pr_presence/app/presence/internal/usecase"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/render"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/reporterr"
)

// ReportService 报告接口
type ReportService struct {
	uc  *usecase.ReportUseCase
	log *log.Helper
}

// NewReportService 创建报告服务
func NewReportService(uc *usecase.ReportUseCase, logger log.Logger) *ReportService {
	return &ReportService{uc: uc, log: log.NewHelper(logger)}
}

// Analytics 返回报告模型 JSON
func (s *ReportService) Analytics(ctx context.Context, req *domain.ReportRequest) (*report.Model, error) {
	m, err := s.uc.Analyze(ctx, req)
	if err != nil {
		return nil, s.mapError(ctx, "analytics", req, err)
	}
	return m, nil
}

// Export 返回 base64 文档与文件名
func (s *ReportService) Export(ctx context.Context, req *domain.ReportRequest, format string) (*domain.ExportReply, error) {
	reply, err := s.uc.Export(ctx, req, format)
	if err != nil {
		return nil, s.mapError(ctx, "export", req, err)
	}
	return reply, nil
}

// mapError 对外只暴露通用错误，结构化的错误类型保留在日志中
func (s *ReportService) mapError(ctx context.Context, op string, req *domain.ReportRequest, err error) error {
	kind := reporterr.KindOf(err)
	s.log.WithContext(ctx).Errorw("op", op, "client", req.ClientID, "kind", kind, "error", err)

	switch {
	case req.ClientID == "":
		return errors.BadRequest("CLIENT_ID_REQUIRED", "clientId is required")
	case kind == reporterr.KindNotFound:
		return errors.NotFound("CLIENT_NOT_FOUND", err.Error())
	case stderrors.Is(err, domain.ErrInvalidDateRange):
		return errors.BadRequest("INVALID_DATE_RANGE", err.Error())
	case stderrors.Is(err, render.ErrUnknownFormat):
		return errors.BadRequest("UNSUPPORTED_FORMAT", err.Error())
	default:
		return errors.InternalServer("EXPORT_FAILED", "export failed")
	}
}
