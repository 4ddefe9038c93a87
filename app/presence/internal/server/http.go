package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iWorld-y/pr_presence/app/presence/internal/conf"
	"github.com/iWorld-y/pr_presence/app/presence/internal/domain"
	"github.com/iWorld-y/pr_presence/app/presence/internal/service"
)

const (
	OperationReportAnalytics = "/presence.v1.Report/Analytics"
	OperationReportExport    = "/presence.v1.Report/Export"
)

// RequestIDHeader 每个请求分配的追踪 ID
const RequestIDHeader = "X-Request-Id"

func NewHTTPServer(c *conf.Server, s *service.ReportService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			requestID(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	RegisterReportHTTPServer(srv, s)
	srv.Handle("/metrics", promhttp.Handler())
	return srv
}

// requestID 为请求分配 ID 并写回响应头
func requestID() middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			if tr, ok := transport.FromServerContext(ctx); ok {
				id := tr.RequestHeader().Get(RequestIDHeader)
				if id == "" {
					id = uuid.NewString()
				}
				tr.ReplyHeader().Set(RequestIDHeader, id)
			}
			return handler(ctx, req)
		}
	}
}

// RegisterReportHTTPServer 注册报告接口路由
func RegisterReportHTTPServer(s *http.Server, srv *service.ReportService) {
	r := s.Route("/")
	r.POST("/v1/reports/analytics", reportAnalyticsHandler(srv))
	r.POST("/v1/reports/export/{format}", reportExportHandler(srv))
}

func reportAnalyticsHandler(srv *service.ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.ReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationReportAnalytics)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Analytics(ctx, req.(*domain.ReportRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}

func reportExportHandler(srv *service.ReportService) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.ReportRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		format := ctx.Vars().Get("format")
		http.SetOperation(ctx, OperationReportExport)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Export(ctx, req.(*domain.ReportRequest), format)
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out)
	}
}
