package repo

import (
	"context"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/engine"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/export"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
	"github.com/iWorld-y/pr_presence/app/reporter/pkg/report"
)

// ReportEngine 报告生成引擎接口
type ReportEngine interface {
	// Analyze 计算报告模型，不渲染
	Analyze(ctx context.Context, clientID string, window model.DateWindow) (*report.Model, error)
	// Run 生成并打包报告文档
	Run(ctx context.Context, opts engine.RunOptions) (*export.Payload, error)
}
