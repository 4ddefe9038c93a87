// Package metrics 提供报告生成的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "pr_presence"
)

var (
	// ReportsTotal 报告生成次数，status: ok / not_found / failed
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Total number of report generations",
		},
		[]string{"format", "status"},
	)

	// StageDuration 各流水线阶段耗时
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "stage_duration_seconds",
			Help:      "Report pipeline stage duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"stage"},
	)

	// CorpusStories 每次报告选中的报道数
	CorpusStories = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "corpus",
			Name:      "stories",
			Help:      "Number of stories selected per report",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"medium"},
	)

	// DocumentSize 渲染后文档大小
	DocumentSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "document_size_bytes",
			Help:      "Rendered document size in bytes",
			Buckets:   prometheus.ExponentialBuckets(10_000, 4, 7),
		},
		[]string{"format"},
	)

	// SlidesRendered 渲染的幻灯片页数
	SlidesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "slides_total",
			Help:      "Total number of slides rendered",
		},
		[]string{"format"},
	)
)
