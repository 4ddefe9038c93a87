// Package reporterr 定义报告流水线的错误分类
package reporterr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind string

const (
	// KindNotFound 未知的客户/实体 ID，调用方应返回 4xx，不重试
	KindNotFound Kind = "NotFound"
	// KindAggregationFailed 语料或目录读取失败，调用方返回 5xx
	KindAggregationFailed Kind = "AggregationFailed"
	// KindIncompleteReportModel 幻灯片引用了不存在的数据集，属于编程契约错误
	KindIncompleteReportModel Kind = "IncompleteReportModel"
)

// Error 带类别的流水线错误
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 构造 NotFound 错误
func NotFound(op, format string, args ...any) error {
	return &Error{Kind: KindNotFound, Op: op, Err: fmt.Errorf(format, args...)}
}

// AggregationFailed 包装存储读取错误
func AggregationFailed(op string, err error) error {
	return &Error{Kind: KindAggregationFailed, Op: op, Err: err}
}

// IncompleteReportModel 构造数据集缺失错误
func IncompleteReportModel(op, format string, args ...any) error {
	return &Error{Kind: KindIncompleteReportModel, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf 返回错误链上第一个 *Error 的类别，没有则返回空
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is 判断错误是否属于指定类别
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
