// Package export 把渲染结果打包为 base64 负载和文件名
package export

import (
	"encoding/base64"
	"strings"
	"unicode"
)

// ReportKind 报告类型，出现在文件名中
const ReportKind = "PR Presence"

// Payload 导出结果
type Payload struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
}

// Package 编码文档并生成 {clientName}_{ReportKind}_{dateRangeLabel}.{ext}，空白替换为下划线。
// data 不会被修改。
func Package(data []byte, clientName, windowLabel, ext string) Payload {
	return Payload{
		Data:     base64.StdEncoding.EncodeToString(data),
		Filename: Filename(clientName, windowLabel, ext),
	}
}

// Filename 生成文件名
func Filename(clientName, windowLabel, ext string) string {
	name := strings.Join([]string{clientName, ReportKind, windowLabel}, "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case r == '/' || r == '\\':
			return '-'
		}
		return r
	}, name)
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}
	return name
}

// Decode 还原文档字节
func Decode(p Payload) ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Data)
}
