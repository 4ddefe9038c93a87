package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/pr_presence/app/reporter/pkg/model"
)

// ErrInvalidDateRange 时间范围无法解析
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange 预设范围（7d/30d/90d/12m）或自定义起止日期
type DateRange struct {
	Preset    string `json:"-"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// UnmarshalJSON 接受字符串预设或 {startDate, endDate} 对象
func (d *DateRange) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		*d = DateRange{}
		return json.Unmarshal(b, &d.Preset)
	}
	var custom struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.Unmarshal(b, &custom); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	*d = DateRange{StartDate: custom.StartDate, EndDate: custom.EndDate}
	return nil
}

// MarshalJSON 与 UnmarshalJSON 对称
func (d DateRange) MarshalJSON() ([]byte, error) {
	if d.Preset != "" {
		return json.Marshal(d.Preset)
	}
	type plain DateRange
	return json.Marshal(plain(d))
}

// Window 以 now 为基准解析时间窗口
func (d DateRange) Window(now time.Time) (model.DateWindow, error) {
	if d.StartDate == "" && d.EndDate == "" {
		preset := d.Preset
		if preset == "" {
			preset = "90d"
		}
		w, err := model.WindowFromPreset(preset, now)
		if err != nil {
			return model.DateWindow{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
		return w, nil
	}
	start, err := time.Parse(time.DateOnly, d.StartDate)
	if err != nil {
		return model.DateWindow{}, fmt.Errorf("%w: startDate %q", ErrInvalidDateRange, d.StartDate)
	}
	end, err := time.Parse(time.DateOnly, d.EndDate)
	if err != nil {
		return model.DateWindow{}, fmt.Errorf("%w: endDate %q", ErrInvalidDateRange, d.EndDate)
	}
	w, err := model.NewDateWindow(start, end)
	if err != nil {
		return model.DateWindow{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	return w, nil
}

// ReportRequest 报告请求
type ReportRequest struct {
	ClientID  string    `json:"clientId"`
	DateRange DateRange `json:"dateRange"`
}

// ExportReply 导出结果
type ExportReply struct {
	Data     string `json:"data"`
	Filename string `json:"filename"`
}
