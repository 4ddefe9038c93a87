package model

import (
	"fmt"
	"time"
)

// DateWindow 报告时间窗口，首尾均包含
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateWindow 以自然日为粒度构建窗口：Start 取当天零点，End 取当天最后一刻
func NewDateWindow(start, end time.Time) (DateWindow, error) {
	s := truncateDay(start)
	e := truncateDay(end).Add(24*time.Hour - time.Nanosecond)
	if e.Before(s) {
		return DateWindow{}, fmt.Errorf("invalid date window: %s is after %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return DateWindow{Start: s, End: e}, nil
}

// Contains 判断时间点是否落在窗口内
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Months 枚举窗口覆盖的所有自然月（每月第一天），按时间顺序
func (w DateWindow) Months() []time.Time {
	first := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, w.Start.Location())
	last := time.Date(w.End.Year(), w.End.Month(), 1, 0, 0, 0, 0, w.Start.Location())
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// Label 窗口的展示文本
func (w DateWindow) Label() string {
	return w.Start.Format("02 Jan 2006") + " - " + w.End.Format("02 Jan 2006")
}

// MonthKey 月份桶的键
func MonthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowFromPreset 解析预设时间范围（7d/30d/90d/12m），以 now 为窗口终点
func WindowFromPreset(preset string, now time.Time) (DateWindow, error) {
	var start time.Time
	switch preset {
	case "7d":
		start = now.AddDate(0, 0, -7)
	case "30d":
		start = now.AddDate(0, 0, -30)
	case "90d":
		start = now.AddDate(0, 0, -90)
	case "12m":
		start = now.AddDate(0, -12, 0)
	default:
		return DateWindow{}, fmt.Errorf("unknown date range preset %q", preset)
	}
	return NewDateWindow(start, now)
}
