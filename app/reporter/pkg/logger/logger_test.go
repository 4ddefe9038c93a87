package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestCustomFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "聚合完成",
		Data:    logrus.Fields{"stage": "aggregate", "client": "acme"},
	}
	out, err := (&CustomFormatter{}).Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	want := "[2026-03-01 08:30:00] [WARN] [] 聚合完成 client=acme stage=aggregate\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	if Log == nil {
		t.Fatal("Log must be initialised before InitLogger")
	}
	if !strings.EqualFold(Log.GetLevel().String(), "info") {
		t.Errorf("default level = %s", Log.GetLevel())
	}
}
