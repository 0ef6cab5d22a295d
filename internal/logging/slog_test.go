package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "cache-hit", "query", "getEmployees")
	log.Info(ctx, "loaded", "count", 2)
	log.Warn(ctx, "stale", "age", "5s")
	log.Error(ctx, "mutation-failed", "op", "deletePost")

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		attr  string
	}{
		{"DEBUG", "cache-hit", "query=getEmployees"},
		{"INFO", "loaded", "count=2"},
		{"WARN", "stale", "age=5s"},
		{"ERROR", "mutation-failed", "op=deletePost"},
	}

	for _, tc := range tests {
		for _, want := range []string{"level=" + tc.level, "msg=" + tc.msg, tc.attr} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %q in output:\n%s", want, out)
			}
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "reconciler", "employee_id", 7).Info(context.Background(), "refetched", "posts", 3)

	out := buf.String()
	for _, s := range []string{"msg=refetched", "module=reconciler", "employee_id=7", "posts=3"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestNewDiscardLogger_DropsRecords(t *testing.T) {
	log := NewDiscardLogger()
	log.With("k", "v").Error(context.TODO(), "dropped")
}
