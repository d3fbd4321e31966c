package nurbs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return a nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	s := bilinearPatch(t)
	p1 := Plane{Normal: [3]float64{1, 0, 0}, D: 0.3}
	p2 := Plane{Normal: [3]float64{0, 1, 0}, D: 0.7}
	if _, err := Intersect(s, p1, p2, 1e-6); err != nil {
		t.Fatal(err)
	}
	if out := buf.String(); !strings.Contains(out, "nurbs: intersect done") || !strings.Contains(out, "hits=1") {
		t.Errorf("expected a summary of the intersection, got: %s", out)
	}

	buf.Reset()
	if _, err := Intersect(s, p1, p2, 1e-6, WithMaxIterations(1)); err == nil {
		t.Fatal("expected the iteration limit to be hit")
	}
	if out := buf.String(); !strings.Contains(out, "level=WARN") || !strings.Contains(out, "iteration limit") {
		t.Errorf("expected a warning about the iteration limit, got: %s", out)
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil after SetLogger(nil)")
	}
	l.Warn("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output after SetLogger(nil), got: %s", buf.String())
	}
}

func TestLoggerConcurrent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(nil)
			} else {
				Logger().Debug("concurrent read")
			}
		}()
	}
	wg.Wait()
}
