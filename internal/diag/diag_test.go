package diag

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("hello", "k", 1)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output = %q, want it to contain hello", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestDefectfPanicsWithDefect(t *testing.T) {
	if !Assertions() {
		t.Skip("assertions disabled")
	}
	defer func() {
		r := recover()
		if !IsDefect(r) {
			t.Fatalf("recovered %v, want *Defect", r)
		}
		if !strings.Contains(r.(error).Error(), "bad value 3") {
			t.Errorf("message = %q", r.(error).Error())
		}
	}()
	Defectf("bad value %d", 3)
}

func TestAbortfAlwaysPanics(t *testing.T) {
	sentinel := errors.New("gone")
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, sentinel) {
			t.Fatalf("recovered %v, want error wrapping sentinel", r)
		}
	}()
	Abortf("lookup: %w", sentinel)
}

func TestIsDefect(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"string", "boom", false},
		{"plain error", errors.New("x"), false},
		{"defect", &Defect{Err: errors.New("x")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDefect(tt.v); got != tt.want {
				t.Errorf("IsDefect(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
