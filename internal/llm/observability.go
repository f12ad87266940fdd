package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// LLMCallEvent records metadata about a single model invocation.
type LLMCallEvent struct {
	Provider  Provider
	Model     string
	Parts     int
	WithImage bool
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about model calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] llm_call provider=%s model=%s parts=%d image=%t latency_ms=%d status=%s\n",
		ts, event.Provider, event.Model, event.Parts, event.WithImage, event.LatencyMs, status)
}

// SlogObserver emits call events as structured slog records.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an Observer backed by logger (slog.Default when nil).
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnCallComplete(event LLMCallEvent) {
	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(context.Background(), level, "llm call",
		slog.String("provider", string(event.Provider)),
		slog.String("model", event.Model),
		slog.Int("parts", event.Parts),
		slog.Bool("image", event.WithImage),
		slog.Int64("latency_ms", event.LatencyMs),
		slog.Bool("success", event.Success),
		slog.String("error_code", event.ErrorCode),
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
