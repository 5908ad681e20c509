package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// CIHandler is a custom slog.Handler that adds CI environment metadata
// to log records, so failures in pipeline runs carry their build context.
type CIHandler struct {
	handler  slog.Handler
	metadata map[string]string
}

// NewCIHandler creates a new CIHandler that wraps a JSON handler writing
// to out, adding CI metadata to each log record.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	return &CIHandler{
		handler:  slog.NewJSONHandler(out, opts),
		metadata: getCIMetadata(),
	}
}

// getCIMetadata collects build identifiers from the environment variables
// GitHub Actions sets. Absent variables are simply omitted.
func getCIMetadata() map[string]string {
	metadata := make(map[string]string)
	for key, env := range map[string]string{
		"ci_run_id": "GITHUB_RUN_ID",
		"ci_sha":    "GITHUB_SHA",
		"ci_ref":    "GITHUB_REF",
		"ci_job":    "GITHUB_JOB",
	} {
		if value := os.Getenv(env); value != "" {
			metadata[key] = value
		}
	}
	return metadata
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{
		handler:  h.handler.WithAttrs(attrs),
		metadata: h.metadata,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{
		handler:  h.handler.WithGroup(name),
		metadata: h.metadata,
	}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()
	for key, value := range h.metadata {
		enhanced.AddAttrs(slog.String(key, value))
	}
	return h.handler.Handle(ctx, enhanced)
}
