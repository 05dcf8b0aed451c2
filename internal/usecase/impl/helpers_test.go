package impl

import (
	"io"
	"log/slog"

	"inventory/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(pageSize int) *config.Config {
	return &config.Config{
		Pagination: &config.PaginationConfig{PageSize: pageSize},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }
