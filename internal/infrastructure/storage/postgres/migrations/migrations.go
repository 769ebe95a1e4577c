// Package migrations embeds the goose-formatted schema so the server can
// apply it on start without the goose binary.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"dastarkhan/pkg/logger"
)

//go:embed *.sql
var files embed.FS

const (
	upMarker   = "-- +goose Up"
	downMarker = "-- +goose Down"
)

// UpSection returns the statements between the Up and Down markers.
func UpSection(script string) string {
	start := strings.Index(script, upMarker)
	if start < 0 {
		return ""
	}
	body := script[start+len(upMarker):]
	if end := strings.Index(body, downMarker); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// Scripts returns the embedded migration names in apply order.
func Scripts() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Apply runs every Up section. Scripts are written to be idempotent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := Scripts()
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	for _, name := range names {
		raw, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, UpSection(string(raw))); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		logger.Info(ctx, "migration applied", "name", name)
	}
	return nil
}
