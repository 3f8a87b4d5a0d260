// Package api provides interfaces for dependency injection
package api

import (
	"context"
	"log/slog"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/storage"
)

// ActivityArchive defines the archive operations the API serves
type ActivityArchive interface {
	Import(ctx context.Context, name string, raw []byte) (storage.Summary, error)
	Get(ctx context.Context, id ksuid.KSUID) (storage.Summary, error)
	GetRaw(ctx context.Context, id ksuid.KSUID) ([]byte, error)
	Delete(ctx context.Context, id ksuid.KSUID) error
	List(ctx context.Context) ([]storage.Summary, error)
	Close() error
}

// ArchiveFactory opens activity archives
type ArchiveFactory interface {
	// OpenArchive opens the archive at path, creating it when missing
	OpenArchive(path, compression string, opts fit.ReadOptions, logger *slog.Logger) (ActivityArchive, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context, archive ActivityArchive, config ServerConfig, logger *slog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
