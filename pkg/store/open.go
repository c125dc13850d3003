package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netmap/pkg/observability"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Path    string // file backend directory
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open creates the configured backend and instruments it with hooks.
// An empty backend name selects the file store.
func Open(ctx context.Context, cfg Config, hooks observability.StoreHooks, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}

	var (
		s   Store
		err error
	)
	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		var fs *FileStore
		fs, err = NewFileStore(cfg.Path)
		if err == nil {
			logger.Debug("opened topology store", "backend", backend, "path", fs.Path())
			s = fs
		}
	case BackendRedis:
		s, err = NewRedisStore(ctx, cfg.Redis)
		if err == nil {
			logger.Debug("opened topology store", "backend", backend, "addr", cfg.Redis.Addr)
		}
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo)
		if err == nil {
			logger.Debug("opened topology store", "backend", backend, "database", cfg.Mongo.Database)
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, backend, hooks), nil
}
