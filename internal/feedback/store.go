// Package feedback persists teacher-confirmed sentence labels: the
// store-and-forward target of the learn endpoint, per-path usage statistics,
// and a JSONL export of the accumulated corpus.
package feedback

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Entry is one confirmed label set with its embedding.
type Entry struct {
	MaterialID     string    `json:"material_id,omitempty"`
	PairID         int64     `json:"pair_id"`
	EN             string    `json:"en"`
	KO             string    `json:"ko,omitempty"`
	Paths          []string  `json:"paths"`
	TeacherName    string    `json:"teacher_name,omitempty"`
	Embedding      []float64 `json:"embedding,omitempty"`
	EmbeddingModel string    `json:"embedding_model,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store keeps feedback in Postgres when a DSN is configured, else in a local
// JSON file. Path-usage reads go through a small LRU that Bump invalidates.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	entries  []Entry
	stats    map[string]int

	schemaOnce sync.Once
	schemaErr  error

	usesCache *lru.Cache[string, int]
}

func New(path string) *Store {
	return &Store{
		path:  path,
		stats: make(map[string]int),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, int](1024)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, usesCache: cache}, nil
}

// NewFromEnv prefers Postgres when dsn is non-empty and reachable, falling
// back to the file store at path.
func NewFromEnv(dsn, path string) *Store {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) EnsureLoaded() {
	if s == nil {
		return
	}
	if s.db != nil {
		_ = s.ensureSchema()
		return
	}
	s.ensureLoadedFile()
}

// Put appends one entry.
func (s *Store) Put(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if s.db != nil {
		return s.putDB(ctx, e)
	}
	return s.putFile(e)
}

// BumpPaths increments the usage counter of each path.
func (s *Store) BumpPaths(ctx context.Context, paths []string) error {
	if s.db != nil {
		err := s.bumpPathsDB(ctx, paths)
		if err == nil && s.usesCache != nil {
			for _, p := range paths {
				s.usesCache.Remove(p)
			}
		}
		return err
	}
	return s.bumpPathsFile(paths)
}

// PathUses reports how many times a path has been confirmed.
func (s *Store) PathUses(ctx context.Context, path string) (int, error) {
	if s.db != nil {
		if s.usesCache != nil {
			if n, ok := s.usesCache.Get(path); ok {
				return n, nil
			}
		}
		n, err := s.pathUsesDB(ctx, path)
		if err != nil {
			return 0, err
		}
		if s.usesCache != nil {
			s.usesCache.Add(path, n)
		}
		return n, nil
	}
	return s.pathUsesFile(path), nil
}

// All returns every stored entry, oldest first.
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	if s.db != nil {
		return s.allDB(ctx)
	}
	return s.allFile(), nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
