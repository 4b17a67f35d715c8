package bank

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gcse_prep_backend/internal/config"
	"gcse_prep_backend/internal/util"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectFetcher reads a bank document by object path.
type ObjectFetcher interface {
	Fetch(ctx context.Context, objectPath string) (io.ReadCloser, error)
}

// LocalFetcher serves bank files from a directory tree.
type LocalFetcher struct {
	BasePath string
}

func (f *LocalFetcher) Fetch(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(f.BasePath, filepath.FromSlash(objectPath)))
}

// MinioFetcher serves bank files from a MinIO bucket.
type MinioFetcher struct {
	Client *minio.Client
	Bucket string
}

func (f *MinioFetcher) Fetch(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	obj, err := f.Client.GetObject(ctx, f.Bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Store loads and caches per-lesson banks. Bank content is immutable
// during a deployment, so entries are cached forever once parsed.
type Store struct {
	fetcher ObjectFetcher

	mu    sync.RWMutex
	cache map[string]*LessonBank
}

func NewStore(cfg *config.BankConfig) (*Store, error) {
	var fetcher ObjectFetcher

	switch cfg.StorageType {
	case util.StorageMinio:
		client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
			Secure: cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		fetcher = &MinioFetcher{Client: client, Bucket: cfg.MinioBucket}
	case util.StorageLocal, "":
		fetcher = &LocalFetcher{BasePath: cfg.LocalPath}
	default:
		return nil, fmt.Errorf("unknown bank storage type: %s", cfg.StorageType)
	}

	return &Store{
		fetcher: fetcher,
		cache:   make(map[string]*LessonBank),
	}, nil
}

// NewStoreWithFetcher wires a custom fetcher, used by tests.
func NewStoreWithFetcher(f ObjectFetcher) *Store {
	return &Store{fetcher: f, cache: make(map[string]*LessonBank)}
}

func lessonKey(courseSlug string, lessonID uint) string {
	return fmt.Sprintf("%s/%d", courseSlug, lessonID)
}

// LessonBank returns the bank for a lesson, loading the paired
// questions/answers documents on first use.
func (s *Store) LessonBank(ctx context.Context, courseSlug string, lessonID uint) (*LessonBank, error) {
	key := lessonKey(courseSlug, lessonID)

	s.mu.RLock()
	lb, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return lb, nil
	}

	questionsJSON, err := s.read(ctx, fmt.Sprintf("%s/questions/lesson-%d.json", courseSlug, lessonID))
	if err != nil {
		return nil, fmt.Errorf("load questions for %s: %w", key, err)
	}

	answersJSON, err := s.read(ctx, fmt.Sprintf("%s/answers/lesson-%d.json", courseSlug, lessonID))
	if err != nil {
		return nil, fmt.Errorf("load answers for %s: %w", key, err)
	}

	lb, err = parseLessonBank(questionsJSON, answersJSON)
	if err != nil {
		return nil, fmt.Errorf("parse bank for %s: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = lb
	s.mu.Unlock()

	return lb, nil
}

func (s *Store) read(ctx context.Context, objectPath string) ([]byte, error) {
	rc, err := s.fetcher.Fetch(ctx, objectPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
