package quiz

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sanandmv7/minitq/internal/domain"
)

// Loader fetches the question set from a backing store (e.g. Postgres).
type Loader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// CachedSource caches the loaded catalog with a TTL to avoid hitting the
// backing store on every request.
type CachedSource struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	catalog   *Catalog
	expiresAt time.Time
}

func NewCachedSource(loader Loader, ttl time.Duration) *CachedSource {
	return &CachedSource{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *CachedSource) Catalog(ctx context.Context) (*Catalog, error) {
	now := s.clock()

	s.mu.RLock()
	if s.catalog != nil && s.expiresAt.After(now) {
		catalog := s.catalog
		s.mu.RUnlock()
		return catalog, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do("catalog", func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if s.catalog != nil && s.expiresAt.After(now) {
			catalog := s.catalog
			s.mu.RUnlock()
			return catalog, nil
		}
		s.mu.RUnlock()

		questions, err := s.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		catalog := NewCatalog(questions)

		s.mu.Lock()
		s.catalog = catalog
		s.expiresAt = now.Add(s.ttlWithJitter())
		s.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Catalog), nil
}

func (s *CachedSource) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(s.ttl) / 10
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}

// StaticLoader serves a fixed question set (useful for tests and the
// no-database deployment).
type StaticLoader struct {
	questions []domain.Question
}

func NewStaticLoader(questions []domain.Question) *StaticLoader {
	return &StaticLoader{questions: questions}
}

func (l *StaticLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return l.questions, nil
}
