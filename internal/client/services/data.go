// Package services sits between the view layer and the transport. Reads go
// through the normalized cache according to a fetch policy and mutations
// invalidate whatever they may have changed.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/client/cache"
	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/dmitrijs2005/employeeboard/internal/client/models"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"golang.org/x/sync/singleflight"
)

type FetchPolicy int

const (
	// CacheFirst answers from a fresh cache entry and asks the server otherwise.
	CacheFirst FetchPolicy = iota
	// NetworkOnly always asks the server and stores the answer.
	NetworkOnly
	// CacheOnly never touches the network. Stale entries are returned as is.
	CacheOnly
)

func (p FetchPolicy) String() string {
	switch p {
	case CacheFirst:
		return "cache-first"
	case NetworkOnly:
		return "network-only"
	case CacheOnly:
		return "cache-only"
	default:
		return "unknown"
	}
}

var ErrCacheMiss = errors.New("not in cache")

type DataService interface {
	Ping(ctx context.Context) error

	Employees(ctx context.Context, policy FetchPolicy) ([]models.Employee, error)
	Employee(ctx context.Context, id int, policy FetchPolicy) (*models.Employee, error)
	WatchEmployees(fn func([]models.Employee)) (cancel func())
	WatchEmployee(id int, fn func(models.Employee)) (cancel func())

	CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id int) error
	CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error

	// Wait blocks until background revalidations have finished.
	Wait()
}

type Options struct {
	CacheTTL time.Duration
	// Revalidate refreshes fresh CacheFirst hits in the background.
	Revalidate        bool
	RevalidateTimeout time.Duration
}

const defaultRevalidateTimeout = 10 * time.Second

type dataService struct {
	client client.Client
	cache  *cache.Cache
	logger logging.Logger
	opts   Options

	group singleflight.Group
	bg    sync.WaitGroup
}

func NewDataService(c client.Client, l logging.Logger, opts Options) DataService {
	if opts.RevalidateTimeout <= 0 {
		opts.RevalidateTimeout = defaultRevalidateTimeout
	}
	return &dataService{
		client: c,
		cache:  cache.New(opts.CacheTTL),
		logger: l.With("module", "data"),
		opts:   opts,
	}
}

func (s *dataService) Wait() {
	s.bg.Wait()
}

func (s *dataService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *dataService) Employees(ctx context.Context, policy FetchPolicy) ([]models.Employee, error) {
	if policy == NetworkOnly {
		// Bypasses singleflight: a read issued after a mutation must not
		// join one that started before it.
		return s.fetchEmployees(ctx)
	}

	list, st := s.cache.ReadEmployees()
	switch {
	case st.Found && st.Fresh:
		if policy == CacheFirst && s.opts.Revalidate {
			s.revalidate(cache.EmployeesKey, func(ctx context.Context) (any, error) {
				return s.fetchEmployees(ctx)
			})
		}
		return list, nil
	case policy == CacheOnly:
		if st.Found {
			return list, nil
		}
		return nil, ErrCacheMiss
	}

	v, err, _ := s.group.Do(string(cache.EmployeesKey), func() (any, error) {
		return s.fetchEmployees(ctx)
	})
	if err != nil {
		return nil, err
	}
	return models.CloneEmployees(v.([]models.Employee)), nil
}

func (s *dataService) fetchEmployees(ctx context.Context) ([]models.Employee, error) {
	token := s.cache.Token(cache.EmployeesKey)
	list, err := s.client.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if !s.cache.WriteEmployees(token, models.CloneEmployees(list)) {
		s.logger.Debug(ctx, "outdated result dropped", "query", cache.EmployeesKey)
	}
	return list, nil
}

func (s *dataService) Employee(ctx context.Context, id int, policy FetchPolicy) (*models.Employee, error) {
	if policy == NetworkOnly {
		return s.fetchEmployee(ctx, id)
	}

	key := cache.EmployeeKey(id)
	e, st := s.cache.ReadEmployee(id)
	switch {
	case st.Found && st.Fresh:
		if policy == CacheFirst && s.opts.Revalidate {
			s.revalidate(key, func(ctx context.Context) (any, error) {
				return s.fetchEmployee(ctx, id)
			})
		}
		return e, nil
	case policy == CacheOnly:
		if st.Found {
			return e, nil
		}
		return nil, ErrCacheMiss
	}

	v, err, _ := s.group.Do(string(key), func() (any, error) {
		return s.fetchEmployee(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	e = v.(*models.Employee)
	out := e.Clone()
	return &out, nil
}

func (s *dataService) fetchEmployee(ctx context.Context, id int) (*models.Employee, error) {
	key := cache.EmployeeKey(id)
	token := s.cache.Token(key)
	e, err := s.client.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.cache.WriteEmployee(token, e.Clone()) {
		s.logger.Debug(ctx, "outdated result dropped", "query", key)
	}
	return e, nil
}

// revalidate refreshes key in the background, sharing the flight with any
// foreground read of the same key. Failures are only logged.
func (s *dataService) revalidate(key cache.QueryKey, fetch func(ctx context.Context) (any, error)) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.opts.RevalidateTimeout)
		defer cancel()

		if _, err, _ := s.group.Do(string(key), func() (any, error) {
			return fetch(ctx)
		}); err != nil {
			s.logger.Warn(ctx, "background revalidation failed", "query", key, "error", err)
		}
	}()
}

func (s *dataService) WatchEmployees(fn func([]models.Employee)) func() {
	return s.cache.Subscribe(cache.EmployeesKey, func() {
		if list, st := s.cache.ReadEmployees(); st.Found {
			fn(list)
		}
	})
}

func (s *dataService) WatchEmployee(id int, fn func(models.Employee)) func() {
	return s.cache.Subscribe(cache.EmployeeKey(id), func() {
		if e, st := s.cache.ReadEmployee(id); st.Found {
			fn(*e)
		}
	})
}

func (s *dataService) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	e, err := s.client.CreateEmployee(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.EmployeesKey)
	return e, nil
}

func (s *dataService) DeleteEmployee(ctx context.Context, id int) error {
	if err := s.client.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.EmployeesKey, cache.EmployeeKey(id))
	s.cache.Evict(cache.EmployeeRef(id))
	return nil
}

func (s *dataService) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	p, err := s.client.CreatePost(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.EmployeesKey, cache.EmployeeKey(in.EmployeeID))
	return p, nil
}

func (s *dataService) DeletePost(ctx context.Context, id int) error {
	if err := s.client.DeletePost(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.EmployeesKey)
	s.cache.Evict(cache.PostRef(id))
	return nil
}

func (s *dataService) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	cm, err := s.client.CreateComment(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cache.EmployeesKey)
	s.cache.InvalidateReferencing(cache.PostRef(in.PostID))
	return cm, nil
}

func (s *dataService) DeleteComment(ctx context.Context, id int) error {
	if err := s.client.DeleteComment(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(cache.EmployeesKey)
	s.cache.Evict(cache.CommentRef(id))
	return nil
}
