// Package memory keeps employees, posts and comments in process memory.
// It backs the server when no DSN is configured and mirrors the
// relational schema: ids are assigned in creation order and deletes cascade.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/common"
	"github.com/dmitrijs2005/employeeboard/internal/server/models"
)

type Store struct {
	mu sync.RWMutex

	employees map[int64]models.Employee
	posts     map[int64]models.Post
	comments  map[int64]models.Comment

	lastEmployeeID int64
	lastPostID     int64
	lastCommentID  int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees: make(map[int64]models.Employee),
		posts:     make(map[int64]models.Post),
		comments:  make(map[int64]models.Comment),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Employees returns a view satisfying employees.Repository.
func (s *Store) Employees() *EmployeeRepository { return &EmployeeRepository{s: s} }

// Posts returns a view satisfying posts.Repository.
func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

// Comments returns a view satisfying comments.Repository.
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

func sortedIDs[T any](m map[int64]T, keep func(T) bool) []int64 {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// deletePostLocked removes a post and its comments. Caller holds s.mu.
func (s *Store) deletePostLocked(id int64) {
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
}

type EmployeeRepository struct{ s *Store }

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastEmployeeID++
	e.ID = r.s.lastEmployeeID
	e.CreatedAt = r.s.now()
	r.s.employees[e.ID] = *e
	return e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Employee, 0, len(r.s.employees))
	for _, id := range sortedIDs(r.s.employees, nil) {
		e := r.s.employees[id]
		result = append(result, &e)
	}
	return result, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &e, nil
}

func (r *EmployeeRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return false, nil
	}
	delete(r.s.employees, id)
	for pid, p := range r.s.posts {
		if p.EmployeeID == id {
			r.s.deletePostLocked(pid)
		}
	}
	return true, nil
}

type PostRepository struct{ s *Store }

// Create fails with common.ErrNotFound when the author does not exist.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[p.EmployeeID]; !ok {
		return nil, common.ErrNotFound
	}
	r.s.lastPostID++
	p.ID = r.s.lastPostID
	p.CreatedAt = r.s.now()
	r.s.posts[p.ID] = *p
	return p, nil
}

func (r *PostRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := sortedIDs(r.s.posts, func(p models.Post) bool { return p.EmployeeID == employeeID })
	result := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		p := r.s.posts[id]
		result = append(result, &p)
	}
	return result, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (r *PostRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return false, nil
	}
	r.s.deletePostLocked(id)
	return true, nil
}

type CommentRepository struct{ s *Store }

// Create fails with common.ErrNotFound when the post does not exist.
func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[c.PostID]; !ok {
		return nil, common.ErrNotFound
	}
	r.s.lastCommentID++
	c.ID = r.s.lastCommentID
	c.CreatedAt = r.s.now()
	r.s.comments[c.ID] = *c
	return c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := sortedIDs(r.s.comments, func(c models.Comment) bool { return c.PostID == postID })
	result := make([]*models.Comment, 0, len(ids))
	for _, id := range ids {
		c := r.s.comments[id]
		result = append(result, &c)
	}
	return result, nil
}

func (r *CommentRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return false, nil
	}
	delete(r.s.comments, id)
	return true, nil
}
