// Package cache is a normalized in-memory store for query results.
//
// Entities are kept once per identity; a query result only stores the ids
// of its root employees and is denormalized on read, so a write through one
// query is visible through every other query that reaches the same entity.
// Deleted entities are tombstoned: a response fetched before the delete
// never brings them back, while a read started after it may store an
// entity the server created under the same id.
package cache

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/client/models"
)

type employeeRow struct {
	employee models.Employee
	postIDs  []int
}

type postRow struct {
	post       models.Post
	commentIDs []int
}

type queryEntry struct {
	roots     []int
	refs      map[Ref]struct{}
	writtenAt time.Time
	stale     bool
}

// Token is taken before a network read and handed back on write. A write
// whose key was invalidated in between is dropped, and entities evicted
// after the token was taken are skipped.
type Token struct {
	key   QueryKey
	gen   uint64
	epoch uint64
}

// State describes a read.
type State struct {
	Found bool
	Fresh bool
}

type Cache struct {
	mu sync.Mutex

	employees  map[int]*employeeRow
	posts      map[int]*postRow
	comments   map[int]models.Comment
	tombstones map[Ref]uint64
	epoch      uint64

	queries map[QueryKey]*queryEntry
	gens    map[QueryKey]uint64

	subs    map[QueryKey]map[int]func()
	nextSub int

	ttl time.Duration
	now func() time.Time
}

// New returns an empty cache. Entries stay fresh for ttl after being
// written; ttl <= 0 keeps them fresh until invalidated.
func New(ttl time.Duration) *Cache {
	return &Cache{
		employees:  make(map[int]*employeeRow),
		posts:      make(map[int]*postRow),
		comments:   make(map[int]models.Comment),
		tombstones: make(map[Ref]uint64),
		queries:    make(map[QueryKey]*queryEntry),
		gens:       make(map[QueryKey]uint64),
		subs:       make(map[QueryKey]map[int]func()),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (c *Cache) Token(key QueryKey) Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Token{key: key, gen: c.gens[key], epoch: c.epoch}
}

// WriteEmployees stores a getEmployees result. It reports false when the
// token is outdated and nothing was written.
func (c *Cache) WriteEmployees(t Token, list []models.Employee) bool {
	c.mu.Lock()
	if t.key != EmployeesKey || c.gens[t.key] != t.gen {
		c.mu.Unlock()
		return false
	}

	subtrees := make(map[int]map[Ref]struct{}, len(list))
	refs := make(map[Ref]struct{})
	roots := make([]int, 0, len(list))
	for _, e := range list {
		sub, ok := c.putEmployeeLocked(t, e)
		if !ok {
			continue
		}
		subtrees[e.ID] = sub
		roots = append(roots, e.ID)
		for r := range sub {
			refs[r] = struct{}{}
		}
	}
	c.queries[EmployeesKey] = &queryEntry{roots: roots, refs: refs, writtenAt: c.now()}

	notify := c.spreadLocked(EmployeesKey, subtrees)
	c.mu.Unlock()

	run(notify)
	return true
}

// WriteEmployee stores a getEmployee(id) result.
func (c *Cache) WriteEmployee(t Token, e models.Employee) bool {
	c.mu.Lock()
	if t.key != EmployeeKey(e.ID) || c.gens[t.key] != t.gen {
		c.mu.Unlock()
		return false
	}

	entry := &queryEntry{refs: make(map[Ref]struct{}), writtenAt: c.now()}
	subtrees := make(map[int]map[Ref]struct{}, 1)
	if sub, ok := c.putEmployeeLocked(t, e); ok {
		entry.roots = []int{e.ID}
		entry.refs = sub
		subtrees[e.ID] = sub
	}
	c.queries[t.key] = entry

	notify := c.spreadLocked(t.key, subtrees)
	c.mu.Unlock()

	run(notify)
	return true
}

// putEmployeeLocked normalizes e and its subtree, skipping entities evicted
// after t was taken. It returns the refs of the stored subtree, or false
// when e itself was evicted.
func (c *Cache) putEmployeeLocked(t Token, e models.Employee) (map[Ref]struct{}, bool) {
	if c.deadLocked(t, EmployeeRef(e.ID)) {
		return nil, false
	}
	refs := map[Ref]struct{}{EmployeeRef(e.ID): {}}

	row := &employeeRow{employee: e, postIDs: make([]int, 0, len(e.Posts))}
	row.employee.Posts = nil

	for _, p := range e.Posts {
		if c.deadLocked(t, PostRef(p.ID)) {
			continue
		}
		refs[PostRef(p.ID)] = struct{}{}

		// eviction finds owners through these
		if p.EmployeeID == 0 {
			p.EmployeeID = e.ID
		}
		prow := &postRow{post: p, commentIDs: make([]int, 0, len(p.Comments))}
		prow.post.Comments = nil
		for _, cm := range p.Comments {
			if c.deadLocked(t, CommentRef(cm.ID)) {
				continue
			}
			if cm.PostID == 0 {
				cm.PostID = p.ID
			}
			refs[CommentRef(cm.ID)] = struct{}{}
			c.comments[cm.ID] = cm
			prow.commentIDs = append(prow.commentIDs, cm.ID)
		}
		c.posts[p.ID] = prow
		row.postIDs = append(row.postIDs, p.ID)
	}
	c.employees[e.ID] = row
	return refs, true
}

// deadLocked reports whether r was evicted after t was taken. A read that
// began after the delete may carry a new entity the server gave the same id.
func (c *Cache) deadLocked(t Token, r Ref) bool {
	at, ok := c.tombstones[r]
	return ok && at > t.epoch
}

// ReadEmployees returns the denormalized getEmployees result.
func (c *Cache) ReadEmployees() ([]models.Employee, State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.queries[EmployeesKey]
	if !ok {
		return nil, State{}
	}
	list := make([]models.Employee, 0, len(q.roots))
	for _, id := range q.roots {
		if e, ok := c.employeeLocked(id); ok {
			list = append(list, e)
		}
	}
	return list, State{Found: true, Fresh: c.freshLocked(q)}
}

// ReadEmployee returns the denormalized getEmployee(id) result.
func (c *Cache) ReadEmployee(id int) (*models.Employee, State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.queries[EmployeeKey(id)]
	if !ok || len(q.roots) == 0 {
		return nil, State{}
	}
	e, ok := c.employeeLocked(id)
	if !ok {
		return nil, State{}
	}
	return &e, State{Found: true, Fresh: c.freshLocked(q)}
}

func (c *Cache) employeeLocked(id int) (models.Employee, bool) {
	row, ok := c.employees[id]
	if !ok {
		return models.Employee{}, false
	}
	e := row.employee
	e.Posts = make([]models.Post, 0, len(row.postIDs))
	for _, pid := range row.postIDs {
		prow, ok := c.posts[pid]
		if !ok {
			continue
		}
		p := prow.post
		p.Comments = make([]models.Comment, 0, len(prow.commentIDs))
		for _, cid := range prow.commentIDs {
			if cm, ok := c.comments[cid]; ok {
				p.Comments = append(p.Comments, cm)
			}
		}
		e.Posts = append(e.Posts, p)
	}
	return e, true
}

func (c *Cache) freshLocked(q *queryEntry) bool {
	if q.stale {
		return false
	}
	return c.ttl <= 0 || c.now().Sub(q.writtenAt) < c.ttl
}

// Invalidate marks the given queries stale and outdates pending writes
// for them.
func (c *Cache) Invalidate(keys ...QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.invalidateLocked(k)
	}
}

func (c *Cache) invalidateLocked(k QueryKey) {
	c.gens[k]++
	if q, ok := c.queries[k]; ok {
		q.stale = true
	}
}

// InvalidateReferencing invalidates every cached query whose result
// reaches ref and returns their keys.
func (c *Cache) InvalidateReferencing(ref Ref) []QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidateReferencingLocked(ref)
}

func (c *Cache) invalidateReferencingLocked(ref Ref) []QueryKey {
	var keys []QueryKey
	for k, q := range c.queries {
		if _, ok := q.refs[ref]; ok {
			c.invalidateLocked(k)
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Evict removes a deleted entity with everything it owns, tombstones it and
// invalidates the queries that reached it. Subscribers of those queries are
// notified since their denormalized result changed.
func (c *Cache) Evict(ref Ref) []QueryKey {
	c.mu.Lock()

	keys := c.invalidateReferencingLocked(ref)
	c.epoch++
	c.tombstones[ref] = c.epoch

	switch ref.Kind {
	case KindEmployee:
		if row, ok := c.employees[ref.ID]; ok {
			for _, pid := range row.postIDs {
				c.dropPostLocked(pid)
			}
		}
		delete(c.employees, ref.ID)
		for _, q := range c.queries {
			q.roots = slices.DeleteFunc(q.roots, func(id int) bool { return id == ref.ID })
		}
	case KindPost:
		if prow, ok := c.posts[ref.ID]; ok {
			if owner, ok := c.employees[prow.post.EmployeeID]; ok {
				owner.postIDs = slices.DeleteFunc(owner.postIDs, func(id int) bool { return id == ref.ID })
			}
		}
		c.dropPostLocked(ref.ID)
	case KindComment:
		if cm, ok := c.comments[ref.ID]; ok {
			if prow, ok := c.posts[cm.PostID]; ok {
				prow.commentIDs = slices.DeleteFunc(prow.commentIDs, func(id int) bool { return id == ref.ID })
			}
		}
		delete(c.comments, ref.ID)
	}

	var notify []func()
	for _, k := range keys {
		notify = append(notify, c.subscribersLocked(k)...)
	}
	c.mu.Unlock()

	run(notify)
	return keys
}

func (c *Cache) dropPostLocked(id int) {
	if prow, ok := c.posts[id]; ok {
		for _, cid := range prow.commentIDs {
			delete(c.comments, cid)
		}
	}
	delete(c.posts, id)
}

// Subscribe registers fn to run after every change to key's result,
// including changes made through overlapping queries. fn runs on the
// writer's goroutine without the cache lock held.
func (c *Cache) Subscribe(key QueryKey, fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	id := c.nextSub
	if c.subs[key] == nil {
		c.subs[key] = make(map[int]func())
	}
	c.subs[key][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[key], id)
		if len(c.subs[key]) == 0 {
			delete(c.subs, key)
		}
	}
}

func (c *Cache) subscribersLocked(key QueryKey) []func() {
	fns := make([]func(), 0, len(c.subs[key]))
	ids := make([]int, 0, len(c.subs[key]))
	for id := range c.subs[key] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, c.subs[key][id])
	}
	return fns
}

// spreadLocked extends the refs of every other query rooted at a rewritten
// employee and returns the subscribers to notify: those of written and of
// every query that shares an entity with the rewritten subtrees.
func (c *Cache) spreadLocked(written QueryKey, subtrees map[int]map[Ref]struct{}) []func() {
	notify := c.subscribersLocked(written)
	for k, q := range c.queries {
		if k == written {
			continue
		}
		touched := false
		for _, id := range q.roots {
			sub, ok := subtrees[id]
			if !ok {
				continue
			}
			touched = true
			for r := range sub {
				q.refs[r] = struct{}{}
			}
		}
		if !touched {
			touched = sharesRef(q.refs, subtrees)
		}
		if touched {
			notify = append(notify, c.subscribersLocked(k)...)
		}
	}
	return notify
}

func sharesRef(refs map[Ref]struct{}, subtrees map[int]map[Ref]struct{}) bool {
	for _, sub := range subtrees {
		for r := range sub {
			if _, ok := refs[r]; ok {
				return true
			}
		}
	}
	return false
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
