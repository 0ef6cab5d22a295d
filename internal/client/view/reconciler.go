package view

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/employeeboard/internal/client/forms"
	"github.com/dmitrijs2005/employeeboard/internal/client/models"
	"github.com/dmitrijs2005/employeeboard/internal/client/services"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNoEmployee        = errors.New("no employee is open")
	ErrNoPost            = errors.New("no post is selected")
	ErrSubmissionPending = errors.New("a comment for this post is still being submitted")
)

const errorTitle = "Error"

// Reconciler owns the view model. Intents are serialized by opMu, which is
// held until the follow-up re-fetch of a mutation has resolved. mu guards
// the view model itself and is never held across a call into the data
// service.
type Reconciler struct {
	data   services.DataService
	logger logging.Logger
	notes  notifier

	opMu sync.Mutex

	mu            sync.Mutex
	list          EmployeeList
	detail        *EmployeeDetail
	pending       map[int]bool
	unwatchList   func()
	unwatchDetail func()
}

func NewReconciler(data services.DataService, l logging.Logger) *Reconciler {
	return &Reconciler{
		data:    data,
		logger:  l.With("module", "view"),
		pending: make(map[int]bool),
	}
}

// View returns a copy of the current view model.
func (r *Reconciler) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.list
	list.Items = models.CloneEmployees(r.list.Items)
	return View{List: list, Detail: r.detail.clone()}
}

func (r *Reconciler) Notifications() []Notification {
	return r.notes.pending()
}

// Dismiss removes a notification and reports whether it was pending.
func (r *Reconciler) Dismiss(id uuid.UUID) bool {
	return r.notes.dismiss(id)
}

// Close drops the cache subscriptions.
func (r *Reconciler) Close() {
	r.mu.Lock()
	fns := []func(){r.unwatchList, r.unwatchDetail}
	r.unwatchList, r.unwatchDetail = nil, nil
	r.mu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}

// LoadEmployees fills the list view. A failed read keeps the previous
// items and sets the list's Err.
func (r *Reconciler) LoadEmployees(ctx context.Context) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.watchList()
	return r.loadList(ctx, services.CacheFirst)
}

func (r *Reconciler) loadList(ctx context.Context, policy services.FetchPolicy) error {
	list, err := r.data.Employees(ctx, policy)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.list.Err = err
		r.logger.Error(ctx, "failed to load employees", "policy", policy, "error", err)
		return err
	}
	r.setListLocked(list)
	return nil
}

func (r *Reconciler) setListLocked(list []models.Employee) {
	r.list = EmployeeList{Items: sortByIDDesc(list), Loaded: true}
}

func (r *Reconciler) watchList() {
	r.mu.Lock()
	watching := r.unwatchList != nil
	r.mu.Unlock()
	if watching {
		return
	}

	cancel := r.data.WatchEmployees(func(list []models.Employee) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.setListLocked(list)
	})

	r.mu.Lock()
	r.unwatchList = cancel
	r.mu.Unlock()
}

// OpenEmployee shows the detail view of employee id with no post selected.
func (r *Reconciler) OpenEmployee(ctx context.Context, id int) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	cancel := r.data.WatchEmployee(id, func(e models.Employee) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.detail != nil && r.detail.ID == id {
			r.applyEmployeeLocked(e)
		}
	})

	r.mu.Lock()
	prev := r.unwatchDetail
	r.unwatchDetail = cancel
	r.detail = &EmployeeDetail{ID: id}
	r.mu.Unlock()
	if prev != nil {
		prev()
	}

	e, err := r.data.Employee(ctx, id, services.CacheFirst)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detail == nil || r.detail.ID != id {
		return err
	}
	if err != nil {
		r.detail.Err = err
		r.logger.Error(ctx, "failed to load employee", "id", id, "error", err)
		return err
	}
	r.applyEmployeeLocked(*e)
	return nil
}

// applyEmployeeLocked replaces the open employee and re-derives the
// selected post from it. A selected post that is gone shows no comments.
func (r *Reconciler) applyEmployeeLocked(e models.Employee) {
	d := r.detail
	var dropped int
	d.Employee, dropped = ownedBy(e)
	if dropped > 0 {
		r.logger.Warn(context.Background(), "nested entities with a foreign parent dropped", "employee", e.ID, "count", dropped)
	}
	d.Loaded = true
	d.Err = nil

	if d.Post == nil {
		return
	}
	if p, ok := d.Employee.FindPost(d.Post.Post.ID); ok {
		d.Post.Post = p
		d.Post.Comments = reversed(p.Comments)
	} else {
		d.Post.Comments = []models.Comment{}
	}
}

func (r *Reconciler) CloseEmployee() {
	r.mu.Lock()
	cancel := r.unwatchDetail
	r.unwatchDetail = nil
	r.detail = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// SelectPost selects a post of the open employee. No network is involved.
func (r *Reconciler) SelectPost(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.detail == nil || !r.detail.Loaded {
		return ErrNoEmployee
	}
	p, ok := r.detail.Employee.FindPost(id)
	if !ok {
		return ErrNotFound
	}
	r.detail.Post = &PostDetail{Post: p, Comments: reversed(p.Comments), Pending: r.pending[id]}
	return nil
}

func (r *Reconciler) ClosePost() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detail != nil {
		r.detail.Post = nil
	}
}

// Refresh re-reads the list and the open employee from the network.
func (r *Reconciler) Refresh(ctx context.Context) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	r.watchList()
	err := r.loadList(ctx, services.NetworkOnly)

	r.mu.Lock()
	id, open := 0, r.detail != nil
	if open {
		id = r.detail.ID
	}
	r.mu.Unlock()

	if open {
		if derr := r.refetchEmployee(ctx, id); derr != nil {
			r.mu.Lock()
			if r.detail != nil && r.detail.ID == id {
				r.detail.Err = derr
			}
			r.mu.Unlock()
			err = errors.Join(err, derr)
		}
	}
	return err
}

func (r *Reconciler) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	if err := forms.Validate(in); err != nil {
		return nil, err
	}

	r.opMu.Lock()
	defer r.opMu.Unlock()

	e, err := r.data.CreateEmployee(ctx, in)
	if err != nil {
		r.mutationFailed(ctx, "create employee", err)
		return nil, err
	}
	r.logger.Info(ctx, "employee created", "id", e.ID)
	r.notes.success("Employee Added!")

	r.refetchList(ctx)
	return e, nil
}

func (r *Reconciler) DeleteEmployee(ctx context.Context, id int) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()

	if err := r.data.DeleteEmployee(ctx, id); err != nil {
		r.mutationFailed(ctx, "delete employee", err)
		return err
	}
	r.logger.Info(ctx, "employee deleted", "id", id)
	r.notes.success("Employee has been deleted!")

	r.mu.Lock()
	r.list.Items = slices.DeleteFunc(r.list.Items, func(e models.Employee) bool { return e.ID == id })
	var cancel func()
	if r.detail != nil && r.detail.ID == id {
		cancel = r.unwatchDetail
		r.unwatchDetail = nil
		r.detail = nil
	}
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	r.refetchList(ctx)
	return nil
}

// CreatePost adds a post to the open employee.
func (r *Reconciler) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	empID, err := r.openEmployeeID()
	if err != nil {
		return nil, err
	}
	in := models.PostInput{EmployeeID: empID, Title: title, Content: content}
	if err := forms.Validate(in); err != nil {
		return nil, err
	}

	r.opMu.Lock()
	defer r.opMu.Unlock()

	p, err := r.data.CreatePost(ctx, in)
	if err != nil {
		r.mutationFailed(ctx, "create post", err)
		return nil, err
	}
	r.logger.Info(ctx, "post created", "id", p.ID, "employee_id", empID)
	r.notes.success("Post Created!")

	if err := r.refetchEmployee(ctx, empID); err != nil {
		r.refetchFailed(ctx, "employee", err)
	}
	return p, nil
}

// DeletePost deletes a post of the open employee. Deleting the selected
// post returns to the employee detail.
func (r *Reconciler) DeletePost(ctx context.Context, id int) error {
	empID, err := r.openEmployeeID()
	if err != nil {
		return err
	}

	r.opMu.Lock()
	defer r.opMu.Unlock()

	if err := r.data.DeletePost(ctx, id); err != nil {
		r.mutationFailed(ctx, "delete post", err)
		return err
	}
	r.logger.Info(ctx, "post deleted", "id", id, "employee_id", empID)
	r.notes.success("Post Deleted!")

	r.mu.Lock()
	if d := r.detail; d != nil && d.ID == empID {
		d.Employee = withoutPost(d.Employee, id)
		if d.Post != nil && d.Post.Post.ID == id {
			d.Post = nil
		}
	}
	for i := range r.list.Items {
		r.list.Items[i] = withoutPost(r.list.Items[i], id)
	}
	r.mu.Unlock()

	if err := r.refetchEmployee(ctx, empID); err != nil {
		r.refetchFailed(ctx, "employee", err)
	}
	return nil
}

// CreateComment adds a comment to the selected post.
func (r *Reconciler) CreateComment(ctx context.Context, content string) (*models.Comment, error) {
	empID, postID, err := r.beginComment(func(postID int) error {
		return forms.Validate(models.CommentInput{PostID: postID, Content: content})
	})
	if err != nil {
		return nil, err
	}
	defer r.endComment(postID)

	r.opMu.Lock()
	defer r.opMu.Unlock()

	cm, err := r.data.CreateComment(ctx, models.CommentInput{PostID: postID, Content: content})
	if err != nil {
		r.mutationFailed(ctx, "create comment", err)
		return nil, err
	}
	r.logger.Info(ctx, "comment created", "id", cm.ID, "post_id", postID)
	r.notes.success("Comment added successfully")

	r.refreshComments(ctx, empID, postID)
	return cm, nil
}

// DeleteComment deletes a comment of the selected post. The deleted comment
// is pruned locally even when the follow-up refetch fails, so the view
// never keeps a comment the server no longer has.
func (r *Reconciler) DeleteComment(ctx context.Context, id int) error {
	empID, postID, err := r.beginComment(nil)
	if err != nil {
		return err
	}
	defer r.endComment(postID)

	r.opMu.Lock()
	defer r.opMu.Unlock()

	if err := r.data.DeleteComment(ctx, id); err != nil {
		r.mutationFailed(ctx, "delete comment", err)
		return err
	}
	r.logger.Info(ctx, "comment deleted", "id", id, "post_id", postID)
	r.notes.success("Comment Deleted!")

	r.mu.Lock()
	if d := r.detail; d != nil && d.Post != nil && d.Post.Post.ID == postID {
		d.Post.Comments = slices.DeleteFunc(d.Post.Comments, func(c models.Comment) bool { return c.ID == id })
	}
	r.mu.Unlock()

	r.refreshComments(ctx, empID, postID)
	return nil
}

// beginComment marks the selected post as having a submission in flight.
// check runs under the same lock, before the mark is set.
func (r *Reconciler) beginComment(check func(postID int) error) (empID, postID int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.detail == nil || r.detail.Post == nil {
		return 0, 0, ErrNoPost
	}
	empID, postID = r.detail.ID, r.detail.Post.Post.ID
	if r.pending[postID] {
		return 0, 0, ErrSubmissionPending
	}
	if check != nil {
		if err := check(postID); err != nil {
			return 0, 0, err
		}
	}
	r.pending[postID] = true
	r.detail.Post.Pending = true
	return empID, postID, nil
}

func (r *Reconciler) endComment(postID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, postID)
	if d := r.detail; d != nil && d.Post != nil && d.Post.Post.ID == postID {
		d.Post.Pending = false
	}
}

// refreshComments re-fetches the owning employee and replaces the selected
// post's comments with the reverse of what the server returned. A post that
// is gone yields no comments. On failure the comments stay as they were.
func (r *Reconciler) refreshComments(ctx context.Context, empID, postID int) {
	e, err := r.data.Employee(ctx, empID, services.NetworkOnly)
	if err != nil {
		r.refetchFailed(ctx, "comments", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detail != nil && r.detail.ID == empID {
		r.applyEmployeeLocked(*e)
	}
}

func (r *Reconciler) refetchList(ctx context.Context) {
	list, err := r.data.Employees(ctx, services.NetworkOnly)
	if err != nil {
		r.refetchFailed(ctx, "employees", err)
		return
	}
	r.mu.Lock()
	r.setListLocked(list)
	r.mu.Unlock()
}

func (r *Reconciler) refetchEmployee(ctx context.Context, id int) error {
	e, err := r.data.Employee(ctx, id, services.NetworkOnly)
	if err != nil {
		return err
	}
	r.mu.Lock()
	if r.detail != nil && r.detail.ID == id {
		r.applyEmployeeLocked(*e)
	}
	r.mu.Unlock()
	return nil
}

func (r *Reconciler) openEmployeeID() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detail == nil || !r.detail.Loaded {
		return 0, ErrNoEmployee
	}
	return r.detail.ID, nil
}

func (r *Reconciler) mutationFailed(ctx context.Context, op string, err error) {
	r.logger.Error(ctx, op+" failed", "error", err)
	r.notes.failure(errorTitle, err)
}

func (r *Reconciler) refetchFailed(ctx context.Context, what string, err error) {
	r.logger.Error(ctx, "failed to refresh "+what, "error", err)
	r.notes.failure(errorTitle, err)
}
