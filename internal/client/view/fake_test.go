package view

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/dmitrijs2005/employeeboard/internal/client/models"
	"github.com/dmitrijs2005/employeeboard/internal/client/services"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
)

// fakeRemote is an in-memory remote data service with failure injection.
type fakeRemote struct {
	mu        sync.Mutex
	employees []models.Employee
	nextID    int

	calls map[string]int
	fail  map[string]error
	// hold blocks an operation until the channel is closed; entered gets
	// a value when the operation starts waiting.
	hold    map[string]chan struct{}
	entered chan string
	// after runs once an operation has been applied.
	after map[string]func()
}

func newFakeRemote(employees ...models.Employee) *fakeRemote {
	f := &fakeRemote{
		employees: employees,
		nextID:    1000,
		calls:     make(map[string]int),
		fail:      make(map[string]error),
		hold:      make(map[string]chan struct{}),
		entered:   make(chan string, 8),
		after:     make(map[string]func()),
	}
	return f
}

func remoteErr(op, msg string) error {
	return &client.RemoteError{Op: op, Message: msg}
}

func (f *fakeRemote) begin(op string) error {
	f.mu.Lock()
	f.calls[op]++
	hold := f.hold[op]
	err := f.fail[op]
	f.mu.Unlock()

	if hold != nil {
		f.entered <- op
		<-hold
	}
	return err
}

func (f *fakeRemote) done(op string) {
	f.mu.Lock()
	fn := f.after[op]
	delete(f.after, op)
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (f *fakeRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRemote) setFail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

func (f *fakeRemote) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeRemote) Ping(ctx context.Context) error { return f.begin("ping") }

func (f *fakeRemote) GetEmployees(ctx context.Context) ([]models.Employee, error) {
	if err := f.begin("getEmployees"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneEmployees(f.employees), nil
}

func (f *fakeRemote) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	if err := f.begin("getEmployee"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.ID == id {
			out := e.Clone()
			return &out, nil
		}
	}
	return nil, &client.RemoteError{Op: "getEmployee", Message: "Employee not found", Err: client.ErrNotFound}
}

func (f *fakeRemote) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	if err := f.begin("createEmployee"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	e := models.Employee{ID: f.id(), FirstName: in.FirstName, LastName: in.LastName, Age: in.Age,
		PhoneNumber: in.PhoneNumber, Email: in.Email, JobLocation: in.JobLocation}
	f.employees = append(f.employees, e)
	f.mu.Unlock()
	f.done("createEmployee")
	return &e, nil
}

func (f *fakeRemote) DeleteEmployee(ctx context.Context, id int) error {
	if err := f.begin("deleteEmployee"); err != nil {
		return err
	}
	f.mu.Lock()
	f.employees = slices.DeleteFunc(f.employees, func(e models.Employee) bool { return e.ID == id })
	f.mu.Unlock()
	f.done("deleteEmployee")
	return nil
}

func (f *fakeRemote) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	if err := f.begin("createPost"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	p := models.Post{ID: f.id(), EmployeeID: in.EmployeeID, Title: in.Title, Content: in.Content}
	for i := range f.employees {
		if f.employees[i].ID == in.EmployeeID {
			f.employees[i].Posts = append(f.employees[i].Posts, p)
		}
	}
	f.mu.Unlock()
	f.done("createPost")
	return &p, nil
}

func (f *fakeRemote) DeletePost(ctx context.Context, id int) error {
	if err := f.begin("deletePost"); err != nil {
		return err
	}
	f.removePost(id)
	f.done("deletePost")
	return nil
}

func (f *fakeRemote) removePost(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.employees {
		f.employees[i].Posts = slices.DeleteFunc(f.employees[i].Posts, func(p models.Post) bool { return p.ID == id })
	}
}

func (f *fakeRemote) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	if err := f.begin("createComment"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	cm := models.Comment{ID: f.id(), PostID: in.PostID, Content: in.Content}
	for i := range f.employees {
		for j := range f.employees[i].Posts {
			if f.employees[i].Posts[j].ID == in.PostID {
				f.employees[i].Posts[j].Comments = append(f.employees[i].Posts[j].Comments, cm)
			}
		}
	}
	f.mu.Unlock()
	f.done("createComment")
	return &cm, nil
}

func (f *fakeRemote) DeleteComment(ctx context.Context, id int) error {
	if err := f.begin("deleteComment"); err != nil {
		return err
	}
	f.mu.Lock()
	for i := range f.employees {
		for j := range f.employees[i].Posts {
			p := &f.employees[i].Posts[j]
			p.Comments = slices.DeleteFunc(p.Comments, func(c models.Comment) bool { return c.ID == id })
		}
	}
	f.mu.Unlock()
	f.done("deleteComment")
	return nil
}

func newTestReconciler(c client.Client) *Reconciler {
	l := logging.NewDiscardLogger()
	return NewReconciler(services.NewDataService(c, l, services.Options{}), l)
}

func comments(ids ...int) []models.Comment {
	out := make([]models.Comment, len(ids))
	for i, id := range ids {
		out[i] = models.Comment{ID: id, PostID: 10, Content: "c"}
	}
	return out
}

// board is one employee (1) with one post (10) carrying comments 1..3,
// plus employees 3 and 2.
func board() *fakeRemote {
	return newFakeRemote(
		models.Employee{ID: 3, FirstName: "Cid"},
		models.Employee{ID: 1, FirstName: "Ann", Posts: []models.Post{
			{ID: 10, EmployeeID: 1, Title: "Hello", Comments: comments(1, 2, 3)},
		}},
		models.Employee{ID: 2, FirstName: "Bob"},
	)
}

func validEmployee(name string) models.EmployeeInput {
	return models.EmployeeInput{
		FirstName: name, LastName: "Doe", Age: 30,
		PhoneNumber: "555-555-5555", Email: "jane@example.com", JobLocation: "Riga",
	}
}

func ids[T any](items []T, id func(T) int) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func employeeIDs(list []models.Employee) []int {
	return ids(list, func(e models.Employee) int { return e.ID })
}

func commentIDs(list []models.Comment) []int {
	return ids(list, func(c models.Comment) int { return c.ID })
}

func errorNotes(r *Reconciler) []Notification {
	var out []Notification
	for _, n := range r.Notifications() {
		if n.Kind == KindError {
			out = append(out, n)
		}
	}
	return out
}
