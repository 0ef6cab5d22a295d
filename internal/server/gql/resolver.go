// Package gql exposes the employee board over GraphQL on HTTP.
package gql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/common"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/dmitrijs2005/employeeboard/internal/server/models"
	"github.com/dmitrijs2005/employeeboard/internal/server/services"
)

// Resolver is the root resolver for both queries and mutations.
type Resolver struct {
	employees *services.EmployeeService
	posts     *services.PostService
	comments  *services.CommentService
	logger    logging.Logger
}

func NewResolver(es *services.EmployeeService, ps *services.PostService, cs *services.CommentService, l logging.Logger) *Resolver {
	return &Resolver{employees: es, posts: ps, comments: cs, logger: l}
}

// publicError keeps validation and not-found messages and hides the rest.
func (r *Resolver) publicError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return err
	case errors.Is(err, common.ErrNotFound):
		return errors.New(op + ": not found")
	default:
		r.logger.Error(ctx, "resolver failed", "op", op, "error", err)
		return common.ErrInternal
	}
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func (r *Resolver) GetEmployees(ctx context.Context) ([]*employeeResolver, error) {
	list, err := r.employees.List(ctx)
	if err != nil {
		return nil, r.publicError(ctx, "getEmployees", err)
	}
	result := make([]*employeeResolver, 0, len(list))
	for _, e := range list {
		result = append(result, &employeeResolver{root: r, e: e})
	}
	return result, nil
}

// GetEmployee resolves to null for an unknown id.
func (r *Resolver) GetEmployee(ctx context.Context, args struct{ ID int32 }) (*employeeResolver, error) {
	e, err := r.employees.Get(ctx, int64(args.ID))
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.publicError(ctx, "getEmployee", err)
	}
	return &employeeResolver{root: r, e: e}, nil
}

type createEmployeeArgs struct {
	FirstName   string
	LastName    string
	Age         int32
	PhoneNumber string
	Email       string
	JobLocation string
}

func (r *Resolver) CreateEmployee(ctx context.Context, args createEmployeeArgs) (*employeeResolver, error) {
	e, err := r.employees.Create(ctx, services.EmployeeInput{
		FirstName:   args.FirstName,
		LastName:    args.LastName,
		Age:         int(args.Age),
		PhoneNumber: args.PhoneNumber,
		Email:       args.Email,
		JobLocation: args.JobLocation,
	})
	if err != nil {
		return nil, r.publicError(ctx, "createEmployee", err)
	}
	r.logger.Info(ctx, "employee created", "id", e.ID)
	return &employeeResolver{root: r, e: e}, nil
}

func (r *Resolver) DeleteEmployee(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	ok, err := r.employees.Delete(ctx, int64(args.ID))
	if err != nil {
		return false, r.publicError(ctx, "deleteEmployee", err)
	}
	r.logger.Info(ctx, "employee delete", "id", args.ID, "deleted", ok)
	return ok, nil
}

type createPostArgs struct {
	Title      string
	Content    string
	EmployeeID int32
}

func (r *Resolver) CreatePost(ctx context.Context, args createPostArgs) (*postResolver, error) {
	p, err := r.posts.Create(ctx, services.PostInput{
		EmployeeID: int64(args.EmployeeID),
		Title:      args.Title,
		Content:    args.Content,
	})
	if err != nil {
		return nil, r.publicError(ctx, "createPost", err)
	}
	r.logger.Info(ctx, "post created", "id", p.ID, "employee_id", p.EmployeeID)
	return &postResolver{root: r, p: p}, nil
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	ok, err := r.posts.Delete(ctx, int64(args.ID))
	if err != nil {
		return false, r.publicError(ctx, "deletePost", err)
	}
	r.logger.Info(ctx, "post delete", "id", args.ID, "deleted", ok)
	return ok, nil
}

type createCommentArgs struct {
	Content string
	PostID  int32
}

func (r *Resolver) CreateComment(ctx context.Context, args createCommentArgs) (*commentResolver, error) {
	c, err := r.comments.Create(ctx, services.CommentInput{PostID: int64(args.PostID), Content: args.Content})
	if err != nil {
		return nil, r.publicError(ctx, "createComment", err)
	}
	r.logger.Info(ctx, "comment created", "id", c.ID, "post_id", c.PostID)
	return &commentResolver{c: c}, nil
}

func (r *Resolver) DeleteComment(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	ok, err := r.comments.Delete(ctx, int64(args.ID))
	if err != nil {
		return false, r.publicError(ctx, "deleteComment", err)
	}
	r.logger.Info(ctx, "comment delete", "id", args.ID, "deleted", ok)
	return ok, nil
}

type employeeResolver struct {
	root *Resolver
	e    *models.Employee
}

func (r *employeeResolver) ID() int32           { return int32(r.e.ID) }
func (r *employeeResolver) FirstName() string   { return r.e.FirstName }
func (r *employeeResolver) LastName() string    { return r.e.LastName }
func (r *employeeResolver) Age() int32          { return int32(r.e.Age) }
func (r *employeeResolver) PhoneNumber() string { return r.e.PhoneNumber }
func (r *employeeResolver) Email() string       { return r.e.Email }
func (r *employeeResolver) JobLocation() string { return r.e.JobLocation }
func (r *employeeResolver) CreatedAt() string   { return millis(r.e.CreatedAt) }

func (r *employeeResolver) Posts(ctx context.Context) ([]*postResolver, error) {
	list, err := r.root.posts.ListByEmployee(ctx, r.e.ID)
	if err != nil {
		return nil, r.root.publicError(ctx, "posts", err)
	}
	result := make([]*postResolver, 0, len(list))
	for _, p := range list {
		result = append(result, &postResolver{root: r.root, p: p})
	}
	return result, nil
}

type postResolver struct {
	root *Resolver
	p    *models.Post
}

func (r *postResolver) ID() int32         { return int32(r.p.ID) }
func (r *postResolver) EmployeeID() int32 { return int32(r.p.EmployeeID) }
func (r *postResolver) Title() string     { return r.p.Title }
func (r *postResolver) Content() string   { return r.p.Content }
func (r *postResolver) CreatedAt() string { return millis(r.p.CreatedAt) }

func (r *postResolver) Comments(ctx context.Context) ([]*commentResolver, error) {
	list, err := r.root.comments.ListByPost(ctx, r.p.ID)
	if err != nil {
		return nil, r.root.publicError(ctx, "comments", err)
	}
	result := make([]*commentResolver, 0, len(list))
	for _, c := range list {
		result = append(result, &commentResolver{c: c})
	}
	return result, nil
}

type commentResolver struct {
	c *models.Comment
}

func (r *commentResolver) ID() int32         { return int32(r.c.ID) }
func (r *commentResolver) PostID() int32     { return int32(r.c.PostID) }
func (r *commentResolver) Content() string   { return r.c.Content }
func (r *commentResolver) CreatedAt() string { return millis(r.c.CreatedAt) }
