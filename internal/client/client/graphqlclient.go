package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/client/models"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/machinebox/graphql"
)

// GraphQLClient implements Client over HTTP.
type GraphQLClient struct {
	gql     *graphql.Client
	timeout time.Duration
	logger  logging.Logger
}

// NewGraphQLClient builds a client for endpoint. A zero timeout leaves
// requests bounded only by the caller's context.
func NewGraphQLClient(endpoint string, timeout time.Duration, l logging.Logger) *GraphQLClient {
	c := &GraphQLClient{
		gql:     graphql.NewClient(endpoint, graphql.WithHTTPClient(&http.Client{})),
		timeout: timeout,
		logger:  l.With("module", "graphql_client"),
	}
	c.gql.Log = func(s string) {
		c.logger.Debug(context.Background(), s)
	}
	return c
}

func (c *GraphQLClient) run(ctx context.Context, op string, req *graphql.Request, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err := c.gql.Run(ctx, req, resp)
	if err != nil {
		err = mapError(op, err)
		c.logger.Warn(ctx, "request failed", "op", op, "error", err, "duration", time.Since(start))
		return err
	}
	c.logger.Debug(ctx, "request done", "op", op, "duration", time.Since(start))
	return nil
}

func (c *GraphQLClient) Ping(ctx context.Context) error {
	var resp struct {
		Typename string `json:"__typename"`
	}
	return c.run(ctx, "ping", graphql.NewRequest(pingQuery), &resp)
}

func (c *GraphQLClient) GetEmployees(ctx context.Context) ([]models.Employee, error) {
	var resp struct {
		GetEmployees []models.Employee `json:"getEmployees"`
	}
	if err := c.run(ctx, "getEmployees", graphql.NewRequest(getEmployeesQuery), &resp); err != nil {
		return nil, err
	}
	if resp.GetEmployees == nil {
		resp.GetEmployees = []models.Employee{}
	}
	return resp.GetEmployees, nil
}

// GetEmployee fails with a RemoteError matching ErrNotFound when the
// server answers null.
func (c *GraphQLClient) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	req := graphql.NewRequest(getEmployeeQuery)
	req.Var("id", id)

	var resp struct {
		GetEmployee *models.Employee `json:"getEmployee"`
	}
	if err := c.run(ctx, "getEmployee", req, &resp); err != nil {
		return nil, err
	}
	if resp.GetEmployee == nil {
		return nil, &RemoteError{Op: "getEmployee", Message: fmt.Sprintf("Employee %d not found", id), Err: ErrNotFound}
	}
	return resp.GetEmployee, nil
}

func (c *GraphQLClient) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	req := graphql.NewRequest(createEmployeeMutation)
	req.Var("firstName", in.FirstName)
	req.Var("lastName", in.LastName)
	req.Var("age", in.Age)
	req.Var("phoneNumber", in.PhoneNumber)
	req.Var("email", in.Email)
	req.Var("jobLocation", in.JobLocation)

	var resp struct {
		CreateEmployee models.Employee `json:"createEmployee"`
	}
	if err := c.run(ctx, "createEmployee", req, &resp); err != nil {
		return nil, err
	}
	return &resp.CreateEmployee, nil
}

func (c *GraphQLClient) DeleteEmployee(ctx context.Context, id int) error {
	req := graphql.NewRequest(deleteEmployeeMutation)
	req.Var("id", id)

	var resp struct {
		DeleteEmployee bool `json:"deleteEmployee"`
	}
	if err := c.run(ctx, "deleteEmployee", req, &resp); err != nil {
		return err
	}
	if !resp.DeleteEmployee {
		return &RemoteError{Op: "deleteEmployee", Message: "Employee was not deleted", Err: ErrNotFound}
	}
	return nil
}

func (c *GraphQLClient) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	req := graphql.NewRequest(createPostMutation)
	req.Var("title", in.Title)
	req.Var("content", in.Content)
	req.Var("employeeId", in.EmployeeID)

	var resp struct {
		CreatePost models.Post `json:"createPost"`
	}
	if err := c.run(ctx, "createPost", req, &resp); err != nil {
		return nil, err
	}
	return &resp.CreatePost, nil
}

func (c *GraphQLClient) DeletePost(ctx context.Context, id int) error {
	req := graphql.NewRequest(deletePostMutation)
	req.Var("postId", id)

	var resp struct {
		DeletePost bool `json:"deletePost"`
	}
	if err := c.run(ctx, "deletePost", req, &resp); err != nil {
		return err
	}
	if !resp.DeletePost {
		return &RemoteError{Op: "deletePost", Message: "Post was not deleted", Err: ErrNotFound}
	}
	return nil
}

func (c *GraphQLClient) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	req := graphql.NewRequest(createCommentMutation)
	req.Var("content", in.Content)
	req.Var("postId", in.PostID)

	var resp struct {
		CreateComment models.Comment `json:"createComment"`
	}
	if err := c.run(ctx, "createComment", req, &resp); err != nil {
		return nil, err
	}
	return &resp.CreateComment, nil
}

func (c *GraphQLClient) DeleteComment(ctx context.Context, id int) error {
	req := graphql.NewRequest(deleteCommentMutation)
	req.Var("commentId", id)

	var resp struct {
		DeleteComment bool `json:"deleteComment"`
	}
	if err := c.run(ctx, "deleteComment", req, &resp); err != nil {
		return err
	}
	if !resp.DeleteComment {
		return &RemoteError{Op: "deleteComment", Message: "Comment was not deleted", Err: ErrNotFound}
	}
	return nil
}
