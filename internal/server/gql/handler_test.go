package gql

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/employeeboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	r := NewResolver(services.NewEmployeeService(m), services.NewPostService(m), services.NewCommentService(m), logging.NewDiscardLogger())
	srv := httptest.NewServer(NewHandler(r, logging.NewDiscardLogger()))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, query string, vars map[string]any, out any) gqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/graphql", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	var r gqlResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	if out != nil && len(r.Data) > 0 && string(r.Data) != "null" {
		require.NoError(t, json.Unmarshal(r.Data, out))
	}
	return r
}

const createEmployee = `mutation($firstName: String!, $lastName: String!, $age: Int!, $phoneNumber: String!, $email: String!, $jobLocation: String!) {
	createEmployee(firstName: $firstName, lastName: $lastName, age: $age, phoneNumber: $phoneNumber, email: $email, jobLocation: $jobLocation) {
		id firstName createdAt
	}
}`

func addEmployee(t *testing.T, srv *httptest.Server, name string) int {
	t.Helper()
	var out struct {
		CreateEmployee struct {
			ID        int    `json:"id"`
			FirstName string `json:"firstName"`
			CreatedAt string `json:"createdAt"`
		} `json:"createEmployee"`
	}
	r := do(t, srv, createEmployee, map[string]any{
		"firstName": name, "lastName": "Doe", "age": 30,
		"phoneNumber": "555-555-5555", "email": "x@example.com", "jobLocation": "Riga",
	}, &out)
	require.Empty(t, r.Errors)
	assert.Equal(t, name, out.CreateEmployee.FirstName)
	assert.NotEmpty(t, out.CreateEmployee.CreatedAt)
	return out.CreateEmployee.ID
}

func TestHandler_EmployeeLifecycle(t *testing.T) {
	srv := newTestServer(t)

	a := addEmployee(t, srv, "Ann")
	b := addEmployee(t, srv, "Bob")
	assert.Less(t, a, b)

	var list struct {
		GetEmployees []struct {
			ID        int    `json:"id"`
			FirstName string `json:"firstName"`
		} `json:"getEmployees"`
	}
	r := do(t, srv, `{ getEmployees { id firstName } }`, nil, &list)
	require.Empty(t, r.Errors)
	require.Len(t, list.GetEmployees, 2)
	assert.Equal(t, "Ann", list.GetEmployees[0].FirstName)

	var del struct {
		DeleteEmployee bool `json:"deleteEmployee"`
	}
	r = do(t, srv, `mutation($id: Int!) { deleteEmployee(id: $id) }`, map[string]any{"id": a}, &del)
	require.Empty(t, r.Errors)
	assert.True(t, del.DeleteEmployee)

	r = do(t, srv, `mutation($id: Int!) { deleteEmployee(id: $id) }`, map[string]any{"id": a}, &del)
	require.Empty(t, r.Errors)
	assert.False(t, del.DeleteEmployee)
}

func TestHandler_GetEmployeeUnknownIsNull(t *testing.T) {
	srv := newTestServer(t)

	r := do(t, srv, `{ getEmployee(id: 404) { id } }`, nil, nil)
	require.Empty(t, r.Errors)
	assert.JSONEq(t, `{"getEmployee": null}`, string(r.Data))
}

func TestHandler_NestedPostsAndComments(t *testing.T) {
	srv := newTestServer(t)
	id := addEmployee(t, srv, "Ann")

	var post struct {
		CreatePost struct {
			ID         int `json:"id"`
			EmployeeID int `json:"employeeId"`
		} `json:"createPost"`
	}
	r := do(t, srv, `mutation($e: Int!) { createPost(title: "T", content: "C", employeeId: $e) { id employeeId } }`,
		map[string]any{"e": id}, &post)
	require.Empty(t, r.Errors)
	assert.Equal(t, id, post.CreatePost.EmployeeID)

	for _, text := range []string{"first", "second"} {
		r = do(t, srv, `mutation($p: Int!, $c: String!) { createComment(content: $c, postId: $p) { id postId } }`,
			map[string]any{"p": post.CreatePost.ID, "c": text}, nil)
		require.Empty(t, r.Errors)
	}

	var detail struct {
		GetEmployee struct {
			Posts []struct {
				ID       int `json:"id"`
				Comments []struct {
					Content string `json:"content"`
				} `json:"comments"`
			} `json:"posts"`
		} `json:"getEmployee"`
	}
	r = do(t, srv, `query($id: Int!) { getEmployee(id: $id) { posts { id comments { content } } } }`,
		map[string]any{"id": id}, &detail)
	require.Empty(t, r.Errors)
	require.Len(t, detail.GetEmployee.Posts, 1)
	comments := detail.GetEmployee.Posts[0].Comments
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}

func TestHandler_CreatePostForMissingEmployee(t *testing.T) {
	srv := newTestServer(t)

	r := do(t, srv, `mutation { createPost(title: "T", content: "C", employeeId: 77) { id } }`, nil, nil)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Message, "not found")
}

func TestHandler_ValidationErrorSurfaces(t *testing.T) {
	srv := newTestServer(t)

	r := do(t, srv, `mutation { createComment(content: "", postId: 1) { id } }`, nil, nil)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Message, "validation error")
}

func TestHandler_RejectsGet(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/graphql")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandler_KeepsCallerRequestID(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/graphql", bytes.NewBufferString(`{"query":"{ __typename }"}`))
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}
