package cli

import (
	"bufio"
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/dmitrijs2005/employeeboard/internal/client/config"
	"github.com/dmitrijs2005/employeeboard/internal/client/services"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/dmitrijs2005/employeeboard/internal/server/gql"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
	srvservices "github.com/dmitrijs2005/employeeboard/internal/server/services"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeForm = "Jane\nDoe\n30\n555-555-5555\njane@example.com\nRiga\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	l := logging.NewDiscardLogger()
	m := repomanager.NewMemoryRepositoryManager()
	res := gql.NewResolver(srvservices.NewEmployeeService(m), srvservices.NewPostService(m), srvservices.NewCommentService(m), l)
	srv := httptest.NewServer(gql.NewHandler(res, l))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, srv *httptest.Server, input string) (*App, *bytes.Buffer) {
	t.Helper()

	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	l := logging.NewDiscardLogger()
	c := client.NewGraphQLClient(srv.URL+"/graphql", 2*time.Second, l)
	data := services.NewDataService(c, l, services.Options{CacheTTL: time.Minute})

	out := &bytes.Buffer{}
	a := newApp(&config.Config{}, data, l, bufio.NewReader(strings.NewReader(input)), out)
	t.Cleanup(a.shutdown)
	return a, out
}

func TestApp_AddEmployeeShowsNotificationAndTable(t *testing.T) {
	a, out := newTestApp(t, newTestServer(t), janeForm)
	ctx := context.Background()

	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), noEmployees)

	out.Reset()
	require.NoError(t, a.AddEmployee(ctx))
	s := out.String()
	assert.Contains(t, s, "Employee Added!")
	assert.Contains(t, s, "Jane Doe")
	assert.Contains(t, s, "jane@example.com")

	// notifications are shown once
	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.NotContains(t, out.String(), "Employee Added!")
}

func TestApp_AddEmployeeValidation(t *testing.T) {
	form := "J\nDoe\n10\n555\njane@example.com\nRiga\n"
	a, out := newTestApp(t, newTestServer(t), form)

	err := a.AddEmployee(context.Background())
	require.Error(t, err)

	s := out.String()
	assert.Contains(t, s, "Please fix the following:")
	assert.Contains(t, s, "First name must be at least 2 characters")
	assert.Contains(t, s, "Age must be at least 18")
	assert.Contains(t, s, "Invalid phone number format")
	assert.NotContains(t, s, "Employee Added!")
	assert.Empty(t, a.view.View().List.Items)
}

func TestApp_AddEmployeeBadAgeConsumesWholeForm(t *testing.T) {
	a, out := newTestApp(t, newTestServer(t), "Jane\nDoe\nabc\n555-555-5555\njane@example.com\nRiga\nnext\n")

	require.Error(t, a.AddEmployee(context.Background()))
	assert.Contains(t, out.String(), `age "abc" is not a number`)

	rest, err := a.reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "next\n", rest)
}

func TestApp_DeleteEmployeeConfirmation(t *testing.T) {
	a, out := newTestApp(t, newTestServer(t), janeForm+"n\ny\n")
	ctx := context.Background()

	require.NoError(t, a.List(ctx))
	require.NoError(t, a.AddEmployee(ctx))
	items := a.view.View().List.Items
	require.Len(t, items, 1)
	id := items[0].ID

	out.Reset()
	require.NoError(t, a.DeleteEmployee(ctx, id))
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Len(t, a.view.View().List.Items, 1)

	out.Reset()
	require.NoError(t, a.DeleteEmployee(ctx, id))
	assert.Contains(t, out.String(), "Employee has been deleted!")
	assert.Contains(t, out.String(), noEmployees)
	assert.Empty(t, a.view.View().List.Items)
}

func TestApp_PostAndCommentFlow(t *testing.T) {
	input := janeForm +
		"Hello\n" + "first line\nsecond line\n\n" +
		"Nice post\n\n" +
		"y\n"
	a, out := newTestApp(t, newTestServer(t), input)
	ctx := context.Background()

	require.NoError(t, a.List(ctx))
	require.NoError(t, a.AddEmployee(ctx))
	empID := a.view.View().List.Items[0].ID

	out.Reset()
	require.NoError(t, a.Open(ctx, empID))
	assert.Contains(t, out.String(), noPosts)

	out.Reset()
	require.NoError(t, a.AddPost(ctx))
	assert.Contains(t, out.String(), "Post Created!")
	assert.Contains(t, out.String(), "Hello")

	posts := a.view.View().Detail.Employee.Posts
	require.Len(t, posts, 1)
	assert.Equal(t, "first line\nsecond line", posts[0].Content)

	out.Reset()
	require.NoError(t, a.ViewPost(ctx, posts[0].ID))
	assert.Contains(t, out.String(), noComments)
	assert.Contains(t, a.getStatus(), "post")

	out.Reset()
	require.NoError(t, a.AddComment(ctx))
	assert.Contains(t, out.String(), "Comment added successfully")
	assert.Contains(t, out.String(), "Nice post")

	comments := a.view.View().Detail.Post.Comments
	require.Len(t, comments, 1)

	out.Reset()
	require.NoError(t, a.DeleteComment(ctx, comments[0].ID))
	assert.Contains(t, out.String(), "Comment Deleted!")
	assert.Contains(t, out.String(), noComments)

	out.Reset()
	require.NoError(t, a.Back(ctx))
	assert.Contains(t, out.String(), "Posts")
	require.NoError(t, a.Back(ctx))
	assert.Nil(t, a.view.View().Detail)
	assert.Equal(t, "(employees)", a.getStatus())
}

func TestApp_NavigationErrors(t *testing.T) {
	a, out := newTestApp(t, newTestServer(t), "")
	ctx := context.Background()

	assert.Error(t, a.AddPost(ctx))
	assert.Contains(t, out.String(), "Open an employee first")

	out.Reset()
	assert.Error(t, a.AddComment(ctx))
	assert.Contains(t, out.String(), "Open a post first")

	out.Reset()
	assert.Error(t, a.ViewPost(ctx, 1))
	assert.Contains(t, out.String(), "Open an employee first")
}

func TestApp_OpenMissingEmployeeRendersError(t *testing.T) {
	a, out := newTestApp(t, newTestServer(t), "")

	assert.Error(t, a.Open(context.Background(), 404))
	assert.Contains(t, out.String(), "Error:")
	assert.Equal(t, "(employee 404)", a.getStatus())
}

func TestApp_SetModeAndStatus(t *testing.T) {
	a, _ := newTestApp(t, newTestServer(t), "")

	assert.Equal(t, Mode(""), a.Mode())
	a.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, a.Mode())
	assert.Equal(t, "(employees online)", a.getStatus())
	a.setMode(ModeOffline)
	assert.Equal(t, "(employees offline)", a.getStatus())
}

func TestApp_OnlineStatusWatcher(t *testing.T) {
	srv := newTestServer(t)
	a, _ := newTestApp(t, srv, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return a.Mode() == ModeOnline }, 2*time.Second, 10*time.Millisecond)

	srv.Close()
	assert.Eventually(t, func() bool { return a.Mode() == ModeOffline }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestApp_RunWithWatcherDisabled(t *testing.T) {
	capturePrintln(t)
	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	srv := newTestServer(t)
	a, out := newTestApp(t, srv, "exit\n")

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, ModeDisabled, a.Mode())
	assert.Contains(t, out.String(), "Welcome to employeeboard")
	assert.Contains(t, out.String(), noEmployees)
}

func TestNewApp(t *testing.T) {
	_, err := NewApp(&config.Config{ServerEndpointAddr: "not a url"})
	assert.Error(t, err)

	_, err = NewApp(&config.Config{ServerEndpointAddr: "127.0.0.1:8080"})
	assert.Error(t, err)

	a, err := NewApp(&config.Config{
		ServerEndpointAddr: "http://127.0.0.1:8080/graphql",
		RequestTimeout:     time.Second,
		LogFile:            filepath.Join(t.TempDir(), "client.log"),
	})
	require.NoError(t, err)
	assert.NotNil(t, a.view)
	assert.NotNil(t, a.closer)
	a.shutdown()
}
