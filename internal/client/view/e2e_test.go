package view

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/employeeboard/internal/client/client"
	"github.com/dmitrijs2005/employeeboard/internal/client/services"
	"github.com/dmitrijs2005/employeeboard/internal/logging"
	"github.com/dmitrijs2005/employeeboard/internal/server/gql"
	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/repomanager"
	srvservices "github.com/dmitrijs2005/employeeboard/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceReconciler(t *testing.T) *Reconciler {
	t.Helper()
	l := logging.NewDiscardLogger()
	m := repomanager.NewMemoryRepositoryManager()
	res := gql.NewResolver(srvservices.NewEmployeeService(m), srvservices.NewPostService(m), srvservices.NewCommentService(m), l)
	srv := httptest.NewServer(gql.NewHandler(res, l))
	t.Cleanup(srv.Close)

	c := client.NewGraphQLClient(srv.URL+"/graphql", 2*time.Second, l)
	r := NewReconciler(services.NewDataService(c, l, services.Options{CacheTTL: time.Minute}), l)
	t.Cleanup(r.Close)
	return r
}

func TestReferenceServer_FullLifecycle(t *testing.T) {
	r := newReferenceReconciler(t)
	ctx := context.Background()

	require.NoError(t, r.LoadEmployees(ctx))
	assert.Empty(t, r.View().List.Items)

	first, err := r.CreateEmployee(ctx, validEmployee("Ann"))
	require.NoError(t, err)
	second, err := r.CreateEmployee(ctx, validEmployee("Bob"))
	require.NoError(t, err)
	assert.Equal(t, []int{second.ID, first.ID}, employeeIDs(r.View().List.Items))

	require.NoError(t, r.OpenEmployee(ctx, first.ID))
	post, err := r.CreatePost(ctx, "Hello", "World")
	require.NoError(t, err)
	require.NoError(t, r.SelectPost(post.ID))
	assert.Empty(t, r.View().Detail.Post.Comments)

	c1, err := r.CreateComment(ctx, "one")
	require.NoError(t, err)
	c2, err := r.CreateComment(ctx, "two")
	require.NoError(t, err)
	c3, err := r.CreateComment(ctx, "three")
	require.NoError(t, err)

	d := r.View().Detail
	assert.Equal(t, []int{c3.ID, c2.ID, c1.ID}, commentIDs(d.Post.Comments))
	for _, c := range d.Post.Comments {
		assert.Equal(t, post.ID, c.PostID)
	}

	require.NoError(t, r.DeleteComment(ctx, c2.ID))
	assert.Equal(t, []int{c3.ID, c1.ID}, commentIDs(r.View().Detail.Post.Comments))

	require.NoError(t, r.DeletePost(ctx, post.ID))
	d = r.View().Detail
	assert.Nil(t, d.Post)
	assert.Empty(t, d.Employee.Posts)

	require.NoError(t, r.DeleteEmployee(ctx, first.ID))
	v := r.View()
	assert.Nil(t, v.Detail)
	assert.Equal(t, []int{second.ID}, employeeIDs(v.List.Items))
	assert.Empty(t, errorNotes(r))
}

func TestReferenceServer_DeleteMissingSurfacesRemoteError(t *testing.T) {
	r := newReferenceReconciler(t)
	ctx := context.Background()
	require.NoError(t, r.LoadEmployees(ctx))

	err := r.DeleteEmployee(ctx, 404)
	require.ErrorIs(t, err, client.ErrNotFound)

	notes := errorNotes(r)
	require.Len(t, notes, 1)
	assert.Equal(t, "Employee was not deleted", notes[0].Message)
}
