package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titoscorner/backend/internal/cache"
	"github.com/titoscorner/backend/internal/database/testutil"
)

func newBlogService(t *testing.T) (*BlogService, *testCacheStore) {
	t.Helper()
	db := testutil.MustOpenTestDB(t)
	mgr, store := newTestCache(t)
	svc, err := NewBlogService(db, mgr)
	require.NoError(t, err)
	return svc, store
}

func TestBlogServiceCRUD(t *testing.T) {
	svc, _ := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBlogInput{
		Headline:    "A week in Lagos",
		Description: "Travel notes",
		Author:      "Tito",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "A week in Lagos", fetched.Headline)

	updated, err := svc.Update(ctx, created.ID, UpdateBlogInput{
		Headline: strptr("Two weeks in Lagos"),
	})
	require.NoError(t, err)
	require.Equal(t, "Two weeks in Lagos", updated.Headline)
	require.Equal(t, "Travel notes", updated.Description, "unset fields keep their value")

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrBlogNotFound)
}

func TestBlogServiceGetUnknownID(t *testing.T) {
	svc, _ := newBlogService(t)

	_, err := svc.Get(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrBlogNotFound)
}

func TestBlogServiceDeleteReportsNotFoundBothTimes(t *testing.T) {
	svc, _ := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBlogInput{Headline: "h", Description: "d", Author: "a"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrBlogNotFound)
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrBlogNotFound)
}

func TestBlogServicePagination(t *testing.T) {
	svc, _ := newBlogService(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, CreateBlogInput{
			Headline:    fmt.Sprintf("post %d", i),
			Description: "body",
			Author:      "Tito",
		})
		require.NoError(t, err)
	}

	page1, err := svc.List(ctx, cache.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page1.Items, 10)
	require.Equal(t, int64(12), page1.Pagination.TotalItems)
	require.Equal(t, 2, page1.Pagination.TotalPages)

	page2, err := svc.List(ctx, cache.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page2.Items, 2)
}

func TestBlogServiceListDefaultsAndEmpty(t *testing.T) {
	svc, _ := newBlogService(t)

	result, err := svc.List(context.Background(), cache.PageRequest{})
	require.NoError(t, err)
	require.NotNil(t, result.Items)
	require.Empty(t, result.Items)
	require.Equal(t, 1, result.Pagination.Page)
	require.Equal(t, DefaultListLimit, result.Pagination.Limit)
	require.Equal(t, 0, result.Pagination.TotalPages)
}

func TestBlogServiceUpdateNeverServesStaleCache(t *testing.T) {
	svc, store := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateBlogInput{Headline: "old", Description: "d", Author: "a"})
	require.NoError(t, err)

	// Warm both the record and a listing page.
	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.List(ctx, cache.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.NotZero(t, store.len())

	_, err = svc.Update(ctx, created.ID, UpdateBlogInput{Headline: strptr("new")})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "new", fetched.Headline)

	listed, err := svc.List(ctx, cache.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, "new", listed.Items[0].Headline)
}

func TestBlogServiceListWarmHitMatchesCold(t *testing.T) {
	svc, _ := newBlogService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, CreateBlogInput{
			Headline:    fmt.Sprintf("post %d", i),
			Description: "body",
			Author:      "Tito",
		})
		require.NoError(t, err)
	}

	cold, err := svc.List(ctx, cache.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	warm, err := svc.List(ctx, cache.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, len(cold.Items), len(warm.Items))
	require.Equal(t, cold.Pagination, warm.Pagination)
	for i := range cold.Items {
		require.Equal(t, cold.Items[i].ID, warm.Items[i].ID)
		require.Equal(t, cold.Items[i].Headline, warm.Items[i].Headline)
	}
}
