package repository

import (
	"context"
	"testing"
	"time"

	"github.com/crmhub/crm/backend/go-services/internal/document"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCreateGetList(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	d := &document.Request{Name: "report", Content: "hello"}
	id, err := r.Create(ctx, d)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, id, d.ID)
	require.False(t, d.CreatedAt.IsZero())

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Content)

	// returned copies do not alias the store
	got.Content = "changed"
	again, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "hello", again.Content)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = r.Get(ctx, "missing")
	require.ErrorIs(t, err, document.ErrNotFound)
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	for _, n := range []string{"first", "second", "third"} {
		_, err := r.Create(ctx, &document.Request{Name: n, Content: "x"})
		require.NoError(t, err)
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "third", list[0].Name)
	require.Equal(t, "first", list[2].Name)
}

func TestMemoryRepoRejectsTakenID(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	first := &document.Request{Name: "report", Content: "original"}
	id, err := r.Create(ctx, first)
	require.NoError(t, err)

	dup := &document.Request{ID: id, Name: "evil", Content: "overwritten"}
	_, err = r.Create(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicateID)
	require.True(t, dup.CreatedAt.IsZero())

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "original", got.Content)

	// a fresh caller-chosen id is kept
	own := &document.Request{ID: "fixed-id", Name: "mine", Content: "x"}
	id, err = r.Create(ctx, own)
	require.NoError(t, err)
	require.Equal(t, "fixed-id", id)
}
