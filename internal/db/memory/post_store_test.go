package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"Inkwell/internal/core/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostStore_CreateAssignsIDAndTimestamps(t *testing.T) {
	store := NewPostStore()
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return fixed })

	ctx := context.Background()
	first, err := store.Create(ctx, posts.CreatePostRequest{Title: "New Post", Content: "Content"}, "1")
	require.NoError(t, err)
	second, err := store.Create(ctx, posts.CreatePostRequest{Title: "Another", Content: "More"}, "2")
	require.NoError(t, err)

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, fixed, first.CreatedAt)
	assert.Equal(t, fixed, first.UpdatedAt)
	assert.Equal(t, "1", first.AuthorID)
}

func TestPostStore_AllPreservesInsertionOrder(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.Create(ctx, posts.CreatePostRequest{Title: title, Content: "x"}, "1")
		require.NoError(t, err)
	}

	all, err = store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Title)
	assert.Equal(t, "c", all[2].Title)
}

func TestPostStore_FindReturnsCopy(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()
	created, err := store.Create(ctx, posts.CreatePostRequest{Title: "t", Content: "c"}, "1")
	require.NoError(t, err)

	found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	found.Title = "mutated by caller"

	again, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", again.Title)
}

func TestPostStore_UpdateMergesAndRefreshes(t *testing.T) {
	store := NewPostStore()
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return created })

	ctx := context.Background()
	p, err := store.Create(ctx, posts.CreatePostRequest{Title: "Test Post", Content: "Content"}, "1")
	require.NoError(t, err)

	later := created.Add(time.Hour)
	store.SetClock(func() time.Time { return later })

	title := "Updated Post"
	updated, err := store.Update(ctx, p.ID, posts.UpdatePostRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Updated Post", updated.Title)
	assert.Equal(t, "Content", updated.Content)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, "1", updated.AuthorID)
}

func TestPostStore_MissingIDIsNotFound(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()

	_, err := store.Find(ctx, "unknown")
	assert.ErrorIs(t, err, posts.ErrNotFound)

	_, err = store.Update(ctx, "unknown", posts.UpdatePostRequest{})
	assert.ErrorIs(t, err, posts.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "unknown"), posts.ErrNotFound)
}

func TestPostStore_DeleteRemovesPost(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()
	p, err := store.Create(ctx, posts.CreatePostRequest{Title: "t", Content: "c"}, "1")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, p.ID))

	_, err = store.Find(ctx, p.ID)
	assert.ErrorIs(t, err, posts.ErrNotFound)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Deleting twice fails rather than silently succeeding
	assert.ErrorIs(t, store.Delete(ctx, p.ID), posts.ErrNotFound)
}

func TestPostStore_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	store := NewPostStore()
	ctx := context.Background()

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := store.Create(ctx, posts.CreatePostRequest{Title: "t", Content: "c"}, "1")
			if err == nil {
				ids <- p.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
