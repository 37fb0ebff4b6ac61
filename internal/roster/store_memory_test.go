package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitledger/pkg/platform/sentinel"
)

func intPtr(v int) *int { return &v }

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("upsert and get round-trip", func(t *testing.T) {
		store := NewInMemoryStore()
		student := Student{
			ID:        "s1",
			Name:      "Asha Rao",
			StudentID: "BT-101",
			Course:    "B.Tech",
			Year:      1,
			Semester:  intPtr(2),
			Branch:    "CSE",
			Items:     map[string]bool{"graph_book": true},
		}
		require.NoError(t, store.Upsert(ctx, student))

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, student, got)
	})

	t.Run("get unknown id returns not found", func(t *testing.T) {
		store := NewInMemoryStore()
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("list returns students in stable ID order", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Upsert(ctx, Student{ID: "s2", Name: "B"}))
		require.NoError(t, store.Upsert(ctx, Student{ID: "s1", Name: "A"}))

		students, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, students, 2)
		assert.Equal(t, "s1", students[0].ID)
		assert.Equal(t, "s2", students[1].ID)
	})

	t.Run("list returns copies, not aliases", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Upsert(ctx, Student{
			ID:    "s1",
			Items: map[string]bool{"graph_book": true},
		}))

		first, err := store.List(ctx)
		require.NoError(t, err)
		first[0].Items["graph_book"] = false

		second, err := store.List(ctx)
		require.NoError(t, err)
		assert.True(t, second[0].Items["graph_book"], "store contents must not be mutable through snapshots")
	})

	t.Run("delete removes student", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Upsert(ctx, Student{ID: "s1"}))
		require.NoError(t, store.Delete(ctx, "s1"))

		_, err := store.Get(ctx, "s1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "s1"), sentinel.ErrNotFound)
	})
}
