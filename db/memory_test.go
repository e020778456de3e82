// db/memory_test.go
package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "projects", "p1", []byte(`{"name":"a"}`)))

	got, ok, err := kv.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"name":"a"}`), got)

	_, ok, err = kv.Get(ctx, "projects", "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = kv.Get(ctx, "assessments", "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryKVDeleteAndList(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "projects", "p1", []byte("a")))
	require.NoError(t, kv.Put(ctx, "projects", "p2", []byte("b")))

	all, err := kv.List(ctx, "projects")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, kv.Delete(ctx, "projects", "p1"))
	all, err = kv.List(ctx, "projects")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// Deleting a missing key is a no-op.
	require.NoError(t, kv.Delete(ctx, "projects", "gone"))
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, kv.Put(ctx, "projects", "p1", value))
	value[0] = 'X'

	got, _, err := kv.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, _, err := kv.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
