package slot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, PostsKey, `[]`))
	v, ok, err := s.Get(ctx, PostsKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Delete(ctx, PostsKey))
	_, ok, _ = s.Get(ctx, PostsKey)
	assert.False(t, ok)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Set(ctx, PostsKey, `[]`), ErrStoreClosed)
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "share_theme_v8:100001", UserKey(ThemeKey, "100001"))
}
