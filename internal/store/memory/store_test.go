package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gulcan00/blog-api/internal/store"
)

// The store is exercised through the store.Store interface, the same
// way the application wires it.
func TestStoreContract(t *testing.T) {
	var st store.Store = New()
	ctx := context.Background()

	require.NoError(t, st.Ping(ctx))

	user, err := st.Users().Create(ctx, store.CreateUserInput{
		Username: "ada", Email: "ada@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)

	got, err := st.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)

	post, err := st.Posts().Create(ctx, "title", "content", user.ID)
	require.NoError(t, err)

	comments, err := st.Comments().ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.NoError(t, st.Close())
}

func TestPostDeleteCascadesComments(t *testing.T) {
	st := New()
	ctx := context.Background()

	user, err := st.Users().Create(ctx, store.CreateUserInput{
		Username: "ada", Email: "ada@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)

	post, err := st.Posts().Create(ctx, "title", "content", user.ID)
	require.NoError(t, err)
	comment, err := st.Comments().Create(ctx, post.ID, user.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, st.Posts().Delete(ctx, post.ID))

	_, err = st.Comments().GetByID(ctx, comment.ID)
	assert.True(t, store.IsNotFound(err))
}
