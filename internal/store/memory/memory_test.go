package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/types"
)

func TestJobsListedByTitle(t *testing.T) {
	ctx := context.Background()
	jobs := NewStore().Jobs()

	for _, title := range []string{"Frontend", "Backend", "DevOps"} {
		_, err := jobs.Create(ctx, types.Job{Title: title, ImageURL: "https://img.example.com/x.png"})
		require.NoError(t, err)
	}

	list, err := jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Backend", list[0].Title)
	assert.Equal(t, "DevOps", list[1].Title)
	assert.Equal(t, "Frontend", list[2].Title)
	assert.False(t, list[0].CreatedDate.IsZero())
}

func TestSubJobScopedToParent(t *testing.T) {
	ctx := context.Background()
	subJobs := NewStore().SubJobs()

	created, err := subJobs.Create(ctx, types.SubJob{Title: "React", MainJobCategory: "job-1"})
	require.NoError(t, err)

	_, err = subJobs.Get(ctx, "job-2", created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := subJobs.Get(ctx, "job-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestQuestionsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	questions := NewStore().Questions()

	var ids []string
	for _, title := range []string{"Zeta", "Alpha"} {
		q, err := questions.Create(ctx, types.Question{Title: title, MainJobCategory: "j", MainSubJobCategory: "s"})
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}
	_, err := questions.Create(ctx, types.Question{Title: "Other", MainJobCategory: "j", MainSubJobCategory: "t"})
	require.NoError(t, err)

	list, err := questions.List(ctx, "j", "s")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)

	require.NoError(t, questions.Delete(ctx, ids[0]))
	assert.ErrorIs(t, questions.Delete(ctx, ids[0]), store.ErrNotFound)

	list, err = questions.List(ctx, "j", "s")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ids[1], list[0].ID)
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	_, err := users.Create(ctx, types.User{Username: "ana", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = users.Create(ctx, types.User{Username: "bob", Email: "a@x.com"})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = users.Create(ctx, types.User{Username: "ana", Email: "b@x.com"})
	assert.ErrorIs(t, err, store.ErrConflict)

	exists, err := users.ExistsByUsernameOrEmail(ctx, "someone", "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFavoritesAreASet(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	user, err := users.Create(ctx, types.User{Username: "ana", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = users.AddFavorite(ctx, user.ID, "q1")
	require.NoError(t, err)
	updated, err := users.AddFavorite(ctx, user.ID, "q1")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, updated.Favorites)

	updated, err = users.RemoveFavorite(ctx, user.ID, "q2")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, updated.Favorites)

	updated, err = users.RemoveFavorite(ctx, user.ID, "q1")
	require.NoError(t, err)
	assert.Empty(t, updated.Favorites)

	_, err = users.AddQuestion(ctx, "missing", "q1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	user, err := users.Create(ctx, types.User{Username: "ana", Email: "a@x.com"})
	require.NoError(t, err)
	updated, err := users.AddQuestion(ctx, user.ID, "q1")
	require.NoError(t, err)
	updated.Questions[0] = "tampered"

	fresh, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, fresh.Questions)
}
