package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/epcrisk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Harbour Road", testutil.WithDescription("Bridge and approach works"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Harbour Road", fetched.Name)
	assert.Equal(t, "Bridge and approach works", fetched.Description)
	assert.True(t, proj.CreatedAt.Equal(fetched.CreatedAt))
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Substation", testutil.WithShortID("SUB01"))
	require.NoError(t, repo.Create(ctx, proj))

	// Case-insensitive lookup.
	fetched, err := repo.GetByShortID(ctx, "sub01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "SUB01", fetched.ShortID)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "project not found")
}

func TestProjectRepo_DuplicateShortID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("One", testutil.WithShortID("DUP01"))))
	err := repo.Create(ctx, testutil.NewTestProject("Two", testutil.WithShortID("DUP01")))
	assert.ErrorIs(t, err, ErrDuplicateShortID)
}

func TestProjectRepo_ListAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	a := testutil.NewTestProject("Alpha")
	b := testutil.NewTestProject("Beta")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	b.Name = "Beta Phase 2"
	require.NoError(t, repo.Update(ctx, b))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	names := []string{projects[0].Name, projects[1].Name}
	assert.ElementsMatch(t, []string{"Alpha", "Beta Phase 2"}, names)
}

func TestProjectRepo_Delete_CascadesToMilestonesAndLogs(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	milestones := NewSQLiteMilestoneRepo(db)
	logs := NewSQLiteSpendLogRepo(db)

	proj := testutil.NewTestProject("Cascade")
	require.NoError(t, projects.Create(ctx, proj))
	m := testutil.NewTestMilestone(proj.ID, "Foundations", testutil.WithSeq(1))
	require.NoError(t, milestones.Create(ctx, m))
	require.NoError(t, logs.Create(ctx, testutil.NewTestSpendLog(m.ID, 1, 500)))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	_, err := milestones.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	remaining, err := logs.ListByMilestone(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestProjectRepo_Delete_Missing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
