package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/epcrisk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSequenceRepo_NextProjectSeq_EmptyProjectStartsAtOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := seedProject(t, NewSQLiteProjectRepo(database), "Seq Project")
	seqRepo := NewSQLiteProjectSequenceRepo(database)

	seq1, err := seqRepo.NextProjectSeq(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, seq1)

	seq2, err := seqRepo.NextProjectSeq(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, seq2)
}

func TestProjectSequenceRepo_NextProjectSeq_BootstrapsFromExistingMilestones(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := seedProject(t, NewSQLiteProjectRepo(database), "Seq Bootstrap")
	seedMilestone(t, database, proj.ID, "Imported", 7)

	next, err := NewSQLiteProjectSequenceRepo(database).NextProjectSeq(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestProjectSequenceRepo_NextProjectSeq_NotReusedAfterDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := seedProject(t, NewSQLiteProjectRepo(database), "Seq Delete")
	seqRepo := NewSQLiteProjectSequenceRepo(database)

	seq, err := seqRepo.NextProjectSeq(ctx, proj.ID)
	require.NoError(t, err)
	m := seedMilestone(t, database, proj.ID, "Temp", seq)
	require.NoError(t, NewSQLiteMilestoneRepo(database).Delete(ctx, m.ID))

	next, err := seqRepo.NextProjectSeq(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestProjectSequenceRepo_IndependentPerProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(database)
	a := seedProject(t, projects, "Seq A")
	b := seedProject(t, projects, "Seq B")
	seqRepo := NewSQLiteProjectSequenceRepo(database)

	for i := 0; i < 3; i++ {
		_, err := seqRepo.NextProjectSeq(ctx, a.ID)
		require.NoError(t, err)
	}
	next, err := seqRepo.NextProjectSeq(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}
