package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barmentor/barmentor/internal/bandit"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository/sqlite"
	"github.com/barmentor/barmentor/internal/testutil"
)

func TestBanditRepository_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	bandits := sqlite.NewBanditRepository(database.DB)
	seedLearner(t, sqlite.NewLearnerRepository(database.DB), "learner-1")

	ctx := context.Background()

	history := bandit.Initialize(bandit.DefaultEpsilon)
	history = bandit.Update(history, models.ExerciseOrder, 0.72)
	history = bandit.Update(history, models.ExerciseMCQ, 0.4)

	require.NoError(t, bandits.Save(ctx, "learner-1", history))

	got, err := bandits.Get(ctx, "learner-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, history.Epsilon, got.Epsilon)
	assert.Equal(t, history.TotalAttempts, got.TotalAttempts)
	require.Len(t, got.Arms, len(models.ExerciseTypes))
	for _, typ := range models.ExerciseTypes {
		assert.Equal(t, history.Arms[typ], got.Arms[typ], "arm %s must survive the round trip", typ)
	}
}

func TestBanditRepository_SaveOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	bandits := sqlite.NewBanditRepository(database.DB)
	seedLearner(t, sqlite.NewLearnerRepository(database.DB), "learner-1")

	ctx := context.Background()

	first := bandit.Initialize(bandit.DefaultEpsilon)
	require.NoError(t, bandits.Save(ctx, "learner-1", first))

	second := bandit.Update(first, models.ExerciseShort, 0.9)
	second.Epsilon = 0.2
	require.NoError(t, bandits.Save(ctx, "learner-1", second))

	got, err := bandits.Get(ctx, "learner-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0.2, got.Epsilon)
	assert.Equal(t, second.TotalAttempts, got.TotalAttempts)
	assert.Equal(t, second.Arms[models.ExerciseShort], got.Arms[models.ExerciseShort])
}

func TestBanditRepository_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	bandits := sqlite.NewBanditRepository(database.DB)

	got, err := bandits.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}
