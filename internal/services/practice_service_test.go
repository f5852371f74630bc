package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/scheduler"
	"github.com/barmentor/barmentor/internal/services"
	"github.com/barmentor/barmentor/internal/testutil/mocks"
)

type practiceFixture struct {
	content  *mocks.MockContentRepository
	progress *mocks.MockProgressRepository
	bandits  *mocks.MockBanditRepository
	learners *mocks.MockLearnerRepository
	svc      services.PracticeService
}

func newPracticeFixture() *practiceFixture {
	content := new(mocks.MockContentRepository)
	progress := new(mocks.MockProgressRepository)
	bandits := new(mocks.MockBanditRepository)
	learners := new(mocks.MockLearnerRepository)
	sched := scheduler.New(content, progress, bandits)
	return &practiceFixture{
		content:  content,
		progress: progress,
		bandits:  bandits,
		learners: learners,
		svc:      services.NewPracticeService(sched, content, progress, learners),
	}
}

func closeTo(want float64) any {
	return mock.MatchedBy(func(got float64) bool {
		return math.Abs(got-want) < 1e-9
	})
}

func TestSubmitAttempt_FirstCorrectAttempt(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	f.learners.On("Get", ctx, "learner-1").Return(&models.Learner{ID: "learner-1", Skill: 0.5}, nil)
	f.content.On("GetItem", ctx, "item-1").Return(&models.Item{
		ID: "item-1", LessonID: "les-1", Type: models.ExerciseMCQ, Difficulty: 0.5,
	}, nil)
	f.progress.On("Get", ctx, "learner-1", "item-1").Return(nil, nil)

	var saved models.UserProgress
	f.progress.On("Upsert", ctx, mock.AnythingOfType("models.UserProgress")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(models.UserProgress) }).
		Return(nil)
	f.learners.On("UpdateSkill", ctx, "learner-1", closeTo(0.55)).Return(nil)
	f.content.On("UpdateItemDifficulty", ctx, "item-1", closeTo(0.475)).Return(nil)
	f.progress.On("LogAttempt", ctx, mock.AnythingOfType("models.Attempt")).Return(nil)
	f.bandits.On("Get", ctx, "learner-1").Return(nil, nil)
	f.bandits.On("Save", ctx, "learner-1", mock.AnythingOfType("models.BanditHistory")).Return(nil)

	result, err := f.svc.SubmitAttempt(ctx, services.SubmitAttemptInput{
		LearnerID: "learner-1",
		ItemID:    "item-1",
		Correct:   true,
		Latency:   8 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// Unseen item starts at mastery 0.5 for difficulty 0.5; one correct
	// answer boosts it to 0.675 and grows stability to 1.6.
	assert.Equal(t, 0.675, result.State.Mastery)
	assert.Equal(t, 1.6, result.State.Stability)
	assert.InDelta(t, 0.175, result.MasteryGain, 1e-9)
	assert.InDelta(t, 0.55, result.Skill.UserSkill, 1e-9)
	assert.InDelta(t, 0.475, result.Skill.ItemDifficulty, 1e-9)

	assert.Equal(t, "learner-1", saved.LearnerID)
	assert.Equal(t, "item-1", saved.ItemID)
	assert.Equal(t, result.State, saved.State)
	assert.False(t, saved.FirstSeenAt.IsZero())

	f.progress.AssertExpectations(t)
	f.learners.AssertExpectations(t)
	f.content.AssertExpectations(t)
	f.bandits.AssertExpectations(t)
}

func TestSubmitAttempt_KeepsFirstSeenOnRepeat(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	firstSeen := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	f.learners.On("Get", ctx, "learner-1").Return(&models.Learner{ID: "learner-1", Skill: 0.5}, nil)
	f.content.On("GetItem", ctx, "item-1").Return(&models.Item{
		ID: "item-1", Type: models.ExerciseOrder, Difficulty: 0.3,
	}, nil)
	f.progress.On("Get", ctx, "learner-1", "item-1").Return(&models.UserProgress{
		LearnerID:   "learner-1",
		ItemID:      "item-1",
		State:       models.ReviewState{Mastery: 0.8, Stability: 2.0, DueAt: firstSeen},
		FirstSeenAt: firstSeen,
	}, nil)

	var saved models.UserProgress
	f.progress.On("Upsert", ctx, mock.AnythingOfType("models.UserProgress")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(models.UserProgress) }).
		Return(nil)
	f.learners.On("UpdateSkill", ctx, "learner-1", mock.AnythingOfType("float64")).Return(nil)
	f.content.On("UpdateItemDifficulty", ctx, "item-1", mock.AnythingOfType("float64")).Return(nil)
	f.progress.On("LogAttempt", ctx, mock.AnythingOfType("models.Attempt")).Return(nil)
	f.bandits.On("Get", ctx, "learner-1").Return(nil, nil)
	f.bandits.On("Save", ctx, "learner-1", mock.AnythingOfType("models.BanditHistory")).Return(nil)

	result, err := f.svc.SubmitAttempt(ctx, services.SubmitAttemptInput{
		LearnerID: "learner-1",
		ItemID:    "item-1",
		Correct:   false,
		Latency:   20 * time.Second,
	})
	require.NoError(t, err)

	// A failure decays mastery and shrinks stability.
	assert.Equal(t, 0.56, result.State.Mastery)
	assert.Equal(t, 1.6, result.State.Stability)
	assert.InDelta(t, -0.24, result.MasteryGain, 1e-9)

	assert.True(t, saved.FirstSeenAt.Equal(firstSeen), "first seen timestamp is never rewritten")
}

func TestSubmitAttempt_UnknownLearner(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	f.learners.On("Get", ctx, "ghost").Return(nil, nil)

	_, err := f.svc.SubmitAttempt(ctx, services.SubmitAttemptInput{
		LearnerID: "ghost", ItemID: "item-1", Correct: true,
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestSubmitAttempt_UnknownItem(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	f.learners.On("Get", ctx, "learner-1").Return(&models.Learner{ID: "learner-1", Skill: 0.5}, nil)
	f.content.On("GetItem", ctx, "item-9").Return(nil, nil)

	_, err := f.svc.SubmitAttempt(ctx, services.SubmitAttemptInput{
		LearnerID: "learner-1", ItemID: "item-9", Correct: true,
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestSubmitAttempt_NegativeLatency(t *testing.T) {
	f := newPracticeFixture()

	_, err := f.svc.SubmitAttempt(context.Background(), services.SubmitAttemptInput{
		LearnerID: "learner-1", ItemID: "item-1", Latency: -time.Second,
	})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	f.learners.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSubmitAttempt_LostAttemptLogIsNotFatal(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	f.learners.On("Get", ctx, "learner-1").Return(&models.Learner{ID: "learner-1", Skill: 0.5}, nil)
	f.content.On("GetItem", ctx, "item-1").Return(&models.Item{
		ID: "item-1", Type: models.ExerciseShort, Difficulty: 0.5,
	}, nil)
	f.progress.On("Get", ctx, "learner-1", "item-1").Return(nil, nil)
	f.progress.On("Upsert", ctx, mock.AnythingOfType("models.UserProgress")).Return(nil)
	f.learners.On("UpdateSkill", ctx, "learner-1", mock.AnythingOfType("float64")).Return(nil)
	f.content.On("UpdateItemDifficulty", ctx, "item-1", mock.AnythingOfType("float64")).Return(nil)
	f.progress.On("LogAttempt", ctx, mock.AnythingOfType("models.Attempt")).Return(errors.New("disk full"))
	f.bandits.On("Get", ctx, "learner-1").Return(nil, nil)
	f.bandits.On("Save", ctx, "learner-1", mock.AnythingOfType("models.BanditHistory")).Return(nil)

	result, err := f.svc.SubmitAttempt(ctx, services.SubmitAttemptInput{
		LearnerID: "learner-1", ItemID: "item-1", Correct: true, Latency: 3 * time.Second,
	})
	require.NoError(t, err)
	assert.NotNil(t, result)
	f.bandits.AssertExpectations(t)
}

func TestGetSessionPlan_UnknownLearner(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	f.learners.On("Get", ctx, "ghost").Return(nil, nil)

	_, err := f.svc.GetSessionPlan(ctx, "ghost", "mod-1", 10, time.Now())
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestGetSessionPlan_UnknownModuleIsEmptyPlan(t *testing.T) {
	f := newPracticeFixture()
	ctx := context.Background()

	f.learners.On("Get", ctx, "learner-1").Return(&models.Learner{ID: "learner-1", Skill: 0.5}, nil)
	f.content.On("GetModule", ctx, "mod-missing").Return(nil, nil)

	plan, err := f.svc.GetSessionPlan(ctx, "learner-1", "mod-missing", 10, time.Now())
	require.NoError(t, err)
	assert.Empty(t, plan.Items)
}
