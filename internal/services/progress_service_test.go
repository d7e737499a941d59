package services

import (
	"context"
	"testing"

	"wellen-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePercentageGoal(t *testing.T) {
	w := &models.Wave{GoalType: models.GoalPercentage, GoalPercentage: 90}
	lines := []models.NormalizedLine{
		{Quantity: 8, TargetQuantity: 10},
		{Quantity: 10, TargetQuantity: 10},
	}

	report := Evaluate(w, lines)

	assert.Equal(t, 18, report.TotalQuantity)
	assert.Equal(t, 90.0, report.ProgressRatio)
	assert.True(t, report.GoalMet)
	assert.Equal(t, 100.0, report.BarPercent)
}

func TestEvaluatePercentageRounding(t *testing.T) {
	w := &models.Wave{GoalType: models.GoalPercentage, GoalPercentage: 50}
	lines := []models.NormalizedLine{
		{Quantity: 1, TargetQuantity: 3},
	}

	report := Evaluate(w, lines)

	// 1/3 = 33.333...%, rounded to one decimal.
	assert.Equal(t, 33.3, report.ProgressRatio)
	assert.False(t, report.GoalMet)
}

func TestEvaluateZeroTargetSum(t *testing.T) {
	w := &models.Wave{GoalType: models.GoalPercentage, GoalPercentage: 50}
	lines := []models.NormalizedLine{{Quantity: 5}}

	report := Evaluate(w, lines)

	assert.Equal(t, 0.0, report.ProgressRatio)
	assert.False(t, report.GoalMet)
}

func TestEvaluateValueGoal(t *testing.T) {
	w := &models.Wave{GoalType: models.GoalValue, GoalValue: 10000}
	lines := []models.NormalizedLine{
		{Quantity: 100, UnitValue: 20},
		{Quantity: 50, UnitValue: 20},
	}

	report := Evaluate(w, lines)

	assert.Equal(t, 3000.0, report.TotalValue)
	assert.Equal(t, 3000.0, report.ProgressRatio)
	assert.False(t, report.GoalMet)
	assert.Equal(t, 30.0, report.BarPercent)
}

func TestEvaluateValueGoalMetCapsBar(t *testing.T) {
	w := &models.Wave{GoalType: models.GoalValue, GoalValue: 1000}
	lines := []models.NormalizedLine{{Quantity: 100, UnitValue: 15}}

	report := Evaluate(w, lines)

	assert.True(t, report.GoalMet)
	assert.Equal(t, 100.0, report.BarPercent)
}

func TestProgressServicePhotoOnlyAllProgress(t *testing.T) {
	waves := newMemWaveStore()
	require.NoError(t, waves.Create(context.Background(), &models.Wave{
		Name: "Fotowelle", GoalType: models.GoalPercentage, GoalPercentage: 100, PhotoOnly: true,
	}))
	photos := &memPhotoStore{}
	photos.CreateBatch(context.Background(), []models.FotoEntry{
		{WaveID: 1, PhotoURL: "https://cdn.example/1.jpg", Tags: []string{"Regal"}},
	})

	svc := NewProgressService(waves, newMemSubmissionStore(), photos)
	all, err := svc.AllProgress(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "foto", all.Type)
	assert.Len(t, all.Photos, 1)
	assert.Empty(t, all.Submissions)
}

func TestProgressServiceSubmissionAllProgress(t *testing.T) {
	waves := newMemWaveStore()
	require.NoError(t, waves.Create(context.Background(), &models.Wave{
		Name: "Welle", GoalType: models.GoalPercentage, GoalPercentage: 100,
	}))
	subs := newMemSubmissionStore()
	subs.seed(models.Submission{WaveID: 1, ItemType: models.ItemDisplay, ItemID: 1, Quantity: 2})

	svc := NewProgressService(waves, subs, &memPhotoStore{})
	all, err := svc.AllProgress(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "submissions", all.Type)
	assert.Len(t, all.Submissions, 1)
}
