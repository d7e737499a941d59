package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellen-backend/internal/models"
	"wellen-backend/internal/retry"
	"wellen-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWaveServiceFixture() (*WaveService, *memWaveStore) {
	store := newMemWaveStore()
	svc := NewWaveService(store)
	svc.ListPolicy = retry.Policy{Attempts: 3, Delay: time.Millisecond}
	return svc, store
}

func TestListRetriesOnTransientError(t *testing.T) {
	svc, store := newWaveServiceFixture()
	store.list = []models.WaveListItem{{
		ID: 1, Name: "Welle",
		StartDate: timeutil.Now().AddDate(0, 0, -1),
		EndDate:   timeutil.Now().AddDate(0, 0, 3),
	}}
	store.listErrs = []error{errors.New("cold start"), errors.New("cold start")}

	waves, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, waves, 1)
	assert.Equal(t, 3, store.listCalls)
}

func TestListRetriesOnEmptyResult(t *testing.T) {
	svc, store := newWaveServiceFixture()

	waves, err := svc.List(context.Background())

	// An empty list after all attempts is a valid result, not an error.
	require.NoError(t, err)
	assert.Empty(t, waves)
	assert.Equal(t, 3, store.listCalls)
}

func TestListGivesUpAfterAttempts(t *testing.T) {
	svc, store := newWaveServiceFixture()
	boom := errors.New("down")
	store.listErrs = []error{boom, boom, boom}

	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, store.listCalls)
}

func TestListDecoratesStatusAndDaysRemaining(t *testing.T) {
	svc, store := newWaveServiceFixture()
	now := timeutil.Now()
	store.list = []models.WaveListItem{
		{ID: 1, Name: "Aktiv", StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 2)},
		{ID: 2, Name: "Vorbei", StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, -5)},
		{ID: 3, Name: "Geplant", StartDate: now.AddDate(0, 0, 5), EndDate: now.AddDate(0, 0, 9)},
	}

	waves, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.WaveStatusActive, waves[0].Status)
	assert.Equal(t, 2, waves[0].DaysRemaining)
	assert.Equal(t, models.WaveStatusPast, waves[1].Status)
	assert.Equal(t, 0, waves[1].DaysRemaining)
	assert.Equal(t, models.WaveStatusUpcoming, waves[2].Status)
}

func TestCreateValidatesGoal(t *testing.T) {
	svc, _ := newWaveServiceFixture()

	err := svc.Create(context.Background(), &models.Wave{Name: "X", GoalType: models.GoalPercentage})
	assert.Error(t, err)

	err = svc.Create(context.Background(), &models.Wave{Name: "X", GoalType: "count"})
	assert.Error(t, err)

	err = svc.Create(context.Background(), &models.Wave{
		Name: "X", GoalType: models.GoalValue, GoalValue: 1000,
		StartDate: timeutil.Now(), EndDate: timeutil.Now().AddDate(0, 0, 7),
	})
	assert.NoError(t, err)
}

func TestUpdateRejectsInvertedDates(t *testing.T) {
	svc, _ := newWaveServiceFixture()

	err := svc.Update(context.Background(), &models.Wave{
		ID: 1, Name: "X", GoalType: models.GoalValue, GoalValue: 1,
		StartDate: timeutil.Now(), EndDate: timeutil.Now().AddDate(0, 0, -1),
	})
	assert.Error(t, err)
}
