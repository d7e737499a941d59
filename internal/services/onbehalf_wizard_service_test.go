package services

import (
	"context"
	"testing"

	"wellen-backend/internal/models"
	"wellen-backend/internal/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOnBehalfFixture(t *testing.T, wave *models.Wave) *OnBehalfWizardService {
	t.Helper()
	waves := newMemWaveStore()
	require.NoError(t, waves.Create(context.Background(), wave))

	actors := &memActorStore{actors: []models.Actor{
		{ID: 1, Name: "Arndt"},
		{ID: 2, Name: "Beck"},
	}}
	locations := &memLocationStore{locations: []models.Location{
		{ID: 10, Name: "Edeka Mitte", Address: "Hauptstraße 1", ActorID: 1},
		{ID: 11, Name: "Rewe Nord", Address: "Bahnhofstraße 2", ActorID: 2},
		{ID: 12, Name: "Edeka Süd", Address: "Marktplatz 3", ActorID: 2},
	}}

	subSvc := NewSubmissionService(waves, newMemSubmissionStore(), &memPhotoStore{}, actors, locations)
	return NewOnBehalfWizardService(waves, actors, locations, subSvc)
}

func quantityWave() *models.Wave {
	return &models.Wave{
		Name: "Sommerwelle", GoalType: models.GoalValue, GoalValue: 10000,
		Displays: []models.Item{{ID: 1, Name: "Aufsteller", TargetQuantity: 10, UnitValue: f(25)}},
		Paletten: []models.ContainerItem{
			{ID: 5, Name: "Palette", Products: []models.Product{{ID: 101, Name: "Riegel", UnitValue: 1.5}}},
		},
	}
}

func TestStartSeedsEntryLines(t *testing.T) {
	svc := newOnBehalfFixture(t, quantityWave())

	sess, err := svc.Start(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, sess.State.Lines, 2)
	assert.Equal(t, models.ItemDisplay, sess.State.Lines[0].ItemType)
	assert.Equal(t, 0, sess.State.Lines[0].Quantity)
	assert.Equal(t, 25.0, sess.State.Lines[0].UnitValue)
	// Container products reference their parent container.
	require.NotNil(t, sess.State.Lines[1].ContainerItemID)
	assert.Equal(t, 5, *sess.State.Lines[1].ContainerItemID)
}

func TestListLocationsPartitionAndFilter(t *testing.T) {
	svc := newOnBehalfFixture(t, quantityWave())
	sess, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)

	sess, err = svc.Apply(sess.ID, wizard.SelectActor{ActorID: 2})
	require.NoError(t, err)

	all, err := svc.ListLocations(context.Background(), sess.ID, "")
	require.NoError(t, err)
	assert.Len(t, all.ActorLocations, 2)
	assert.Len(t, all.OtherLocations, 1)

	// Free-text search covers name and address, case-insensitively.
	filtered, err := svc.ListLocations(context.Background(), sess.ID, "edeka")
	require.NoError(t, err)
	assert.Len(t, filtered.ActorLocations, 1)
	assert.Len(t, filtered.OtherLocations, 1)

	byAddress, err := svc.ListLocations(context.Background(), sess.ID, "bahnhof")
	require.NoError(t, err)
	assert.Len(t, byAddress.ActorLocations, 1)
	assert.Empty(t, byAddress.OtherLocations)
}

func TestSubmitFullFlow(t *testing.T) {
	svc := newOnBehalfFixture(t, quantityWave())
	sess, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)

	step := func(ev wizard.OnBehalfEvent) {
		t.Helper()
		sess, err = svc.Apply(sess.ID, ev)
		require.NoError(t, err)
	}
	step(wizard.SelectActor{ActorID: 1})
	step(wizard.NextOB{})
	step(wizard.SelectLocation{LocationID: 10})
	step(wizard.NextOB{})
	step(wizard.SetQuantity{LineIndex: 0, Quantity: 3})
	step(wizard.NextOB{})

	result, err := svc.Submit(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.MissingMandatoryTags)

	// The session is gone after submit.
	_, err = svc.Get(sess.ID)
	assert.ErrorIs(t, err, ErrWizardSessionNotFound)
}

func TestSubmitReportsMissingMandatoryTags(t *testing.T) {
	svc := newOnBehalfFixture(t, &models.Wave{
		Name: "Fotowelle", GoalType: models.GoalPercentage, GoalPercentage: 100,
		PhotoOnly: true,
		PhotoTags: []models.PhotoTag{
			{Name: "Regal", Mandatory: true},
			{Name: "Kasse", Mandatory: false},
		},
	})
	sess, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)

	step := func(ev wizard.OnBehalfEvent) {
		t.Helper()
		sess, err = svc.Apply(sess.ID, ev)
		require.NoError(t, err)
	}
	step(wizard.SelectActor{ActorID: 1})
	step(wizard.NextOB{})
	step(wizard.SelectLocation{LocationID: 10})
	step(wizard.NextOB{})
	step(wizard.AddPhoto{Photo: models.PhotoCapture{URL: "https://cdn.example/1.jpg", Tags: []string{"Kasse"}}})
	step(wizard.NextOB{})

	// Mandatory tags are a hint, not a gate: submission still succeeds.
	result, err := svc.Submit(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, []string{"Regal"}, result.MissingMandatoryTags)
}

func TestApplyCancelClosesSession(t *testing.T) {
	svc := newOnBehalfFixture(t, quantityWave())
	sess, err := svc.Start(context.Background(), 1)
	require.NoError(t, err)

	// Back on step 1 cancels the whole flow.
	out, err := svc.Apply(sess.ID, wizard.BackOB{})
	require.NoError(t, err)
	assert.True(t, out.State.Cancelled)

	_, err = svc.Get(sess.ID)
	assert.ErrorIs(t, err, ErrWizardSessionNotFound)
}
