package services

import (
	"context"
	"fmt"
	"math"

	"wellen-backend/internal/models"
)

// Evaluate computes goal progress over normalized lines.
//
// Percentage goals measure total quantity against the summed flat-item
// targets, rounded to one decimal; value goals measure total monetary value
// against the goal amount. BarPercent is the separate UI ratio relative to
// the goal itself, capped at 100. A zero target sum yields ratio 0, not an
// error.
func Evaluate(w *models.Wave, lines []models.NormalizedLine) models.ProgressReport {
	var report models.ProgressReport
	targetSum := 0
	for _, l := range lines {
		report.TotalQuantity += l.Quantity
		report.TotalValue += l.Value()
		targetSum += l.TargetQuantity
	}

	switch w.GoalType {
	case models.GoalValue:
		report.ProgressRatio = report.TotalValue
		report.GoalMet = w.GoalValue > 0 && report.TotalValue >= w.GoalValue
		if w.GoalValue > 0 {
			report.BarPercent = math.Min(100, report.TotalValue/w.GoalValue*100)
		}
	default: // percentage
		if targetSum > 0 {
			report.ProgressRatio = math.Round(float64(report.TotalQuantity)/float64(targetSum)*100*10) / 10
		}
		report.GoalMet = w.GoalPercentage > 0 && report.ProgressRatio >= w.GoalPercentage
		if w.GoalPercentage > 0 {
			report.BarPercent = math.Min(100, report.ProgressRatio/w.GoalPercentage*100)
		}
	}
	return report
}

// ProgressService shapes the progress view-models of a wave.
type ProgressService struct {
	Waves       WaveStore
	Submissions SubmissionStore
	Photos      PhotoStore
}

func NewProgressService(waves WaveStore, subs SubmissionStore, photos PhotoStore) *ProgressService {
	return &ProgressService{Waves: waves, Submissions: subs, Photos: photos}
}

// Progress returns the wave with its normalized lines and evaluated report.
func (s *ProgressService) Progress(ctx context.Context, waveID int) (*models.WaveProgress, error) {
	w, err := s.Waves.Get(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("load wave %d: %w", waveID, err)
	}
	subs, err := s.Submissions.ListByWave(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("load submissions of wave %d: %w", waveID, err)
	}

	lines := Normalize(w, subs)
	return &models.WaveProgress{
		Wave:   w,
		Lines:  lines,
		Report: Evaluate(w, lines),
	}, nil
}

// AllProgress returns the raw progress records: photos for photo-only waves,
// the flat submission list otherwise.
func (s *ProgressService) AllProgress(ctx context.Context, waveID int) (*models.AllProgress, error) {
	w, err := s.Waves.Get(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("load wave %d: %w", waveID, err)
	}

	if w.PhotoOnly {
		photos, err := s.Photos.ListByWave(ctx, waveID)
		if err != nil {
			return nil, fmt.Errorf("load photos of wave %d: %w", waveID, err)
		}
		if photos == nil {
			photos = []models.FotoEntry{}
		}
		return &models.AllProgress{Type: "foto", Photos: photos}, nil
	}

	subs, err := s.Submissions.ListByWave(ctx, waveID)
	if err != nil {
		return nil, fmt.Errorf("load submissions of wave %d: %w", waveID, err)
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return &models.AllProgress{Type: "submissions", Submissions: subs}, nil
}
