// Package services contains application services for the timecard client.
// This file defines the timecard service: normalizing the selected image,
// sending it for extraction, and submitting edited days for recalculation.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophtimecard/internal/client/client"
	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/logging"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
)

// TimecardService defines the service operations used by the CLI.
//
// Contract:
//   - Normalize: rotate the image clockwise by the chosen angle.
//   - Extract: normalize, then upload for extraction.
//   - Recalculate: submit edited days; the result replaces the local card.
//   - Ping: check that the service answers.
//
// All network methods honor context cancellation.
type TimecardService interface {
	Normalize(img rotation.Image, angle rotation.Angle) (rotation.Image, error)
	Extract(ctx context.Context, img rotation.Image, angle rotation.Angle) ([]models.Timecard, error)
	Recalculate(ctx context.Context, days []models.Day) (models.EditResult, error)
	Ping(ctx context.Context) error
}

type timecardService struct {
	client client.Client
	logger logging.Logger
}

// NewTimecardService constructs a TimecardService bound to the given API client.
func NewTimecardService(client client.Client, logger logging.Logger) TimecardService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &timecardService{client: client, logger: logger}
}

func (s *timecardService) Normalize(img rotation.Image, angle rotation.Angle) (rotation.Image, error) {
	out, err := rotation.Rotate(img, angle)
	if err != nil {
		return rotation.Image{}, fmt.Errorf("rotate %s: %w", angle, err)
	}
	return out, nil
}

func (s *timecardService) Extract(ctx context.Context, img rotation.Image, angle rotation.Angle) ([]models.Timecard, error) {
	normalized, err := s.Normalize(img, angle)
	if err != nil {
		return nil, err
	}

	cards, err := s.client.Upload(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	days := 0
	for _, c := range cards {
		days += len(c.Days)
	}
	s.logger.Info(ctx, "timecard.extracted",
		"file", normalized.Filename,
		"angle", int(angle),
		"bytes", normalized.Size(),
		"cards", len(cards),
		"days", days,
	)
	return cards, nil
}

func (s *timecardService) Recalculate(ctx context.Context, days []models.Day) (models.EditResult, error) {
	res, err := s.client.Recalculate(ctx, days)
	if err != nil {
		return models.EditResult{}, fmt.Errorf("recalculate: %w", err)
	}
	s.logger.Info(ctx, "timecard.recalculated", "days", len(res.Entries), "total", res.TotalHoursWorked)
	return res, nil
}

func (s *timecardService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
