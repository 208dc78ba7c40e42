package client

import (
	"context"

	"github.com/dmitrijs2005/gophtimecard/internal/client/models"
	"github.com/dmitrijs2005/gophtimecard/internal/rotation"
)

// Client is the contract of the remote timecard service.
type Client interface {
	// Upload sends a normalized image for extraction.
	Upload(ctx context.Context, img rotation.Image) ([]models.Timecard, error)
	// Recalculate submits edited days and returns the recomputed entries.
	Recalculate(ctx context.Context, days []models.Day) (models.EditResult, error)
	Ping(ctx context.Context) error
}
