package services

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
)

var _ PrizeService = (*PrizeServiceImpl)(nil)

// PrizeServiceImpl manages prize configurations.
type PrizeServiceImpl struct {
	prizeRepo repositories.PrizeRepository
}

// NewPrizeService creates a new PrizeServiceImpl.
func NewPrizeService(prizeRepo repositories.PrizeRepository) *PrizeServiceImpl {
	return &PrizeServiceImpl{prizeRepo: prizeRepo}
}

// GetPrizes returns every prize config in draw order.
func (s *PrizeServiceImpl) GetPrizes(ctx context.Context) ([]*models.PrizeConfig, error) {
	return s.prizeRepo.FindAll(ctx)
}

// ReplacePrizes validates and stores a new prize configuration.
func (s *PrizeServiceImpl) ReplacePrizes(ctx context.Context, prizes []*models.PrizeConfig) error {
	if err := models.ValidatePrizes(prizes); err != nil {
		return err
	}
	if err := s.prizeRepo.ReplaceAll(ctx, prizes); err != nil {
		return fmt.Errorf("failed to store prize configs: %w", err)
	}
	slog.Info("Prize configs replaced", "prizes", len(prizes))
	return nil
}
