package services

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
	"github.com/luckydraw/draw-backend/internal/utils"
)

var _ RosterService = (*RosterServiceImpl)(nil)

// RosterServiceImpl manages the participant roster and the exclusion roster.
type RosterServiceImpl struct {
	rosterRepo    repositories.RosterRepository
	exclusionRepo repositories.ExclusionRepository
}

// NewRosterService creates a new RosterServiceImpl.
func NewRosterService(rosterRepo repositories.RosterRepository, exclusionRepo repositories.ExclusionRepository) *RosterServiceImpl {
	return &RosterServiceImpl{
		rosterRepo:    rosterRepo,
		exclusionRepo: exclusionRepo,
	}
}

// GetRoster returns the full participant roster.
func (s *RosterServiceImpl) GetRoster(ctx context.Context) ([]*models.Person, error) {
	return s.rosterRepo.FindAll(ctx)
}

// ReplaceRoster validates and stores a new roster.
func (s *RosterServiceImpl) ReplaceRoster(ctx context.Context, people []*models.Person) error {
	if err := models.ValidatePeople(people); err != nil {
		return err
	}
	if err := s.rosterRepo.ReplaceAll(ctx, people); err != nil {
		return fmt.Errorf("failed to store roster: %w", err)
	}
	slog.Info("Roster replaced", "participants", len(people))
	return nil
}

// ImportRosterCSV parses a CSV export and replaces the roster with it.
// Returns the number of imported participants.
func (s *RosterServiceImpl) ImportRosterCSV(ctx context.Context, data []byte) (int, error) {
	people, err := utils.ParseRosterCSV(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse roster CSV: %w", err)
	}
	if err := s.ReplaceRoster(ctx, people); err != nil {
		return 0, err
	}
	return len(people), nil
}

// GetExcluded returns the exclusion roster.
func (s *RosterServiceImpl) GetExcluded(ctx context.Context) ([]*models.Person, error) {
	return s.exclusionRepo.FindAll(ctx)
}

// ReplaceExcluded validates and stores a new exclusion roster.
func (s *RosterServiceImpl) ReplaceExcluded(ctx context.Context, people []*models.Person) error {
	if err := models.ValidatePeople(people); err != nil {
		return err
	}
	if err := s.exclusionRepo.ReplaceAll(ctx, people); err != nil {
		return fmt.Errorf("failed to store exclusion list: %w", err)
	}
	slog.Info("Exclusion list replaced", "participants", len(people))
	return nil
}
