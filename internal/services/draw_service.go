package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/luckydraw/draw-backend/internal/engine"
	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/repositories"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// ErrPrizeNotFound is returned when a draw names an unknown prize id.
var ErrPrizeNotFound = errors.New("prize not found")

// DrawServiceImpl orchestrates draws: it assembles roster, prize configs,
// exclusion list and state, runs the selection engine, and persists the
// state after every batch. A mutex serializes draws because the engine's
// guard-compute-commit sequence is not safe under concurrent mutation.
type DrawServiceImpl struct {
	rosterRepo    repositories.RosterRepository
	prizeRepo     repositories.PrizeRepository
	exclusionRepo repositories.ExclusionRepository
	stateRepo     repositories.StateRepository
	engine        *engine.Engine
	defaults      DrawDefaults

	mu sync.Mutex
}

// NewDrawService creates a new DrawServiceImpl. defaults carries the
// session-wide draw behavior from configuration.
func NewDrawService(
	rosterRepo repositories.RosterRepository,
	prizeRepo repositories.PrizeRepository,
	exclusionRepo repositories.ExclusionRepository,
	stateRepo repositories.StateRepository,
	eng *engine.Engine,
	defaults DrawDefaults,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		rosterRepo:    rosterRepo,
		prizeRepo:     prizeRepo,
		exclusionRepo: exclusionRepo,
		stateRepo:     stateRepo,
		engine:        eng,
		defaults:      defaults,
	}
}

// drawInputs is everything one draw batch needs, loaded fresh per call so
// roster or config edits between draws are always picked up.
type drawInputs struct {
	people        []*models.Person
	prizes        []*models.PrizeConfig
	globalMustWin map[string]bool
	excludedIDs   map[string]bool
	state         *models.DrawState
}

func (s *DrawServiceImpl) loadInputs(ctx context.Context) (*drawInputs, error) {
	people, err := s.rosterRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prize configs: %w", err)
	}
	excluded, err := s.exclusionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclusion list: %w", err)
	}
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw state: %w", err)
	}

	excludedIDs := make(map[string]bool, len(excluded))
	for _, person := range excluded {
		excludedIDs[person.PersonID] = true
	}
	return &drawInputs{
		people:        people,
		prizes:        prizes,
		globalMustWin: models.BuildGlobalMustWin(prizes),
		excludedIDs:   excludedIDs,
		state:         state,
	}, nil
}

// DrawPrize draws winners for a single prize and persists the updated state.
func (s *DrawServiceImpl) DrawPrize(ctx context.Context, prizeID string, req DrawRequest) ([]models.WinnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}
	prize := findPrize(in.prizes, prizeID)
	if prize == nil {
		return nil, fmt.Errorf("%w: %s", ErrPrizeNotFound, prizeID)
	}

	winners, err := s.engine.DrawPrize(prize, in.people, in.state, in.globalMustWin, in.excludedIDs, engineOptions(req, s.defaults, in.prizes))
	if err != nil {
		slog.Warn("Draw rejected", "prizeId", prizeID, "error", err)
		return nil, err
	}
	if len(winners) > 0 {
		if err := s.stateRepo.Save(ctx, in.state); err != nil {
			return nil, fmt.Errorf("failed to persist draw state: %w", err)
		}
	}

	slog.Info("Draw executed", "prizeId", prizeID, "newWinners", len(winners), "totalWinners", len(in.state.Winners))
	return winners, nil
}

// DrawAll draws every prize in configured order and persists once at the end.
func (s *DrawServiceImpl) DrawAll(ctx context.Context, req DrawRequest) ([]models.WinnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	var selected []models.WinnerRecord
	for _, prize := range in.prizes {
		winners, err := s.engine.DrawPrize(prize, in.people, in.state, in.globalMustWin, in.excludedIDs, engineOptions(req, s.defaults, in.prizes))
		if err != nil {
			// Committed prizes stay committed; persist them before
			// surfacing the failure.
			if len(selected) > 0 {
				if saveErr := s.stateRepo.Save(ctx, in.state); saveErr != nil {
					slog.Error("Failed to persist partial draw-all results", "error", saveErr)
				}
			}
			return selected, fmt.Errorf("draw failed for prize %s: %w", prize.PrizeID, err)
		}
		selected = append(selected, winners...)
	}

	if len(selected) > 0 {
		if err := s.stateRepo.Save(ctx, in.state); err != nil {
			return nil, fmt.Errorf("failed to persist draw state: %w", err)
		}
	}

	slog.Info("Draw-all executed", "newWinners", len(selected), "totalWinners", len(in.state.Winners))
	return selected, nil
}

// AvailablePrizes lists prizes that still have open slots, preserving the
// configured order.
func (s *DrawServiceImpl) AvailablePrizes(ctx context.Context) ([]*models.PrizeConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadInputs(ctx)
	if err != nil {
		return nil, err
	}
	return engine.AvailablePrizes(in.prizes, in.state), nil
}

// GetState returns the current draw state.
func (s *DrawServiceImpl) GetState(ctx context.Context) (*models.DrawState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw state: %w", err)
	}
	return state, nil
}

// GetWinners returns the global winner history in draw order.
func (s *DrawServiceImpl) GetWinners(ctx context.Context) ([]models.WinnerRecord, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return state.Winners, nil
}

// Reset clears all recorded winners.
func (s *DrawServiceImpl) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stateRepo.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset draw state: %w", err)
	}
	slog.Info("Draw state reset")
	return nil
}

func findPrize(prizes []*models.PrizeConfig, prizeID string) *models.PrizeConfig {
	for _, prize := range prizes {
		if prize.PrizeID == prizeID {
			return prize
		}
	}
	return nil
}
