package services

import (
	"context"

	"github.com/luckydraw/draw-backend/internal/engine"
	"github.com/luckydraw/draw-backend/internal/models"
)

// DrawService defines the interface for draw-related operations.
type DrawService interface {
	// DrawPrize draws winners for one prize and persists the updated state.
	DrawPrize(ctx context.Context, prizeID string, req DrawRequest) ([]models.WinnerRecord, error)

	// DrawAll draws every prize with open slots, in configured order.
	DrawAll(ctx context.Context, req DrawRequest) ([]models.WinnerRecord, error)

	// AvailablePrizes lists prizes that still have open slots.
	AvailablePrizes(ctx context.Context) ([]*models.PrizeConfig, error)

	// GetState returns the current draw state.
	GetState(ctx context.Context) (*models.DrawState, error)

	// GetWinners returns the global winner history in draw order.
	GetWinners(ctx context.Context) ([]models.WinnerRecord, error)

	// Reset clears all recorded winners and persists a fresh state.
	Reset(ctx context.Context) error
}

// DrawRequest carries the per-call draw options exposed to callers.
type DrawRequest struct {
	// DrawCount caps how many winners to draw now; zero means the full
	// remaining quota.
	DrawCount int `json:"draw_count"`
	// IncludeExcluded lifts the excluded-list gate for this call.
	IncludeExcluded bool `json:"include_excluded"`
}

// RosterService defines the interface for participant roster operations.
type RosterService interface {
	GetRoster(ctx context.Context) ([]*models.Person, error)
	ReplaceRoster(ctx context.Context, people []*models.Person) error
	ImportRosterCSV(ctx context.Context, data []byte) (int, error)
	GetExcluded(ctx context.Context) ([]*models.Person, error)
	ReplaceExcluded(ctx context.Context, people []*models.Person) error
}

// PrizeService defines the interface for prize configuration operations.
type PrizeService interface {
	GetPrizes(ctx context.Context) ([]*models.PrizeConfig, error)
	ReplacePrizes(ctx context.Context, prizes []*models.PrizeConfig) error
}

// AuthService defines the interface for operator authentication.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, username, password, role string) (*models.AdminUser, error)
}

// DrawDefaults is session-wide draw behavior from configuration.
type DrawDefaults struct {
	// IncludeExcluded lifts the excluded-list gate for every draw.
	IncludeExcluded bool
	// ExcludedRange bounds excluded-list winners across all prizes; nil
	// disables the constrained mode.
	ExcludedRange *engine.Range
}

// engineOptions merges per-call options with the session defaults.
func engineOptions(req DrawRequest, defaults DrawDefaults, prizes []*models.PrizeConfig) engine.Options {
	return engine.Options{
		IncludeExcluded: req.IncludeExcluded || defaults.IncludeExcluded,
		ExcludedRange:   defaults.ExcludedRange,
		Prizes:          prizes,
		DrawCount:       req.DrawCount,
	}
}
