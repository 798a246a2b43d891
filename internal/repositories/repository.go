package repositories

import (
	"context"

	"github.com/luckydraw/draw-backend/internal/models"
)

// RosterRepository stores the participant roster. The roster is replaced
// wholesale on import; the engine only ever reads it.
type RosterRepository interface {
	FindAll(ctx context.Context) ([]*models.Person, error)
	ReplaceAll(ctx context.Context, people []*models.Person) error
	Count(ctx context.Context) (int64, error)
}

// ExclusionRepository stores the "do not disturb" roster whose members prize
// draws may be configured to avoid.
type ExclusionRepository interface {
	FindAll(ctx context.Context) ([]*models.Person, error)
	ReplaceAll(ctx context.Context, people []*models.Person) error
}

// PrizeRepository stores prize configurations.
type PrizeRepository interface {
	FindAll(ctx context.Context) ([]*models.PrizeConfig, error)
	FindByPrizeID(ctx context.Context, prizeID string) (*models.PrizeConfig, error)
	ReplaceAll(ctx context.Context, prizes []*models.PrizeConfig) error
}

// StateRepository persists the single DrawState aggregate. Load returns a
// fresh empty state when nothing has been persisted yet.
type StateRepository interface {
	Load(ctx context.Context) (*models.DrawState, error)
	Save(ctx context.Context, state *models.DrawState) error
	Reset(ctx context.Context) (*models.DrawState, error)
}

// AdminUserRepository stores operator accounts.
type AdminUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
}
