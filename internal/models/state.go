package models

import "time"

// Winner sources.
const (
	SourceMustWin = "must_win"
	SourceRandom  = "random"
)

// WinnerRecord is one allocation of a prize slot to a person. Records are
// created once at draw time and immutable afterwards.
type WinnerRecord struct {
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	PrizeID    string    `bson:"prizeId" json:"prize_id"`
	PrizeName  string    `bson:"prizeName" json:"prize_name"`
	PersonID   string    `bson:"personId" json:"person_id"`
	PersonName string    `bson:"personName" json:"person_name"`
	Department string    `bson:"department" json:"department"`
	Source     string    `bson:"source" json:"source"`
}

// PrizeState tracks the winners already recorded for one prize, in draw order.
type PrizeState struct {
	Winners []string `bson:"winners" json:"winners"`
}

// DrawState is the single mutable aggregate for a draw session: the global
// chronological winner history plus the per-prize winner lists. Every append
// to Winners is paired with exactly one append to the owning prize's list.
type DrawState struct {
	Version     int                    `bson:"version" json:"version"`
	GeneratedAt time.Time              `bson:"generatedAt" json:"generated_at"`
	Winners     []WinnerRecord         `bson:"winners" json:"winners"`
	Prizes      map[string]*PrizeState `bson:"prizes" json:"prizes"`
}

// NewDrawState returns a fresh, empty draw state.
func NewDrawState() *DrawState {
	return &DrawState{
		Version:     1,
		GeneratedAt: time.Now(),
		Winners:     []WinnerRecord{},
		Prizes:      make(map[string]*PrizeState),
	}
}

// Prize returns the per-prize state, creating an empty entry on first use.
// Reading remaining slots before any draw therefore leaves the entry behind,
// matching how persisted results have always looked.
func (s *DrawState) Prize(prizeID string) *PrizeState {
	if s.Prizes == nil {
		s.Prizes = make(map[string]*PrizeState)
	}
	ps, ok := s.Prizes[prizeID]
	if !ok {
		ps = &PrizeState{Winners: []string{}}
		s.Prizes[prizeID] = ps
	}
	return ps
}

// GlobalWinnerIDs returns the set of person ids across all recorded winners.
func (s *DrawState) GlobalWinnerIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Winners))
	for _, w := range s.Winners {
		ids[w.PersonID] = true
	}
	return ids
}
