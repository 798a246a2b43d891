package engine

import (
	"time"

	"github.com/luckydraw/draw-backend/internal/models"
)

// Range bounds how many winners across all prizes may come from the excluded
// list. Either end may be nil (unbounded).
type Range struct {
	Min *int
	Max *int
}

// Options tune a single DrawPrize call.
type Options struct {
	// IncludeExcluded lifts the excluded-list gate for this call.
	IncludeExcluded bool
	// ExcludedRange, together with Prizes, enables the constrained mode
	// that bounds the cumulative count of excluded-list winners.
	ExcludedRange *Range
	// Prizes is the full prize list, needed for cross-prize slot budgeting
	// in constrained mode.
	Prizes []*models.PrizeConfig
	// DrawCount caps how many winners this call may select out of the
	// prize's remaining quota. Zero means the whole remaining quota.
	DrawCount int
}

// DrawPrize selects winners for one prize and commits them into state. It
// returns only the winners selected by this call. The call is atomic: either
// every selection is appended to both state.Winners and the per-prize list,
// or an error is returned and state is untouched.
func (e *Engine) DrawPrize(
	prize *models.PrizeConfig,
	people []*models.Person,
	state *models.DrawState,
	globalMustWin map[string]bool,
	excludedIDs map[string]bool,
	opts Options,
) ([]models.WinnerRecord, error) {
	if opts.DrawCount < 0 {
		return nil, configErrorf("draw count must not be negative, got %d", opts.DrawCount)
	}
	if excludedIDs == nil {
		excludedIDs = map[string]bool{}
	}
	if globalMustWin == nil {
		globalMustWin = map[string]bool{}
	}

	prizeState := state.Prize(prize.PrizeID)
	existingPrizeWinners := setOf(prizeState.Winners)

	remaining := RemainingSlots(prize, state)
	if remaining <= 0 {
		return nil, nil
	}
	if opts.DrawCount > 0 && opts.DrawCount < remaining {
		remaining = opts.DrawCount
	}

	constrained := opts.ExcludedRange != nil && !opts.IncludeExcluded && len(opts.Prizes) > 0
	blockGate := prize.ExcludeExcludedList && !opts.IncludeExcluded

	// Guaranteed phase: honor must-win ids in configured order, up to the
	// slot budget. Ids missing from the roster are skipped silently. When
	// the constrained quota is active, excluded-list members stay eligible
	// here and count against the quota instead of being skipped.
	selected := make([]models.WinnerRecord, 0, remaining)
	selectedIDs := map[string]bool{}
	excludedSelected := 0
	for _, mustID := range prize.MustWinIDs {
		if len(selected) >= remaining {
			break
		}
		if existingPrizeWinners[mustID] {
			continue
		}
		if blockGate && !constrained && excludedIDs[mustID] {
			continue
		}
		person := findPerson(people, mustID)
		if person == nil {
			continue
		}
		selected = append(selected, newRecord(prize, person, models.SourceMustWin))
		selectedIDs[person.PersonID] = true
		if excludedIDs[person.PersonID] {
			excludedSelected++
		}
	}

	// Random phase: fill whatever the guarantees left open.
	need := remaining - len(selected)
	if need > 0 {
		if constrained {
			picks, err := e.drawConstrained(prize, people, state, globalMustWin, excludedIDs, opts, selectedIDs, excludedSelected, need)
			if err != nil {
				return nil, err
			}
			selected = append(selected, picks...)
		} else {
			pool := withoutSelected(eligiblePool(prize, people, state, globalMustWin, excludedIDs, blockGate), selectedIDs)
			for _, person := range e.sample(pool, need) {
				selected = append(selected, newRecord(prize, person, models.SourceRandom))
			}
		}
	}

	// Commit: the paired appends happen only after every validation passed.
	for _, record := range selected {
		state.Winners = append(state.Winners, record)
		prizeState.Winners = append(prizeState.Winners, record.PersonID)
	}
	return selected, nil
}

func newRecord(prize *models.PrizeConfig, person *models.Person, source string) models.WinnerRecord {
	return models.WinnerRecord{
		Timestamp:  time.Now(),
		PrizeID:    prize.PrizeID,
		PrizeName:  prize.Name,
		PersonID:   person.PersonID,
		PersonName: person.Name,
		Department: person.Department,
		Source:     source,
	}
}

func withoutSelected(pool []*models.Person, selectedIDs map[string]bool) []*models.Person {
	if len(selectedIDs) == 0 {
		return pool
	}
	filtered := pool[:0]
	for _, person := range pool {
		if !selectedIDs[person.PersonID] {
			filtered = append(filtered, person)
		}
	}
	return filtered
}
