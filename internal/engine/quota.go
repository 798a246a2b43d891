package engine

import (
	"github.com/luckydraw/draw-backend/internal/models"
)

// drawConstrained fills the random phase while keeping the cumulative count
// of excluded-list winners, across every prize in scope, inside the
// configured [min, max] range. The minimum may be deferred to later prizes
// as long as enough slots stay open elsewhere; the maximum is a hard cap.
func (e *Engine) drawConstrained(
	prize *models.PrizeConfig,
	people []*models.Person,
	state *models.DrawState,
	globalMustWin map[string]bool,
	excludedIDs map[string]bool,
	opts Options,
	selectedIDs map[string]bool,
	excludedSelected int,
	need int,
) ([]models.WinnerRecord, error) {
	bounds := opts.ExcludedRange
	if bounds.Min != nil && *bounds.Min < 0 {
		return nil, configErrorf("excluded-winner minimum must not be negative, got %d", *bounds.Min)
	}
	if bounds.Max != nil && *bounds.Max < 0 {
		return nil, configErrorf("excluded-winner maximum must not be negative, got %d", *bounds.Max)
	}
	if bounds.Min != nil && bounds.Max != nil && *bounds.Max < *bounds.Min {
		return nil, configErrorf("excluded-winner range is inverted: min %d > max %d", *bounds.Min, *bounds.Max)
	}

	// Split the pool on excluded-list membership instead of gating it out.
	pool := withoutSelected(eligiblePool(prize, people, state, globalMustWin, excludedIDs, false), selectedIDs)
	var blockPool, otherPool []*models.Person
	for _, person := range pool {
		if excludedIDs[person.PersonID] {
			blockPool = append(blockPool, person)
		} else {
			otherPool = append(otherPool, person)
		}
	}

	inScope := make(map[string]bool, len(opts.Prizes))
	totalRemaining := 0
	for _, p := range opts.Prizes {
		inScope[p.PrizeID] = true
		totalRemaining += RemainingSlots(p, state)
	}
	// Slots still open in other prizes once this call's random picks land.
	remainingAfter := totalRemaining - need
	if remainingAfter < 0 {
		remainingAfter = 0
	}

	existingApplicable := 0
	existingExcluded := 0
	for _, w := range state.Winners {
		if !inScope[w.PrizeID] {
			continue
		}
		existingApplicable++
		if excludedIDs[w.PersonID] {
			existingExcluded++
		}
	}
	currentExcluded := existingExcluded + excludedSelected

	if bounds.Max != nil && currentExcluded > *bounds.Max {
		return nil, configErrorf("excluded-list winners already at %d, above the configured maximum %d", currentExcluded, *bounds.Max)
	}

	minNeededTotal := 0
	if bounds.Min != nil && *bounds.Min > currentExcluded {
		minNeededTotal = *bounds.Min - currentExcluded
	}
	// Only the shortfall that cannot fit in later draws must land now.
	minNeededNow := minNeededTotal - remainingAfter
	if minNeededNow < 0 {
		minNeededNow = 0
	}
	if minNeededNow > need {
		return nil, configErrorf("excluded-winner minimum needs %d winners this draw but only %d slots are open", minNeededNow, need)
	}
	if minNeededNow > len(blockPool) {
		return nil, configErrorf("excluded-winner minimum needs %d winners this draw but only %d excluded candidates remain", minNeededNow, len(blockPool))
	}

	minAllowed := minNeededNow
	if short := need - len(otherPool); short > minAllowed {
		minAllowed = short
	}

	maxAllowed := need
	if bounds.Max != nil {
		if room := *bounds.Max - currentExcluded; room < maxAllowed {
			maxAllowed = room
		}
	}
	if len(blockPool) < maxAllowed {
		maxAllowed = len(blockPool)
	}
	// First-impression guard: the very first draw in scope keeps at least
	// one slot outside the excluded list when that is possible at all.
	if existingApplicable == 0 && len(otherPool) > 0 && maxAllowed > need-1 {
		maxAllowed = need - 1
	}

	if minAllowed > maxAllowed {
		return nil, configErrorf("no feasible excluded-winner count for this draw (need between %d and %d)", minAllowed, maxAllowed)
	}

	excludedCount := minAllowed
	if maxAllowed > minAllowed {
		excludedCount = minAllowed + e.rnd.Intn(maxAllowed-minAllowed+1)
	}
	if need-excludedCount > len(otherPool) {
		return nil, configErrorf("not enough candidates outside the excluded list: need %d, have %d", need-excludedCount, len(otherPool))
	}

	picks := make([]models.WinnerRecord, 0, need)
	for _, person := range e.sample(blockPool, excludedCount) {
		picks = append(picks, newRecord(prize, person, models.SourceRandom))
	}
	for _, person := range e.sample(otherPool, need-excludedCount) {
		picks = append(picks, newRecord(prize, person, models.SourceRandom))
	}
	return picks, nil
}
