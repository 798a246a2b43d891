// Package engine implements the draw-selection core: eligibility resolution
// over the roster and accumulated state, guaranteed (must-win) allocation,
// and random sampling of the remaining slots. The engine mutates the shared
// DrawState only on a fully successful draw; callers serialize access.
package engine

import (
	"math/rand"
	"time"

	"github.com/luckydraw/draw-backend/internal/models"
)

// Engine performs prize draws using an injected pseudorandom source so that
// draws are reproducible under an explicit seed.
type Engine struct {
	rnd *rand.Rand
}

// New creates an Engine. A nil source gets a time-seeded one.
func New(rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rnd: rnd}
}

// RemainingSlots returns how many winners the prize can still take. The
// per-prize state entry is created here if absent.
func RemainingSlots(prize *models.PrizeConfig, state *models.DrawState) int {
	ps := state.Prize(prize.PrizeID)
	return prize.Count - len(ps.Winners)
}

// AvailablePrizes filters prizes down to those with open slots, preserving
// the input order.
func AvailablePrizes(prizes []*models.PrizeConfig, state *models.DrawState) []*models.PrizeConfig {
	available := make([]*models.PrizeConfig, 0, len(prizes))
	for _, prize := range prizes {
		if RemainingSlots(prize, state) > 0 {
			available = append(available, prize)
		}
	}
	return available
}

// EligiblePeople computes the candidate pool for one prize: roster members
// not blocked by any active gate. Recomputed fresh on every call; no caching.
func EligiblePeople(
	prize *models.PrizeConfig,
	people []*models.Person,
	state *models.DrawState,
	globalMustWin map[string]bool,
	excludedIDs map[string]bool,
	includeExcluded bool,
) []*models.Person {
	applyBlocklist := prize.ExcludeExcludedList && !includeExcluded
	return eligiblePool(prize, people, state, globalMustWin, excludedIDs, applyBlocklist)
}

// eligiblePool applies the per-prize exclusion gates. The blocklist gate is
// separate so constrained draws can split the ungated pool instead.
func eligiblePool(
	prize *models.PrizeConfig,
	people []*models.Person,
	state *models.DrawState,
	globalMustWin map[string]bool,
	excludedIDs map[string]bool,
	applyBlocklist bool,
) []*models.Person {
	prizeWinners := setOf(state.Prize(prize.PrizeID).Winners)

	excludedWinners := map[string]bool{}
	if prize.ExcludePreviousWinners {
		excludedWinners = state.GlobalWinnerIDs()
	}

	// A reservation for this prize's own guarantee list never excludes;
	// only reservations belonging to other prizes do.
	excludedMustWin := map[string]bool{}
	if prize.ExcludeMustWin {
		own := setOf(prize.MustWinIDs)
		for id := range globalMustWin {
			if !own[id] {
				excludedMustWin[id] = true
			}
		}
	}

	eligible := make([]*models.Person, 0, len(people))
	for _, person := range people {
		id := person.PersonID
		if excludedWinners[id] || excludedMustWin[id] || prizeWinners[id] {
			continue
		}
		if applyBlocklist && excludedIDs[id] {
			continue
		}
		eligible = append(eligible, person)
	}
	return eligible
}

// sample picks n distinct members from pool uniformly, at most len(pool).
func (e *Engine) sample(pool []*models.Person, n int) []*models.Person {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	picked := make([]*models.Person, len(pool))
	copy(picked, pool)
	for i := 0; i < n; i++ {
		j := i + e.rnd.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}

func setOf(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func findPerson(people []*models.Person, id string) *models.Person {
	for _, person := range people {
		if person.PersonID == id {
			return person
		}
	}
	return nil
}
