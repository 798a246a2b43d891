package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckydraw/draw-backend/internal/models"
)

func newTestEngine(seed int64) *Engine {
	return New(rand.New(rand.NewSource(seed)))
}

// roster builds n people with ids P001..Pn.
func roster(n int) []*models.Person {
	people := make([]*models.Person, 0, n)
	for i := 1; i <= n; i++ {
		people = append(people, &models.Person{
			PersonID:   fmt.Sprintf("P%03d", i),
			Name:       fmt.Sprintf("Person %d", i),
			Department: "Engineering",
		})
	}
	return people
}

func prizeConfig(id string, count int, mustWin ...string) *models.PrizeConfig {
	return &models.PrizeConfig{
		PrizeID:                id,
		Name:                   "Prize " + id,
		Count:                  count,
		ExcludePreviousWinners: true,
		ExcludeMustWin:         true,
		ExcludeExcludedList:    true,
		MustWinIDs:             mustWin,
	}
}

func TestRemainingSlots(t *testing.T) {
	prize := prizeConfig("A", 3)
	state := models.NewDrawState()

	require.Equal(t, 3, RemainingSlots(prize, state))

	// The per-prize entry is created as a side effect of the first lookup.
	_, ok := state.Prizes["A"]
	require.True(t, ok, "remaining-slot lookup should create the prize entry")

	state.Prize("A").Winners = append(state.Prize("A").Winners, "P001", "P002")
	assert.Equal(t, 1, RemainingSlots(prize, state))
}

func TestAvailablePrizes(t *testing.T) {
	first := prizeConfig("A", 1)
	second := prizeConfig("B", 2)
	third := prizeConfig("C", 1)
	state := models.NewDrawState()
	state.Prize("A").Winners = []string{"P001"}

	available := AvailablePrizes([]*models.PrizeConfig{first, second, third}, state)

	require.Len(t, available, 2)
	assert.Equal(t, "B", available[0].PrizeID, "input order must be preserved")
	assert.Equal(t, "C", available[1].PrizeID)
}

func TestEligiblePeople(t *testing.T) {
	people := roster(6)
	state := models.NewDrawState()

	// P001 already won another prize, P002 already won this prize.
	state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "other", PersonID: "P001"})
	state.Prize("A").Winners = []string{"P002"}

	prize := prizeConfig("A", 3, "P003")
	globalMustWin := map[string]bool{"P003": true, "P004": true} // P004 reserved elsewhere
	excluded := map[string]bool{"P005": true}

	ids := func(people []*models.Person) []string {
		out := make([]string, 0, len(people))
		for _, p := range people {
			out = append(out, p.PersonID)
		}
		return out
	}

	eligible := EligiblePeople(prize, people, state, globalMustWin, excluded, false)
	assert.Equal(t, []string{"P003", "P006"}, ids(eligible),
		"own must-win stays eligible; prior winners, other reservations and blocklist drop out")

	t.Run("include excluded override", func(t *testing.T) {
		eligible := EligiblePeople(prize, people, state, globalMustWin, excluded, true)
		assert.Equal(t, []string{"P003", "P005", "P006"}, ids(eligible))
	})

	t.Run("gates disabled per prize", func(t *testing.T) {
		open := prizeConfig("A", 3)
		open.ExcludePreviousWinners = false
		open.ExcludeMustWin = false
		open.ExcludeExcludedList = false
		eligible := EligiblePeople(open, people, state, globalMustWin, excluded, false)
		assert.Equal(t, []string{"P001", "P003", "P004", "P005", "P006"}, ids(eligible),
			"only the same-prize winner P002 is ever unconditionally excluded")
	})
}
