package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckydraw/draw-backend/internal/models"
)

func intp(v int) *int { return &v }

func excludedSet(ids ...string) map[string]bool {
	return setOf(ids)
}

func countExcluded(state *models.DrawState, excluded map[string]bool) int {
	n := 0
	for _, w := range state.Winners {
		if excluded[w.PersonID] {
			n++
		}
	}
	return n
}

func TestConstrainedRangeValidation(t *testing.T) {
	people := roster(6)
	excluded := excludedSet("P001")

	cases := []struct {
		name   string
		bounds *Range
	}{
		{"negative min", &Range{Min: intp(-1)}},
		{"negative max", &Range{Max: intp(-2)}},
		{"inverted", &Range{Min: intp(3), Max: intp(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng := newTestEngine(1)
			prize := prizeConfig("P1", 2, "P002")
			state := models.NewDrawState()

			_, err := eng.DrawPrize(prize, people, state, nil, excluded, Options{
				ExcludedRange: tc.bounds,
				Prizes:        []*models.PrizeConfig{prize},
			})

			require.Error(t, err)
			assert.True(t, IsConfigError(err))
			// The whole call rolls back, including the guaranteed pick.
			assert.Empty(t, state.Winners)
			assert.Empty(t, state.Prize("P1").Winners)
		})
	}
}

func TestConstrainedMaxAlreadyExceeded(t *testing.T) {
	eng := newTestEngine(1)
	people := roster(8)
	excluded := excludedSet("P001", "P002")
	first := prizeConfig("P1", 2)
	second := prizeConfig("P2", 2)
	prizes := []*models.PrizeConfig{first, second}

	state := models.NewDrawState()
	for _, id := range []string{"P001", "P002"} {
		state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: id})
		state.Prize("P1").Winners = append(state.Prize("P1").Winners, id)
	}

	_, err := eng.DrawPrize(second, people, state, nil, excluded, Options{
		ExcludedRange: &Range{Max: intp(1)},
		Prizes:        prizes,
	})

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Len(t, state.Winners, 2, "state must be untouched on failure")
	assert.Empty(t, state.Prize("P2").Winners)
}

func TestConstrainedMinForcedIntoFinalDraw(t *testing.T) {
	// Only this prize's slots are left, so the whole minimum must land now.
	people := roster(10)
	excluded := excludedSet("P008", "P009", "P010")
	prize := prizeConfig("P1", 2)
	prizes := []*models.PrizeConfig{prize}

	for seed := int64(0); seed < 10; seed++ {
		eng := newTestEngine(seed)
		state := models.NewDrawState()
		// A prior winner keeps the first-draw guard out of the way.
		state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: "P007"})
		state.Prize("P1").Winners = []string{"P007"}
		prize.Count = 3

		winners, err := eng.DrawPrize(prize, people, state, nil, excluded, Options{
			ExcludedRange: &Range{Min: intp(2), Max: intp(2)},
			Prizes:        prizes,
		})

		require.NoError(t, err)
		require.Len(t, winners, 2)
		assert.Equal(t, 2, countExcluded(state, excluded), "seed %d", seed)
	}
}

func TestConstrainedMinInfeasible(t *testing.T) {
	t.Run("more than open slots", func(t *testing.T) {
		eng := newTestEngine(2)
		prize := prizeConfig("P1", 1)
		state := models.NewDrawState()
		state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: "P005"})
		state.Prize("P1").Winners = []string{"P005"}
		prize.Count = 2

		_, err := eng.DrawPrize(prize, roster(6), state, nil, excludedSet("P001", "P002"), Options{
			ExcludedRange: &Range{Min: intp(2)},
			Prizes:        []*models.PrizeConfig{prize},
		})

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Len(t, state.Winners, 1)
	})

	t.Run("more than excluded candidates", func(t *testing.T) {
		eng := newTestEngine(2)
		prize := prizeConfig("P1", 3)
		state := models.NewDrawState()
		state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: "P005"})
		state.Prize("P1").Winners = []string{"P005"}
		prize.Count = 4

		_, err := eng.DrawPrize(prize, roster(6), state, nil, excludedSet("P001"), Options{
			ExcludedRange: &Range{Min: intp(2)},
			Prizes:        []*models.PrizeConfig{prize},
		})

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Len(t, state.Winners, 1)
	})
}

func TestConstrainedFirstDrawKeepsOneSlotOutside(t *testing.T) {
	// With no winners recorded yet and non-excluded candidates available,
	// the first draw may not hand every slot to the excluded list.
	people := roster(12)
	excluded := excludedSet("P001", "P002", "P003", "P004", "P005", "P006")
	prize := prizeConfig("P1", 3)

	for seed := int64(0); seed < 25; seed++ {
		eng := newTestEngine(seed)
		state := models.NewDrawState()

		winners, err := eng.DrawPrize(prize, people, state, nil, excluded, Options{
			ExcludedRange: &Range{Min: intp(0), Max: intp(10)},
			Prizes:        []*models.PrizeConfig{prize},
		})

		require.NoError(t, err)
		require.Len(t, winners, 3)
		assert.LessOrEqual(t, countExcluded(state, excluded), 2, "seed %d: first draw went fully to the excluded list", seed)
	}
}

func TestConstrainedShortOtherPoolForcesExcludedPicks(t *testing.T) {
	// Only one candidate outside the excluded list: two of three slots must
	// come from it even with min unset.
	people := roster(6)
	excluded := excludedSet("P001", "P002", "P003", "P004")
	prize := prizeConfig("P1", 4)

	for seed := int64(0); seed < 10; seed++ {
		eng := newTestEngine(seed)
		state := models.NewDrawState()
		state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: "P006"})
		state.Prize("P1").Winners = []string{"P006"}

		winners, err := eng.DrawPrize(prize, people, state, nil, excluded, Options{
			ExcludedRange: &Range{Min: intp(0), Max: intp(4)},
			Prizes:        []*models.PrizeConfig{prize},
		})

		require.NoError(t, err)
		require.Len(t, winners, 3)
		assert.GreaterOrEqual(t, countExcluded(state, excluded), 2, "seed %d", seed)
	}
}

func TestConstrainedGuaranteedPickCountsTowardQuota(t *testing.T) {
	// A must-win id on the excluded list is honored under the constrained
	// quota and consumes part of the budget.
	people := roster(8)
	excluded := excludedSet("P001", "P002")
	prize := prizeConfig("P1", 3, "P001")
	state := models.NewDrawState()
	state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: "P008"})
	state.Prize("P1").Winners = []string{"P008"}
	prize.Count = 4

	eng := newTestEngine(6)
	winners, err := eng.DrawPrize(prize, people, state, nil, excluded, Options{
		ExcludedRange: &Range{Min: intp(1), Max: intp(1)},
		Prizes:        []*models.PrizeConfig{prize},
	})

	require.NoError(t, err)
	require.Len(t, winners, 3)
	assert.Equal(t, "P001", winners[0].PersonID)
	assert.Equal(t, models.SourceMustWin, winners[0].Source)
	assert.Equal(t, 1, countExcluded(state, excluded), "the guaranteed pick fills the whole quota")
}

func TestConstrainedCumulativeRangeAcrossPrizes(t *testing.T) {
	// Two prizes totalling 10 slots, 3 excluded-list candidates, range
	// [2, 4]: after both prizes are exhausted the cumulative excluded-list
	// winner count always lands inside the range, with no error raised.
	excluded := excludedSet("P001", "P002", "P003")

	for seed := int64(0); seed < 30; seed++ {
		eng := newTestEngine(seed)
		people := roster(20)
		first := prizeConfig("P1", 5)
		second := prizeConfig("P2", 5)
		prizes := []*models.PrizeConfig{first, second}
		state := models.NewDrawState()

		opts := Options{
			ExcludedRange: &Range{Min: intp(2), Max: intp(4)},
			Prizes:        prizes,
		}
		for _, prize := range prizes {
			_, err := eng.DrawPrize(prize, people, state, nil, excluded, opts)
			require.NoError(t, err, "seed %d: feasible inputs must never raise", seed)
		}

		require.Len(t, state.Winners, 10, "seed %d", seed)
		got := countExcluded(state, excluded)
		assert.GreaterOrEqual(t, got, 2, "seed %d", seed)
		assert.LessOrEqual(t, got, 4, "seed %d", seed)
		checkStateSync(t, state)
	}
}

func TestConstrainedStepByStepDrawsStayInRange(t *testing.T) {
	// Ceremony mode: one winner per call, quota still honored overall.
	excluded := excludedSet("P001", "P002")

	for seed := int64(0); seed < 10; seed++ {
		eng := newTestEngine(seed)
		people := roster(10)
		prize := prizeConfig("P1", 4)
		prizes := []*models.PrizeConfig{prize}
		state := models.NewDrawState()

		opts := Options{
			ExcludedRange: &Range{Min: intp(1), Max: intp(2)},
			Prizes:        prizes,
			DrawCount:     1,
		}
		for i := 0; i < 4; i++ {
			_, err := eng.DrawPrize(prize, people, state, nil, excluded, opts)
			require.NoError(t, err, "seed %d step %d", seed, i)
		}

		require.Len(t, state.Winners, 4, "seed %d", seed)
		got := countExcluded(state, excluded)
		assert.GreaterOrEqual(t, got, 1, "seed %d", seed)
		assert.LessOrEqual(t, got, 2, "seed %d", seed)
	}
}

func TestConstrainedModeRequiresPrizeList(t *testing.T) {
	// Without the prize list there is no cross-prize budget; the draw falls
	// back to the simple gated mode and excluded people cannot win.
	people := roster(6)
	excluded := excludedSet("P001", "P002")

	for seed := int64(0); seed < 10; seed++ {
		eng := newTestEngine(seed)
		state := models.NewDrawState()

		winners, err := eng.DrawPrize(prizeConfig("P1", 3), people, state, nil, excluded, Options{
			ExcludedRange: &Range{Min: intp(1), Max: intp(2)},
		})

		require.NoError(t, err)
		require.Len(t, winners, 3)
		assert.Equal(t, 0, countExcluded(state, excluded), "seed %d", seed)
	}
}

func TestConstrainedAtomicityOnFailure(t *testing.T) {
	eng := newTestEngine(4)
	people := roster(6)
	excluded := excludedSet("P001")
	prize := prizeConfig("P1", 2, "P002")
	state := models.NewDrawState()
	state.Winners = append(state.Winners, models.WinnerRecord{PrizeID: "P1", PersonID: "P006"})
	state.Prize("P1").Winners = []string{"P006"}
	prize.Count = 3

	before := fmt.Sprintf("%+v", state.Winners)

	// A minimum of 3 cannot be met: after the guaranteed pick only one slot
	// is open in this draw and no other prize has slots left over.
	_, err := eng.DrawPrize(prize, people, state, nil, excluded, Options{
		ExcludedRange: &Range{Min: intp(3)},
		Prizes:        []*models.PrizeConfig{prize},
	})

	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Equal(t, before, fmt.Sprintf("%+v", state.Winners))
	assert.Equal(t, []string{"P006"}, state.Prize("P1").Winners,
		"the guaranteed-phase pick must be rolled back with everything else")
}
