package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePeople(t *testing.T) {
	people := []*Person{
		{PersonID: "P001", Name: "Alice", Department: "Engineering"},
		{PersonID: "P002", Name: "Bob", Department: "Finance"},
	}
	require.NoError(t, ValidatePeople(people))

	assert.Error(t, ValidatePeople([]*Person{{PersonID: "", Name: "Alice", Department: "Engineering"}}))
	assert.Error(t, ValidatePeople([]*Person{{PersonID: "P001", Name: "Alice", Department: ""}}))
	assert.Error(t, ValidatePeople(append(people, &Person{PersonID: "P001", Name: "Carol", Department: "HR"})))
}

func TestValidatePrizes(t *testing.T) {
	prizes := []*PrizeConfig{
		{PrizeID: "gold", Name: "Gold", Count: 2},
		{PrizeID: "silver", Name: "Silver", Count: 5},
	}
	require.NoError(t, ValidatePrizes(prizes))

	assert.Error(t, ValidatePrizes([]*PrizeConfig{{PrizeID: "gold", Name: "Gold", Count: 0}}))
	assert.Error(t, ValidatePrizes([]*PrizeConfig{{PrizeID: "", Name: "Gold", Count: 1}}))
	assert.Error(t, ValidatePrizes(append(prizes, &PrizeConfig{PrizeID: "gold", Name: "Again", Count: 1})))
}

func TestBuildGlobalMustWin(t *testing.T) {
	prizes := []*PrizeConfig{
		{PrizeID: "gold", Name: "Gold", Count: 2, MustWinIDs: []string{"P001", "P002"}},
		{PrizeID: "silver", Name: "Silver", Count: 2, MustWinIDs: []string{"P002", "P003"}},
	}

	mustWin := BuildGlobalMustWin(prizes)
	assert.Equal(t, map[string]bool{"P001": true, "P002": true, "P003": true}, mustWin)
}

func TestDrawStateLazyPrizeEntry(t *testing.T) {
	state := NewDrawState()
	require.NotNil(t, state.Prizes)

	ps := state.Prize("gold")
	require.NotNil(t, ps)
	assert.Contains(t, state.Prizes, "gold")
	assert.Same(t, ps, state.Prize("gold"))
}

func TestGlobalWinnerIDs(t *testing.T) {
	state := NewDrawState()
	state.Winners = append(state.Winners,
		WinnerRecord{PrizeID: "gold", PersonID: "P001"},
		WinnerRecord{PrizeID: "silver", PersonID: "P002"},
	)

	assert.Equal(t, map[string]bool{"P001": true, "P002": true}, state.GlobalWinnerIDs())
}
