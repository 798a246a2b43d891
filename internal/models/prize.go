package models

import "fmt"

// PrizeConfig defines one prize and the exclusion gates applied when it is
// drawn. MustWinIDs is ordered: when slots are scarce, guaranteed winners are
// allocated in list order.
type PrizeConfig struct {
	PrizeID                string   `bson:"prizeId" json:"prize_id"`
	Name                   string   `bson:"name" json:"name"`
	Count                  int      `bson:"count" json:"count"`
	ExcludePreviousWinners bool     `bson:"excludePreviousWinners" json:"exclude_previous_winners"`
	ExcludeMustWin         bool     `bson:"excludeMustWin" json:"exclude_must_win"`
	ExcludeExcludedList    bool     `bson:"excludeExcludedList" json:"exclude_excluded_list"`
	MustWinIDs             []string `bson:"mustWinIds" json:"must_win_ids"`
}

// ValidatePrizes checks prize configs at the load boundary: ids and names
// must be non-empty, counts positive, ids unique.
func ValidatePrizes(prizes []*PrizeConfig) error {
	seen := make(map[string]bool, len(prizes))
	for _, prize := range prizes {
		if prize.PrizeID == "" || prize.Name == "" {
			return fmt.Errorf("invalid prize entry: id=%q name=%q", prize.PrizeID, prize.Name)
		}
		if prize.Count <= 0 {
			return fmt.Errorf("prize %s must have a positive slot count, got %d", prize.PrizeID, prize.Count)
		}
		if seen[prize.PrizeID] {
			return fmt.Errorf("duplicate prize id: %s", prize.PrizeID)
		}
		seen[prize.PrizeID] = true
	}
	return nil
}

// BuildGlobalMustWin returns the union of every prize's must-win list.
// A person reserved for one prize is kept out of other prizes' random pools
// so an early draw cannot use up a guaranteed winner.
func BuildGlobalMustWin(prizes []*PrizeConfig) map[string]bool {
	mustWin := make(map[string]bool)
	for _, prize := range prizes {
		for _, id := range prize.MustWinIDs {
			mustWin[id] = true
		}
	}
	return mustWin
}
