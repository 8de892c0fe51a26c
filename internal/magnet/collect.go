package magnet

import "github.com/vovakirdan/polarity/internal/core"

// Tally holds the per-kind totals gathered during a run.
type Tally struct {
	Stars int `json:"stars"` // count
	Coins int `json:"coins"` // sum of values
	Gems  int `json:"gems"`  // sum of values
	Keys  int `json:"keys"`  // count
}

func (t *Tally) add(c Collectible) {
	switch c.Kind {
	case CollectStar:
		t.Stars++
	case CollectCoin:
		t.Coins += c.Value
	case CollectGem:
		t.Gems += c.Value
	case CollectKey:
		t.Keys++
	}
}

// Pickup reports one collectible gathered this tick.
type Pickup struct {
	ID    string          `json:"id"`
	Kind  CollectibleKind `json:"kind"`
	Value int             `json:"value"`
}

// Collect marks every uncollected item within tol of the point on both axes,
// in list order, and adds each to the tally once. Items already collected
// are skipped, so repeated calls at the same point change nothing.
func Collect(at core.Vec, items []Collectible, tol float64, tally *Tally) []Pickup {
	var picked []Pickup
	for i := range items {
		c := &items[i]
		if c.Collected || !at.Within(c.Cell.Vec(), tol) {
			continue
		}
		c.Collected = true
		tally.add(*c)
		picked = append(picked, Pickup{ID: c.ID, Kind: c.Kind, Value: c.Value})
	}
	return picked
}
