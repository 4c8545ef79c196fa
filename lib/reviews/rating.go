package reviews

import (
	"math/rand/v2"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

// AverageRating returns the mean rating rounded to one decimal place, half
// away from zero. The rounding is done on integer tenths so that a mean of
// exactly x.x5 always rounds up. An empty slice averages to 0.
func AverageRating(reviews []types.Review) float64 {
	n := int64(len(reviews))
	if n == 0 {
		return 0
	}

	var sum int64
	for _, review := range reviews {
		sum += int64(review.Rating)
	}

	// round(10*sum/n) = floor((20*sum + n) / 2n) for non-negative sums
	var tenths int64
	if sum >= 0 {
		tenths = (20*sum + n) / (2 * n)
	} else {
		tenths = -((-20*sum + n) / (2 * n))
	}

	return float64(tenths) / 10
}

// Picker chooses an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// DefaultPicker draws from the process-wide random source
var DefaultPicker Picker = globalPicker{}

// NewPicker returns a deterministic picker for the given seed. The picker is
// stateful and must not be shared between goroutines.
func NewPicker(seed uint64) Picker {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// PickerSource hands out the picker used by a single summary
type PickerSource func() Picker

// SeededSource returns a source that starts every summary from a fresh
// picker seeded with seed.
func SeededSource(seed uint64) PickerSource {
	return func() Picker {
		return NewPicker(seed)
	}
}

// PickFeatured selects one five-star review uniformly at random using
// picker, or returns nil if there are none. A nil picker uses DefaultPicker.
func PickFeatured(reviews []types.Review, picker Picker) *types.Review {
	var fiveStar []types.Review
	for _, review := range reviews {
		if review.Rating == 5 {
			fiveStar = append(fiveStar, review)
		}
	}

	if len(fiveStar) == 0 {
		return nil
	}
	if picker == nil {
		picker = DefaultPicker
	}

	featured := fiveStar[picker.IntN(len(fiveStar))]
	return &featured
}
