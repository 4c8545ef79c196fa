package reviews

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HORNET-Storage/nostreats/lib/types"
)

type fixedPicker int

func (p fixedPicker) IntN(n int) int { return int(p) % n }

func ratings(values ...int) []types.Review {
	out := make([]types.Review, len(values))
	for i, v := range values {
		out[i] = types.Review{ID: string(rune('a' + i)), PubKey: string(rune('A' + i)), Rating: v}
	}
	return out
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 4.7, AverageRating(ratings(5, 5, 4)))
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.0, AverageRating(ratings(3)))
	assert.Equal(t, 2.5, AverageRating(ratings(2, 3)))
	assert.Equal(t, 1.3, AverageRating(ratings(1, 1, 2)))
}

func TestAverageRating_HalfRoundsAwayFromZero(t *testing.T) {
	// 81/20 = 4.05
	values := make([]int, 0, 20)
	for i := 0; i < 19; i++ {
		values = append(values, 4)
	}
	values = append(values, 5)
	assert.Equal(t, 4.1, AverageRating(ratings(values...)))

	// 101/25 = 4.04
	values = values[:0]
	for i := 0; i < 24; i++ {
		values = append(values, 4)
	}
	values = append(values, 5)
	assert.Equal(t, 4.0, AverageRating(ratings(values...)))
}

func TestPickFeatured_NoFiveStar(t *testing.T) {
	assert.Nil(t, PickFeatured(ratings(4, 3, 1), fixedPicker(0)))
	assert.Nil(t, PickFeatured(nil, nil))
}

func TestPickFeatured_SingleFiveStar(t *testing.T) {
	input := ratings(4, 5, 3)
	for i := 0; i < 20; i++ {
		featured := PickFeatured(input, nil)
		require.NotNil(t, featured)
		assert.Equal(t, "b", featured.ID)
	}
}

func TestPickFeatured_InjectedPicker(t *testing.T) {
	input := ratings(5, 2, 5, 5)

	assert.Equal(t, "a", PickFeatured(input, fixedPicker(0)).ID)
	assert.Equal(t, "c", PickFeatured(input, fixedPicker(1)).ID)
	assert.Equal(t, "d", PickFeatured(input, fixedPicker(2)).ID)
}

func TestPickFeatured_SeededPickerIsRepeatable(t *testing.T) {
	input := ratings(5, 5, 5, 5, 5, 5, 5, 5)

	first := PickFeatured(input, NewPicker(42))
	require.NotNil(t, first)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = PickFeatured(input, NewPicker(42)).ID
		}(i)
	}
	wg.Wait()

	for _, id := range results {
		assert.Equal(t, first.ID, id)
	}
}
