package mahjong

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handOf(t *testing.T, names string) Hand {
	t.Helper()
	tiles, err := ParseTiles(strings.Fields(names))
	require.NoError(t, err)
	return HandFromTiles(tiles)
}

func TestShanten(t *testing.T) {
	tests := []struct {
		hand  string
		melds int
		want  int
	}{
		// shanpon tenpai
		{"1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S", 0, 0},
		// pure nine gates
		{"1m 1m 1m 2m 3m 4m 5m 6m 7m 8m 9m 9m 9m", 0, 0},
		// chiitoitsu tenpai
		{"1m 1m 3p 3p 5s 5s 7s 7s E E S S W", 0, 0},
		// kokushi thirteen-wait
		{"1m 9m 1p 9p 1s 9s E S W N P F C", 0, 0},
		// three complete runs, no pair material among honors
		{"1m 2m 3m 4p 5p 6p 7s 8s 9s E S W N", 0, 2},
		// fully scattered: chiitoi/kokushi cap the distance
		{"1m 4m 7m 1p 4p 7p 1s 4s 7s E S W N", 0, 6},
		// open hand, two fixed melds
		{"2p 2p 3p 4p 5p 6p 7p", 2, 0},
		{"2p 2p 3p 5p 6p 9p 9p", 2, 1},
	}
	for _, tt := range tests {
		h := handOf(t, tt.hand)
		assert.Equal(t, tt.want, Shanten(h, tt.melds), tt.hand)
	}
}

func TestShantenCountsPairsAsPartialSets(t *testing.T) {
	tests := []struct {
		hand  string
		melds int
		want  int
	}{
		// shanpon tenpai: the second pair must count toward a triplet
		{"1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S", 0, 0},
		{"2m 2m 4p 5p 6p 7s 8s 9s W W", 1, 0},
		// three pairs: one pair, two partials, one floater
		{"1m 1m 2m 3m 4m 5p 5p 6s 7s 8s E E W", 0, 1},
		// triplet plus two pairs behind two fixed melds
		{"3p 3p 3p 7p 7p 9s 9s", 2, 0},
	}
	for _, tt := range tests {
		h := handOf(t, tt.hand)
		assert.Equal(t, tt.want, Shanten(h, tt.melds), tt.hand)
	}
}

func TestIsAgari(t *testing.T) {
	tests := []struct {
		hand  string
		melds int
		want  bool
	}{
		{"1m 2m 3m 4p 5p 6p 7s 8s 9s E E E S S", 0, true},
		{"1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S W", 0, false},
		{"1m 1m 3p 3p 5s 5s 7s 7s E E S S W W", 0, true},
		{"1m 9m 1p 9p 1s 9s E S W N P F C E", 0, true},
		{"4p 5p 6p W W", 3, true},
		{"4p 5p 7p W W", 3, false},
		// chiitoi shape does not apply to an open hand
		{"1m 1m 3p 3p 5s 5s W W", 3, false},
	}
	for _, tt := range tests {
		h := handOf(t, tt.hand)
		assert.Equal(t, tt.want, IsAgari(h, tt.melds), tt.hand)
	}
}

func TestWaits(t *testing.T) {
	tests := []struct {
		hand  string
		melds int
		waits string
	}{
		{"2m 3m 4p 5p 6p 7s 8s 9s E E E S S", 0, "1m 4m"},
		{"1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S", 0, "E S"},
		{"1m 1m 3p 3p 5s 5s 7s 7s E E S S W", 0, "W"},
		{"1m 9m 1p 9p 1s 9s E S W N P F C", 0, "1m 9m 1p 9p 1s 9s E S W N P F C"},
		{"4p 5p W W", 3, "3p 6p"},
	}
	for _, tt := range tests {
		h := handOf(t, tt.hand)
		got := Waits(h, tt.melds)
		wantTiles, err := ParseTiles(strings.Fields(tt.waits))
		require.NoError(t, err)
		var want [KindCount]bool
		for _, w := range wantTiles {
			want[w.Kind()] = true
		}
		assert.Equal(t, want, got, tt.hand)
	}
}

func TestWaitsSkipsExhaustedKind(t *testing.T) {
	// Four 1m in hand: the fifth cannot be drawn, so even though the shape
	// would accept it the kind is not reported.
	h := handOf(t, "1m 1m 1m 1m 2m 3m 4p 5p 6p 7s 8s 9s E")
	waits := Waits(h, 0)
	assert.False(t, waits[0])
	assert.True(t, waits[TileEast])
}

func TestHandString(t *testing.T) {
	h := handOf(t, "1m 2m 3m 5p 5p E E")
	assert.Equal(t, "123m 55p EE", h.String())
	assert.Equal(t, 7, h.Count())
}

func TestCountYaochuuKinds(t *testing.T) {
	assert.Equal(t, 13, handOf(t, "1m 9m 1p 9p 1s 9s E S W N P F C").CountYaochuuKinds())
	assert.Equal(t, 2, handOf(t, "1m 1m 9m 2p 3p 4p 5s 6s 7s").CountYaochuuKinds())
}
