package mahjong

import "strings"

// Hand is a concealed-tile count vector over the 34 kinds. Red fives are
// folded onto their kind; callers track aka possession separately.
type Hand [KindCount]uint8

func HandFromTiles(tiles []Tile) Hand {
	var h Hand
	for _, t := range tiles {
		h[t.Kind()]++
	}
	return h
}

func (h Hand) Count() int {
	sum := 0
	for _, n := range h {
		sum += int(n)
	}
	return sum
}

// String renders the hand in suit-grouped mjai shorthand, e.g. "123m55p EE".
func (h Hand) String() string {
	var b strings.Builder
	for c := ColorMan; c <= ColorSou; c++ {
		wrote := false
		for p := 0; p < 9; p++ {
			for i := uint8(0); i < h[MakeTile(c, p)]; i++ {
				b.WriteByte(byte('1' + p))
				wrote = true
			}
		}
		if wrote {
			b.WriteByte("mps"[c])
			b.WriteByte(' ')
		}
	}
	for t := TileEast; t <= TileChun; t++ {
		for i := uint8(0); i < h[t]; i++ {
			b.WriteString(t.Name())
		}
	}
	return strings.TrimSpace(b.String())
}

// CountYaochuuKinds returns the number of distinct terminal/honor kinds held.
func (h Hand) CountYaochuuKinds() int {
	kinds := 0
	for k := 0; k < KindCount; k++ {
		if h[k] > 0 && Tile(k).IsYaochuu() {
			kinds++
		}
	}
	return kinds
}
