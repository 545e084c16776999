package mahjong

var yaochuuKinds = [13]int{
	int(MakeTile(ColorMan, 0)), int(MakeTile(ColorMan, 8)),
	int(MakeTile(ColorPin, 0)), int(MakeTile(ColorPin, 8)),
	int(MakeTile(ColorSou, 0)), int(MakeTile(ColorSou, 8)),
	int(TileEast), int(TileSouth), int(TileWest), int(TileNorth),
	int(TileHaku), int(TileHatsu), int(TileChun),
}

// IsAgari reports whether h plus the given number of fixed melds is a
// complete winning hand. Chiitoitsu and kokushi shapes only apply to a
// fully concealed hand.
func IsAgari(h Hand, melds int) bool {
	if isAgariNormal(h, melds) {
		return true
	}
	return melds == 0 && (isAgariChiitoi(h) || isAgariKokushi(h))
}

// Waits returns the winning-kind bitset of a 3n+1 hand: kinds whose addition
// completes the hand. A kind already held four times cannot be drawn and is
// never reported.
func Waits(h Hand, melds int) [KindCount]bool {
	var waits [KindCount]bool
	for k := 0; k < KindCount; k++ {
		if h[k] >= 4 {
			continue
		}
		h[k]++
		if IsAgari(h, melds) {
			waits[k] = true
		}
		h[k]--
	}
	return waits
}

func isAgariNormal(h Hand, melds int) bool {
	need := 4 - melds
	if need < 0 {
		return false
	}
	for j := 0; j < KindCount; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

func isAgariChiitoi(h Hand) bool {
	pairs := 0
	for k := 0; k < KindCount; k++ {
		pairs += int(h[k] / 2)
	}
	return pairs >= 7
}

func isAgariKokushi(h Hand) bool {
	unique, pair := 0, false
	for _, k := range yaochuuKinds {
		if h[k] > 0 {
			unique++
			if h[k] >= 2 {
				pair = true
			}
		}
	}
	return unique == 13 && pair
}

func canFormMelds(h *Hand, need int) bool {
	i := -1
	for k := 0; k < KindCount; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return need == 0
	}
	if need == 0 {
		return false
	}
	if h[i] >= 3 {
		h[i] -= 3
		ok := canFormMelds(h, need-1)
		h[i] += 3
		if ok {
			return true
		}
	}
	if Tile(i).IsSuit() && Tile(i).Point() <= 6 {
		if h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			ok := canFormMelds(h, need-1)
			h[i]++
			h[i+1]++
			h[i+2]++
			if ok {
				return true
			}
		}
	}
	return false
}
