package mahjong

// Shanten returns the shanten number of a 3n+1 hand with the given number of
// fixed melds: the minimum tile exchanges to reach tenpai plus one draw.
// 0 means tenpai. Chiitoitsu and kokushi are considered for concealed hands.
func Shanten(h Hand, melds int) int {
	best := shantenNormal(h, melds)
	if melds == 0 {
		if v := shantenChiitoi(h); v < best {
			best = v
		}
		if v := shantenKokushi(h); v < best {
			best = v
		}
	}
	return best
}

func shantenChiitoi(h Hand) int {
	pairs, unique := 0, 0
	for k := 0; k < KindCount; k++ {
		if h[k] > 0 {
			unique++
		}
		pairs += int(h[k] / 2)
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

func shantenKokushi(h Hand) int {
	unique, pair := 0, false
	for _, k := range yaochuuKinds {
		if h[k] > 0 {
			unique++
			if h[k] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

func shantenNormal(h Hand, melds int) int {
	best := 8
	dfsShanten(&h, melds, 0, 0, &best)
	return best
}

// dfsShanten decomposes the hand into melds (m, fixed melds included), at
// most one pair (p) and partial sets (t), keeping the minimum of the usual
// 8-2m-t-p formula.
func dfsShanten(h *Hand, m, p, t int, best *int) {
	if m > 4 {
		return
	}
	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}
	if sh := 8 - 2*m - t2 - p; sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < KindCount; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if h[i] >= 3 {
		h[i] -= 3
		dfsShanten(h, m+1, p, t, best)
		h[i] += 3
	}
	if p == 0 && h[i] >= 2 {
		h[i] -= 2
		dfsShanten(h, m, 1, t, best)
		h[i] += 2
	}
	if h[i] >= 2 {
		// A pair beyond the pair slot is a partial set toward a triplet.
		h[i] -= 2
		dfsShanten(h, m, p, t+1, best)
		h[i] += 2
	}
	if Tile(i).IsSuit() {
		pt := Tile(i).Point()
		if pt <= 6 && h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			dfsShanten(h, m+1, p, t, best)
			h[i]++
			h[i+1]++
			h[i+2]++
		}
		if pt <= 7 && h[i] > 0 && h[i+1] > 0 {
			h[i]--
			h[i+1]--
			dfsShanten(h, m, p, t+1, best)
			h[i]++
			h[i+1]++
		}
		if pt <= 6 && h[i] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+2]--
			dfsShanten(h, m, p, t+1, best)
			h[i]++
			h[i+2]++
		}
	}

	h[i]--
	dfsShanten(h, m, p, t, best)
	h[i]++
}
