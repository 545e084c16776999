package tracker

import "github.com/kevin-chtw/tw_riichi/mahjong"

// updateShanten13 recomputes shanten and waits for a 3n+1 hand and applies
// the permanent furiten rule against the seat's own discard history.
func (p *PlayerState) updateShanten13() {
	melds := p.meldCount()
	p.shanten = int32(mahjong.Shanten(p.tehai, melds))
	p.waits = [mahjong.KindCount]bool{}
	if p.shanten != 0 {
		return
	}
	p.waits = mahjong.Waits(p.tehai, melds)
	for k, w := range p.waits {
		if w && p.discardedTiles[k] {
			p.atFuriten = true
			break
		}
	}
}

// updateShanten14 classifies every discard of a 3n+2 hand: the ones keeping
// the best reachable shanten and the ones holding the previous shanten.
func (p *PlayerState) updateShanten14() {
	melds := p.meldCount()
	prev := p.shanten
	var perKind [mahjong.KindCount]int32
	best := int32(8)
	for k := 0; k < mahjong.KindCount; k++ {
		perKind[k] = 9
		if p.tehai[k] == 0 {
			continue
		}
		p.tehai[k]--
		perKind[k] = int32(mahjong.Shanten(p.tehai, melds))
		p.tehai[k]++
		if perKind[k] < best {
			best = perKind[k]
		}
	}

	p.keepShantenDiscards = [mahjong.KindCount]bool{}
	p.nextShantenDiscards = [mahjong.KindCount]bool{}
	p.hasNextShantenDiscard = best < prev
	for k := 0; k < mahjong.KindCount; k++ {
		if p.tehai[k] == 0 {
			continue
		}
		if p.hasNextShantenDiscard {
			p.nextShantenDiscards[k] = perKind[k] == best
			p.keepShantenDiscards[k] = perKind[k] == prev
		} else {
			p.keepShantenDiscards[k] = perKind[k] == best
		}
	}

	if mahjong.IsAgari(p.tehai, melds) {
		p.shanten = -1
	} else {
		p.shanten = best
	}
}

// updateKanCandidates refreshes the declarable ankan and kakan kinds after a
// self draw. Under an accepted riichi only a wait-preserving ankan of the
// drawn kind survives, and only when the rule allows it.
func (p *PlayerState) updateKanCandidates(drawn mahjong.Tile) {
	p.ankanCandidates = nil
	p.kakanCandidates = nil
	if p.tilesLeft == 0 || p.kansOnBoard >= MaxKans {
		return
	}

	for k := 0; k < mahjong.KindCount; k++ {
		if p.tehai[k] != 4 {
			continue
		}
		if p.riichiAccepted[0] {
			if !p.rule.AnkanInRiichi || k != drawn.Kind() || !p.ankanKeepsWaits(k) {
				continue
			}
		}
		p.ankanCandidates = append(p.ankanCandidates, mahjong.Tile(k))
	}

	if p.riichiAccepted[0] {
		return
	}
	for _, k := range p.pons {
		if p.tehai[k.Kind()] >= 1 {
			p.kakanCandidates = append(p.kakanCandidates, k)
		}
	}
}

// ankanKeepsWaits checks that declaring an ankan of kind k leaves the hand
// tenpai on exactly the waits declared at riichi.
func (p *PlayerState) ankanKeepsWaits(k int) bool {
	h := p.tehai
	h[k] -= 4
	melds := p.meldCount() + 1
	if mahjong.Shanten(h, melds) != 0 {
		return false
	}
	return mahjong.Waits(h, melds) == p.waits
}

// legalDiscards lists every discardable tile, aka ids listed separately from
// their plain kind. An accepted riichi forces the drawn tile back out.
func (p *PlayerState) legalDiscards() []mahjong.Tile {
	if p.riichiAccepted[0] && p.lastSelfTsumo.IsValid() {
		return []mahjong.Tile{p.lastSelfTsumo}
	}
	var tiles []mahjong.Tile
	for k := 0; k < mahjong.KindCount; k++ {
		if p.tehai[k] == 0 || p.forbiddenTiles[k] {
			continue
		}
		plain := p.tehai[k]
		if aka, isFive := akaOfKind(k); isFive && p.akasInHand[aka-mahjong.TileAkaMan] {
			tiles = append(tiles, aka)
			plain--
		}
		if plain > 0 {
			tiles = append(tiles, mahjong.Tile(k))
		}
	}
	return tiles
}
