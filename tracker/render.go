package tracker

import (
	"fmt"
	"strings"

	"github.com/kevin-chtw/tw_riichi/mahjong"
)

// BriefInfo renders a multi-line snapshot of the tracked view for logs and
// test failure output. Seats are relative; kawa rows are chronological.
func (p *PlayerState) BriefInfo() string {
	var b strings.Builder

	fmt.Fprintf(&b, "player (abs): %d\n", p.playerID)
	fmt.Fprintf(&b, "oya (rel): %d\n", p.oya)
	fmt.Fprintf(&b, "kyoku: %s%d-%d\n", p.bakaze, p.kyoku, p.honba)
	fmt.Fprintf(&b, "jikaze: %s\n", p.jikaze)
	fmt.Fprintf(&b, "kyotaku: %d\n", p.kyotaku)
	fmt.Fprintf(&b, "scores (rel): %v\n", p.scores)
	fmt.Fprintf(&b, "rank: %d\n", p.rank)
	fmt.Fprintf(&b, "tehai: %s\n", p.tehai.String())
	for seat := int32(0); seat < SeatCount; seat++ {
		for _, meld := range p.fuuroOverview[seat] {
			fmt.Fprintf(&b, "fuuro[%d]: %s\n", seat, mahjong.TilesName(meld))
		}
		for _, kind := range p.ankanOverview[seat] {
			fmt.Fprintf(&b, "ankan[%d]: %sx4\n", seat, kind)
		}
	}
	fmt.Fprintf(&b, "tehai len div3: %d\n", p.tehaiLenDiv3)
	fmt.Fprintf(&b, "shanten: %d\n", p.shanten)
	fmt.Fprintf(&b, "furiten: %v\n", p.Furiten())
	fmt.Fprintf(&b, "waits: %s\n", p.waitNames())
	fmt.Fprintf(&b, "dora indicators: %s\n", mahjong.TilesName(p.doraIndicators))
	fmt.Fprintf(&b, "doras owned (rel): %v\n", p.dorasOwned)
	fmt.Fprintf(&b, "doras seen: %d\n", p.dorasSeen)
	fmt.Fprintf(&b, "ankan candidates: %s\n", mahjong.TilesName(p.ankanCandidates))
	fmt.Fprintf(&b, "kakan candidates: %s\n", mahjong.TilesName(p.kakanCandidates))
	fmt.Fprintf(&b, "last self tsumo: %s\n", p.lastSelfTsumo)
	fmt.Fprintf(&b, "last kawa tile: %s\n", p.lastKawaTile)
	fmt.Fprintf(&b, "last kan tile: %s\n", p.intermediateKan)
	if c := p.intermediateChiPon; c != nil {
		fmt.Fprintf(&b, "last call: %s + %s %s\n", c.Tile, c.Consumed[0], c.Consumed[1])
	}
	fmt.Fprintf(&b, "kakan robbable: %v\n", p.chankanChance)
	fmt.Fprintf(&b, "tiles left: %d\n", p.tilesLeft)
	fmt.Fprintf(&b, "candidates: %s\n", p.lastCans)

	b.WriteString("kawa (rel):\n")
	rows := 0
	for seat := int32(0); seat < SeatCount; seat++ {
		if n := len(p.kawa[seat]); n > rows {
			rows = n
		}
	}
	for row := 0; row < rows; row++ {
		fmt.Fprintf(&b, "%2d.", row)
		for seat := int32(0); seat < SeatCount; seat++ {
			if row >= len(p.kawa[seat]) {
				b.WriteString("\t-")
				continue
			}
			item := p.kawa[seat][row]
			cell := item.Tile.String()
			if item.Tsumogiri {
				cell += "*"
			}
			if item.Riichi {
				cell += "r"
			}
			if item.Claimed {
				cell += "^"
			}
			b.WriteString("\t" + cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *PlayerState) waitNames() string {
	var waits []mahjong.Tile
	for k, w := range p.waits {
		if w {
			waits = append(waits, mahjong.Tile(k))
		}
	}
	return mahjong.TilesName(waits)
}
