package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevin-chtw/tw_riichi/mahjong"
	"github.com/kevin-chtw/tw_riichi/mjai"
)

// Test helpers. All scripts track absolute seat 0, so relative and absolute
// seat ids coincide.

func tl(name string) mahjong.Tile {
	t, err := mahjong.ParseTile(name)
	if err != nil {
		panic(err)
	}
	return t
}

func tls(names string) []mahjong.Tile {
	fields := strings.Fields(names)
	tiles := make([]mahjong.Tile, len(fields))
	for i, f := range fields {
		tiles[i] = tl(f)
	}
	return tiles
}

func hidden13() []mahjong.Tile {
	tiles := make([]mahjong.Tile, 13)
	for i := range tiles {
		tiles[i] = mahjong.TileNull
	}
	return tiles
}

func evStartKyoku(oya int32, own string) *mjai.Event {
	ev := &mjai.Event{
		Type:       mjai.EventStartKyoku,
		Bakaze:     mahjong.TileEast,
		DoraMarker: tl("3p"),
		Kyoku:      1,
		Oya:        oya,
		Scores:     [mjai.SeatCount]int32{25000, 25000, 25000, 25000},
	}
	for i := range ev.Tehais {
		ev.Tehais[i] = hidden13()
	}
	ev.Tehais[0] = tls(own)
	return ev
}

func evTsumo(actor int32, pai string) *mjai.Event {
	t := mahjong.TileNull
	if pai != "" {
		t = tl(pai)
	}
	return &mjai.Event{Type: mjai.EventTsumo, Actor: actor, Pai: t}
}

func evDahai(actor int32, pai string, tsumogiri bool) *mjai.Event {
	return &mjai.Event{Type: mjai.EventDahai, Actor: actor, Pai: tl(pai), Tsumogiri: tsumogiri}
}

func evChi(actor, target int32, pai, consumed string) *mjai.Event {
	return &mjai.Event{Type: mjai.EventChi, Actor: actor, Target: target, Pai: tl(pai), Consumed: tls(consumed)}
}

func evPon(actor, target int32, pai, consumed string) *mjai.Event {
	return &mjai.Event{Type: mjai.EventPon, Actor: actor, Target: target, Pai: tl(pai), Consumed: tls(consumed)}
}

func evDaiminkan(actor, target int32, pai, consumed string) *mjai.Event {
	return &mjai.Event{Type: mjai.EventDaiminkan, Actor: actor, Target: target, Pai: tl(pai), Consumed: tls(consumed)}
}

func evAnkan(actor int32, kind string) *mjai.Event {
	return &mjai.Event{Type: mjai.EventAnkan, Actor: actor, Consumed: tls(kind + " " + kind + " " + kind + " " + kind)}
}

func evKakan(actor int32, pai string) *mjai.Event {
	return &mjai.Event{Type: mjai.EventKakan, Actor: actor, Pai: tl(pai), Consumed: tls(pai + " " + pai + " " + pai)}
}

func evReach(actor int32) *mjai.Event {
	return &mjai.Event{Type: mjai.EventReach, Actor: actor}
}

func evReachAccepted(actor int32) *mjai.Event {
	return &mjai.Event{Type: mjai.EventReachAccepted, Actor: actor}
}

func evHora(actor, target int32, pai string) *mjai.Event {
	return &mjai.Event{Type: mjai.EventHora, Actor: actor, Target: target, Pai: tl(pai)}
}

// feed applies events in order and returns the candidate set after the last.
func feed(t *testing.T, p *PlayerState, evs ...*mjai.Event) *Operates {
	t.Helper()
	var cans *Operates
	for _, ev := range evs {
		var err error
		cans, err = p.Update(ev)
		require.NoError(t, err, "event %s", ev.Type)
	}
	return cans
}

// otherTurn is one hidden draw plus a discard by another seat.
func otherTurn(actor int32, discard string) []*mjai.Event {
	return []*mjai.Event{evTsumo(actor, ""), evDahai(actor, discard, true)}
}
