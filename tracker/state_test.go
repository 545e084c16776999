package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin-chtw/tw_riichi/mahjong"
	"github.com/kevin-chtw/tw_riichi/mjai"
)

func TestStartKyokuContext(t *testing.T) {
	p := NewPlayerState(0)
	ev := &mjai.Event{
		Type:       mjai.EventStartKyoku,
		Bakaze:     mahjong.TileSouth,
		DoraMarker: tl("3p"),
		Kyoku:      4,
		Honba:      2,
		Kyotaku:    1,
		Oya:        2,
		Scores:     [mjai.SeatCount]int32{24000, 26000, 25000, 25000},
	}
	for i := range ev.Tehais {
		ev.Tehais[i] = hidden13()
	}
	ev.Tehais[0] = tls("1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S")

	feed(t, p, ev)
	assert.Equal(t, mahjong.TileSouth, p.Bakaze())
	assert.Equal(t, mahjong.TileWest, p.Jikaze(), "two seats past the oya")
	assert.Equal(t, int32(4), p.Kyoku())
	assert.Equal(t, int32(2), p.Honba())
	assert.Equal(t, int32(1), p.Kyotaku())
	assert.Equal(t, int32(2), p.Oya())
	assert.True(t, p.IsAllLast())
	assert.Equal(t, [SeatCount]int32{24000, 26000, 25000, 25000}, p.Scores())
	assert.Equal(t, int32(4), p.Rank(), "three seats at or above us with earlier precedence")
	assert.Equal(t, int32(initTilesLeft), p.TilesLeft())
	assert.Equal(t, int32(0), p.Shanten(), "dealt hand is tenpai")
	assert.True(t, p.IsMenzen())
	assert.Len(t, p.DoraIndicators(), 1)
}

func TestDealCountsDora(t *testing.T) {
	p := NewPlayerState(0)
	// Indicator 3p makes 4p the dora; the deal holds one 4p and one aka 5p.
	feed(t, p, evStartKyoku(0, "1m 2m 3m 4p 5pr 6p 7s 8s 9s E E S S"))
	assert.Equal(t, int32(2), p.DorasOwned()[0])
	assert.Equal(t, int32(2), p.DorasSeen())
}

func TestSameCycleFuritenLifecycle(t *testing.T) {
	p := NewPlayerState(0)
	feed(t, p, evStartKyoku(3, "1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S"))

	// The oya exposes one of our waits: ron is offered on this very tile,
	// and only afterwards does the furiten window open.
	cans := feed(t, p, evTsumo(3, ""), evDahai(3, "E", true))
	assert.True(t, cans.HasOperate(OperateRon))
	assert.True(t, p.Furiten())

	// Passing kept the window: ron on the same wait from another seat is
	// suppressed until our next discard.
	cans = feed(t, p, evTsumo(0, "1p"))
	assert.True(t, p.Furiten())
	assert.False(t, cans.HasOperate(OperateRon))

	feed(t, p, evDahai(0, "1p", true))
	assert.False(t, p.Furiten(), "own discard closes the window")
}

func TestInvariantBreachPoisons(t *testing.T) {
	p := NewPlayerState(0)
	feed(t, p, evStartKyoku(0, "1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S"))

	_, err := p.Update(evDahai(0, "9m", false))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBroken)

	// Once broken, every further event is rejected with the same error.
	_, err2 := p.Update(evTsumo(0, "1p"))
	assert.ErrorIs(t, err2, ErrBroken)
	assert.ErrorIs(t, p.Broken(), ErrBroken)
}

func TestEndGameStopsUpdates(t *testing.T) {
	p := NewPlayerState(0)
	feed(t, p, evStartKyoku(0, "1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S"))
	feed(t, p, &mjai.Event{Type: mjai.EventEndKyoku}, &mjai.Event{Type: mjai.EventEndGame})

	_, err := p.Update(evTsumo(0, "1p"))
	assert.ErrorIs(t, err, ErrGameEnded)
}

func TestCanActSuppressesCandidates(t *testing.T) {
	p := NewPlayerState(0)
	feed(t, p, evStartKyoku(0, "1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S"))

	no := false
	ev := evTsumo(0, "9m")
	ev.CanAct = &no
	cans := feed(t, p, ev)
	assert.False(t, cans.CanAct())

	// Bookkeeping still happened.
	assert.Equal(t, int32(initTilesLeft-1), p.TilesLeft())
	assert.Equal(t, tl("9m"), p.LastSelfTsumo())
}

func TestFifthCopyBreaches(t *testing.T) {
	p := NewPlayerState(0)
	feed(t, p, evStartKyoku(0, "1m 1m 1m 1m 2p 3p 4p 5s 6s 7s W W W"))

	// All four 1m are in our hand; a fifth from anywhere is impossible.
	_, err := p.Update(evDahai(1, "1m", true))
	assert.ErrorIs(t, err, ErrBroken)
}

func TestBriefInfoRenders(t *testing.T) {
	p := NewPlayerState(0)
	feed(t, p, evStartKyoku(0, "1m 2m 3m 4p 5p 6p 7s 8s 9s E E S S"))
	feed(t, p, evTsumo(0, "9m"), evDahai(0, "9m", true))
	feed(t, p, evTsumo(1, ""), evDahai(1, "1p", true))

	out := p.BriefInfo()
	assert.Contains(t, out, "tehai: 123m 456p 789s EESS")
	assert.Contains(t, out, "shanten: 0")
	assert.Contains(t, out, "waits: E, S")
	assert.Contains(t, out, "tiles left: 68")
	assert.Contains(t, out, "9m*")
}
