package tracker

import (
	"errors"

	"github.com/kevin-chtw/tw_riichi/mahjong"
	"github.com/kevin-chtw/tw_riichi/mjai"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// Update applies one protocol event and returns the tracked seat's newly
// legal action set. Events must arrive strictly in protocol order; a
// detected invariant breach poisons the instance and every later call
// returns the same error.
func (p *PlayerState) Update(ev *mjai.Event) (*Operates, error) {
	if p.broken != nil {
		return nil, p.broken
	}
	if p.ended {
		return nil, ErrGameEnded
	}
	if ev == nil {
		return nil, errors.New("tracker: nil event")
	}

	// The robbing window of our own kakan lasts exactly one event.
	p.chankanChance = false
	p.phase = phaseNone
	p.phaseTarget = SeatNull
	p.phaseTile = mahjong.TileNull

	var err error
	switch ev.Type {
	case mjai.EventNone:
	case mjai.EventStartGame:
		p.resetKyoku()
	case mjai.EventStartKyoku:
		err = p.onStartKyoku(ev)
	case mjai.EventTsumo:
		err = p.onTsumo(ev)
	case mjai.EventDahai:
		err = p.onDahai(ev)
	case mjai.EventChi, mjai.EventPon:
		err = p.onChiPon(ev)
	case mjai.EventDaiminkan:
		err = p.onDaiminkan(ev)
	case mjai.EventAnkan:
		err = p.onAnkan(ev)
	case mjai.EventKakan:
		err = p.onKakan(ev)
	case mjai.EventDora:
		err = p.revealDora(ev.DoraMarker)
	case mjai.EventReach:
		p.onReach(ev)
	case mjai.EventReachAccepted:
		p.onReachAccepted(ev)
	case mjai.EventHora, mjai.EventRyukyoku, mjai.EventEndKyoku:
		p.inKyoku = false
	case mjai.EventEndGame:
		p.inKyoku = false
		p.ended = true
	default:
		// Parsing guarantees a known variant; anything else is an upstream
		// mismatch.
		return nil, p.breach("unhandled event type %q", ev.Type)
	}
	if err != nil {
		logger.Log.Errorf("update %s: %v", ev.Type, err)
		return nil, err
	}
	if err := p.checkInvariants(); err != nil {
		logger.Log.Errorf("update %s: %v", ev.Type, err)
		return nil, err
	}

	if ev.ShouldAct() {
		p.lastCans = p.Resolve()
	} else {
		p.lastCans = NewOperates(OperateNone)
	}

	// Same-cycle furiten is marked after candidate derivation so that ron on
	// the exposing tile itself is still offered.
	p.markFuriten(ev)
	return p.lastCans, nil
}

func (p *PlayerState) onStartKyoku(ev *mjai.Event) error {
	p.resetKyoku()
	p.inKyoku = true
	p.bakaze = ev.Bakaze
	p.kyoku = ev.Kyoku
	p.honba = ev.Honba
	p.kyotaku = ev.Kyotaku
	p.oya = p.relSeat(ev.Oya)
	p.jikaze = mahjong.TileEast + mahjong.Tile((p.playerID-ev.Oya+SeatCount)%SeatCount)
	for i := int32(0); i < SeatCount; i++ {
		p.scores[i] = ev.Scores[p.absSeat(i)]
	}
	p.rank = p.calcRank(ev.Oya)
	p.isAllLast = (ev.Bakaze == mahjong.TileSouth && ev.Kyoku == 4) || ev.Bakaze == mahjong.TileWest
	p.tilesLeft = initTilesLeft

	for _, t := range ev.Tehais[p.playerID] {
		if !t.IsValid() {
			return p.breach("hidden tile in own deal")
		}
		k := t.Kind()
		if p.tehai[k] >= 4 {
			return p.breach("dealt fifth %s", mahjong.Tile(k))
		}
		p.tehai[k]++
		if t.IsAka() {
			p.akasInHand[t-mahjong.TileAkaMan] = true
		}
		if err := p.witnessTile(t); err != nil {
			return err
		}
		p.gainTile(0, t)
	}
	if err := p.revealDora(ev.DoraMarker); err != nil {
		return err
	}
	p.canWRiichi = true
	p.updateShanten13()
	return nil
}

func (p *PlayerState) onTsumo(ev *mjai.Event) error {
	if p.tilesLeft <= 0 {
		return p.breach("draw from empty wall")
	}
	p.tilesLeft--
	if p.relSeat(ev.Actor) != 0 {
		return nil
	}

	t := ev.Pai
	if !t.IsValid() {
		return p.breach("hidden tile in own draw")
	}
	k := t.Kind()
	if p.tehai[k] >= 4 {
		return p.breach("drew fifth %s", mahjong.Tile(k))
	}
	p.tehai[k]++
	if t.IsAka() {
		idx := t - mahjong.TileAkaMan
		if p.akasInHand[idx] {
			return p.breach("drew second %s", t)
		}
		p.akasInHand[idx] = true
	}
	if err := p.witnessTile(t); err != nil {
		return err
	}
	p.gainTile(0, t)
	p.lastSelfTsumo = t
	p.intermediateKan = mahjong.TileNull

	if p.riichiAccepted[0] {
		for i := range p.forbiddenTiles {
			p.forbiddenTiles[i] = true
		}
		p.forbiddenTiles[k] = false
	} else {
		p.forbiddenTiles = [mahjong.KindCount]bool{}
	}
	p.updateShanten14()
	p.updateKanCandidates(t)
	p.phase = phaseSelfDraw
	return nil
}

func (p *PlayerState) onDahai(ev *mjai.Event) error {
	actor := p.relSeat(ev.Actor)
	t := ev.Pai
	if !t.IsValid() {
		return p.breach("hidden tile in discard")
	}
	k := t.Kind()

	if len(p.kawa[actor]) >= MaxKawaLen {
		return p.breach("kawa overflow for seat %d", actor)
	}
	p.kawa[actor] = append(p.kawa[actor], KawaItem{
		Tile:      t,
		Tsumogiri: ev.Tsumogiri,
		Riichi:    p.riichiDeclared[actor] && !p.riichiAccepted[actor],
	})
	p.kawaOverview[actor] = append(p.kawaOverview[actor], t)
	p.lastKawaTile = t

	if actor != 0 {
		if err := p.witnessTile(t); err != nil {
			return err
		}
		p.phase = phaseWait
		p.phaseTarget = actor
		p.phaseTile = t
		return nil
	}

	if p.tehai[k] == 0 {
		return p.breach("discarded %s not in hand", t)
	}
	p.tehai[k]--
	if t.IsAka() {
		p.akasInHand[t-mahjong.TileAkaMan] = false
	}
	p.loseTile(0, t)
	p.discardedTiles[k] = true
	p.lastSelfTsumo = mahjong.TileNull
	p.intermediateChiPon = nil
	p.atRinshan = false
	p.canWRiichi = false
	p.atIppatsu = false
	if !p.riichiAccepted[0] {
		// Own discard closes the same-cycle furiten window and any kuikae
		// restriction from a preceding call.
		p.toMarkSameCycleFuriten = false
		p.forbiddenTiles = [mahjong.KindCount]bool{}
	}
	p.ankanCandidates = nil
	p.kakanCandidates = nil
	p.updateShanten13()
	return nil
}

func (p *PlayerState) onChiPon(ev *mjai.Event) error {
	if len(ev.Consumed) != 2 {
		return p.breach("%s with %d consumed tiles", ev.Type, len(ev.Consumed))
	}
	if !ev.Pai.IsValid() || !ev.Consumed[0].IsValid() || !ev.Consumed[1].IsValid() {
		return p.breach("hidden tile in %s", ev.Type)
	}
	actor := p.relSeat(ev.Actor)
	target := p.relSeat(ev.Target)
	p.atIppatsu = false
	p.canWRiichi = false
	if err := p.claimLastKawa(target); err != nil {
		return err
	}

	meld := append([]mahjong.Tile{ev.Pai}, ev.Consumed...)
	p.fuuroOverview[actor] = append(p.fuuroOverview[actor], meld)
	p.gainTile(actor, ev.Pai)

	if actor != 0 {
		for _, c := range ev.Consumed {
			if err := p.witnessTile(c); err != nil {
				return err
			}
			p.gainTile(actor, c)
		}
		return nil
	}

	for _, c := range ev.Consumed {
		if err := p.removeFromHand(c); err != nil {
			return err
		}
	}
	p.isMenzen = false
	p.tehaiLenDiv3--
	if ev.Type == mjai.EventChi {
		left := ev.Pai.Deaka()
		for _, c := range ev.Consumed {
			if c.Deaka() < left {
				left = c.Deaka()
			}
		}
		p.chis = append(p.chis, left)
	} else {
		p.pons = append(p.pons, ev.Pai.Deaka())
	}
	p.intermediateChiPon = &ChiPon{Tile: ev.Pai, Consumed: [2]mahjong.Tile{ev.Consumed[0], ev.Consumed[1]}}
	if p.rule.Kuikae {
		p.setKuikae(ev)
	}
	p.ankanCandidates = nil
	p.kakanCandidates = nil
	p.updateShanten14()
	p.phase = phaseSelfCall
	return nil
}

func (p *PlayerState) onDaiminkan(ev *mjai.Event) error {
	if len(ev.Consumed) != 3 {
		return p.breach("daiminkan with %d consumed tiles", len(ev.Consumed))
	}
	if !ev.Pai.IsValid() {
		return p.breach("hidden tile in daiminkan")
	}
	for _, c := range ev.Consumed {
		if !c.IsValid() {
			return p.breach("hidden tile in daiminkan")
		}
	}
	actor := p.relSeat(ev.Actor)
	target := p.relSeat(ev.Target)
	p.atIppatsu = false
	p.canWRiichi = false
	p.kansOnBoard++
	if err := p.claimLastKawa(target); err != nil {
		return err
	}

	meld := append([]mahjong.Tile{ev.Pai}, ev.Consumed...)
	p.fuuroOverview[actor] = append(p.fuuroOverview[actor], meld)
	p.gainTile(actor, ev.Pai)

	if actor != 0 {
		for _, c := range ev.Consumed {
			if err := p.witnessTile(c); err != nil {
				return err
			}
			p.gainTile(actor, c)
		}
		return nil
	}

	for _, c := range ev.Consumed {
		if err := p.removeFromHand(c); err != nil {
			return err
		}
	}
	p.isMenzen = false
	p.minkans = append(p.minkans, ev.Pai.Deaka())
	p.tehaiLenDiv3--
	p.atRinshan = true
	p.intermediateKan = ev.Pai
	p.updateShanten13()
	return nil
}

func (p *PlayerState) onAnkan(ev *mjai.Event) error {
	if len(ev.Consumed) != 4 {
		return p.breach("ankan with %d consumed tiles", len(ev.Consumed))
	}
	for _, c := range ev.Consumed {
		if !c.IsValid() {
			return p.breach("hidden tile in ankan")
		}
	}
	actor := p.relSeat(ev.Actor)
	kind := ev.Consumed[0].Kind()
	p.atIppatsu = false
	p.canWRiichi = false
	p.kansOnBoard++

	if actor != 0 {
		p.ankanOverview[actor] = append(p.ankanOverview[actor], mahjong.Tile(kind))
		for _, c := range ev.Consumed {
			if err := p.witnessTile(c); err != nil {
				return err
			}
			p.gainTile(actor, c)
		}
		return nil
	}

	if p.tehai[kind] < 4 {
		return p.breach("ankan of %s with %d in hand", mahjong.Tile(kind), p.tehai[kind])
	}
	p.tehai[kind] -= 4
	for _, c := range ev.Consumed {
		if c.IsAka() {
			p.akasInHand[c-mahjong.TileAkaMan] = false
		}
	}
	p.ankans = append(p.ankans, mahjong.Tile(kind))
	p.ankanOverview[0] = append(p.ankanOverview[0], mahjong.Tile(kind))
	p.tehaiLenDiv3--
	p.atRinshan = true
	p.intermediateKan = mahjong.Tile(kind)
	p.updateShanten13()
	return nil
}

func (p *PlayerState) onKakan(ev *mjai.Event) error {
	if !ev.Pai.IsValid() {
		return p.breach("hidden tile in kakan")
	}
	actor := p.relSeat(ev.Actor)
	kind := ev.Pai.Kind()
	p.atIppatsu = false
	p.canWRiichi = false
	p.kansOnBoard++

	if err := p.extendPonMeld(actor, ev.Pai); err != nil {
		return err
	}

	if actor != 0 {
		if err := p.witnessTile(ev.Pai); err != nil {
			return err
		}
		p.gainTile(actor, ev.Pai)
		p.phase = phaseChankan
		p.phaseTarget = actor
		p.phaseTile = ev.Pai
		return nil
	}

	if !p.hasTileExact(ev.Pai) {
		return p.breach("kakan tile %s not in hand", ev.Pai)
	}
	p.tehai[kind]--
	if ev.Pai.IsAka() {
		p.akasInHand[ev.Pai-mahjong.TileAkaMan] = false
	}
	found := false
	for i, k := range p.pons {
		if k.Kind() == kind {
			p.pons = append(p.pons[:i], p.pons[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return p.breach("kakan of %s without a pon", ev.Pai)
	}
	p.minkans = append(p.minkans, ev.Pai.Deaka())
	p.tehaiLenDiv3--
	p.atRinshan = true
	p.intermediateKan = ev.Pai
	p.chankanChance = true
	p.updateShanten13()
	return nil
}

func (p *PlayerState) onReach(ev *mjai.Event) {
	actor := p.relSeat(ev.Actor)
	p.riichiDeclared[actor] = true
	if actor != 0 {
		return
	}
	p.isWRiichi = p.canWRiichi && p.rule.DoubleRiichi
	// The declaration discard must leave the hand at tenpai.
	melds := p.meldCount()
	for k := 0; k < mahjong.KindCount; k++ {
		if p.tehai[k] == 0 {
			p.forbiddenTiles[k] = false
			continue
		}
		p.tehai[k]--
		p.forbiddenTiles[k] = mahjong.Shanten(p.tehai, melds) != 0
		p.tehai[k]++
	}
	p.phase = phaseSelfRiichi
}

func (p *PlayerState) onReachAccepted(ev *mjai.Event) {
	actor := p.relSeat(ev.Actor)
	p.riichiAccepted[actor] = true
	p.scores[actor] -= riichiStake
	p.kyotaku++
	if actor == 0 {
		p.atIppatsu = true
	}
}

// markFuriten: a wait tile shown by another seat opens the same-cycle
// window; under an accepted riichi it is permanent.
func (p *PlayerState) markFuriten(ev *mjai.Event) {
	if !p.inKyoku {
		return
	}
	exposed := (ev.Type == mjai.EventDahai || ev.Type == mjai.EventKakan) && p.relSeat(ev.Actor) != 0
	if !exposed || !p.waits[ev.Pai.Kind()] {
		return
	}
	if p.riichiAccepted[0] {
		p.atFuriten = true
	} else {
		p.toMarkSameCycleFuriten = true
	}
}

func (p *PlayerState) claimLastKawa(target int32) error {
	if len(p.kawa[target]) == 0 {
		return p.breach("call from empty kawa of seat %d", target)
	}
	p.kawa[target][len(p.kawa[target])-1].Claimed = true
	return nil
}

func (p *PlayerState) removeFromHand(t mahjong.Tile) error {
	if !p.hasTileExact(t) {
		return p.breach("meld tile %s not in hand", t)
	}
	p.tehai[t.Kind()]--
	if t.IsAka() {
		p.akasInHand[t-mahjong.TileAkaMan] = false
	}
	return nil
}

// extendPonMeld turns the recorded pon of the kakan kind into a four-tile
// group in the seat's fuuro overview.
func (p *PlayerState) extendPonMeld(seat int32, t mahjong.Tile) error {
	kind := t.Kind()
	for i, meld := range p.fuuroOverview[seat] {
		if len(meld) == 3 && meld[0].Kind() == kind && meld[1].Kind() == kind && meld[2].Kind() == kind {
			p.fuuroOverview[seat][i] = append(meld, t)
			return nil
		}
	}
	return p.breach("kakan of %s without a visible pon for seat %d", t, seat)
}

// setKuikae forbids the swap-call discards after our chi/pon: the called
// kind itself, and for an edge chi the tile on the far side of the run.
func (p *PlayerState) setKuikae(ev *mjai.Event) {
	kind := ev.Pai.Kind()
	p.forbiddenTiles[kind] = true
	if ev.Type != mjai.EventChi || !ev.Pai.IsSuit() {
		return
	}
	pt := ev.Pai.Point()
	lo, hi := pt, pt
	for _, c := range ev.Consumed {
		if q := c.Point(); q < lo {
			lo = q
		} else if q > hi {
			hi = q
		}
	}
	color := ev.Pai.Color()
	if pt == lo && hi == pt+2 && pt+3 <= 8 {
		p.forbiddenTiles[mahjong.MakeTile(color, pt+3).Kind()] = true
	}
	if pt == hi && lo == pt-2 && pt-3 >= 0 {
		p.forbiddenTiles[mahjong.MakeTile(color, pt-3).Kind()] = true
	}
}

func (p *PlayerState) calcRank(oyaAbs int32) int32 {
	rank := int32(1)
	myPrec := (p.playerID - oyaAbs + SeatCount) % SeatCount
	for rel := int32(1); rel < SeatCount; rel++ {
		prec := (p.absSeat(rel) - oyaAbs + SeatCount) % SeatCount
		if p.scores[rel] > p.scores[0] || (p.scores[rel] == p.scores[0] && prec < myPrec) {
			rank++
		}
	}
	return rank
}
