package tracker

import (
	"fmt"

	"github.com/kevin-chtw/tw_riichi/mahjong"
	"github.com/kevin-chtw/tw_riichi/mjai"
)

// RuleViolation reports an action that is not legal at the current point in
// the event stream. It never poisons the PlayerState.
type RuleViolation struct {
	Action mjai.EventType
	Reason string
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("rule violation: %s: %s", e.Action, e.Reason)
}

func violation(action mjai.EventType, format string, args ...any) error {
	return &RuleViolation{Action: action, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a proposed action by the tracked seat against the legal
// set derived by the last Update. It is read-only; the action still has to
// come back as an event before it takes effect.
func (p *PlayerState) Validate(action *mjai.Event) error {
	if p.broken != nil {
		return p.broken
	}
	if action == nil {
		return violation("", "nil action")
	}
	// Judge against the set derived when the triggering event was applied.
	// Deriving again here would already see the passed-wait furiten window
	// that only opens once this ron opportunity lapses.
	cans := p.lastCans

	switch action.Type {
	case mjai.EventNone:
		if cans.HasOperate(OperateDiscard) {
			return violation(action.Type, "a discard is required")
		}
		return nil

	case mjai.EventDahai:
		if action.Actor != p.playerID {
			return violation(action.Type, "actor %d is not the tracked seat", action.Actor)
		}
		if !cans.HasOperate(OperateDiscard) {
			return violation(action.Type, "no discard pending")
		}
		if !p.hasTileExact(action.Pai) {
			return violation(action.Type, "tile %s not in hand", action.Pai)
		}
		if p.forbiddenTiles[action.Pai.Kind()] {
			return violation(action.Type, "tile %s is locked", action.Pai)
		}
		if p.riichiAccepted[0] && action.Pai != p.lastSelfTsumo {
			return violation(action.Type, "riichi forces the drawn tile out")
		}
		if action.Tsumogiri && action.Pai != p.lastSelfTsumo {
			return violation(action.Type, "tsumogiri of a tile that was not drawn")
		}
		return nil

	case mjai.EventReach:
		if !cans.HasOperate(OperateRiichi) {
			return violation(action.Type, "riichi not available")
		}
		return nil

	case mjai.EventChi:
		if !cans.HasOperate(OperateChi) {
			return violation(action.Type, "chi not available")
		}
		return p.validateCall(action, cans, 2)

	case mjai.EventPon:
		if !cans.HasOperate(OperatePon) {
			return violation(action.Type, "pon not available")
		}
		return p.validateCall(action, cans, 2)

	case mjai.EventDaiminkan:
		if !cans.HasOperate(OperateMinkan) {
			return violation(action.Type, "kan not available")
		}
		return p.validateCall(action, cans, 3)

	case mjai.EventAnkan:
		if !cans.HasOperate(OperateAnkan) {
			return violation(action.Type, "ankan not available")
		}
		if len(action.Consumed) != 4 {
			return violation(action.Type, "ankan needs 4 tiles")
		}
		kind := action.Consumed[0].Kind()
		for _, c := range action.Consumed {
			if c.Kind() != kind {
				return violation(action.Type, "mixed kinds in ankan")
			}
		}
		for _, cand := range p.ankanCandidates {
			if cand.Kind() == kind {
				return nil
			}
		}
		return violation(action.Type, "ankan of %s not declarable", mahjong.Tile(kind))

	case mjai.EventKakan:
		if !cans.HasOperate(OperateKakan) {
			return violation(action.Type, "kakan not available")
		}
		if !p.hasTileExact(action.Pai) {
			return violation(action.Type, "tile %s not in hand", action.Pai)
		}
		kind := action.Pai.Kind()
		for _, cand := range p.kakanCandidates {
			if cand.Kind() == kind {
				return nil
			}
		}
		return violation(action.Type, "kakan of %s without a pon", action.Pai)

	case mjai.EventHora:
		if action.Actor != p.playerID {
			return violation(action.Type, "actor %d is not the tracked seat", action.Actor)
		}
		if action.Target == action.Actor {
			if !cans.HasOperate(OperateTsumo) {
				return violation(action.Type, "tsumo not available")
			}
			return nil
		}
		if !cans.HasOperate(OperateRon) {
			return violation(action.Type, "ron not available")
		}
		if p.absSeat(p.phaseTarget) != action.Target {
			return violation(action.Type, "target %d did not expose the tile", action.Target)
		}
		if action.Pai.IsValid() && action.Pai != p.phaseTile {
			return violation(action.Type, "claimed tile %s is not the exposed %s", action.Pai, p.phaseTile)
		}
		return nil

	case mjai.EventRyukyoku:
		if !cans.HasOperate(OperateRyukyoku) {
			return violation(action.Type, "abortive draw not available")
		}
		return nil

	default:
		return violation(action.Type, "not an action")
	}
}

// validateCall checks a chi/pon/daiminkan proposal: right target, right
// tile, consumed tiles in hand, and a well-formed group.
func (p *PlayerState) validateCall(action *mjai.Event, cans *Operates, nConsumed int) error {
	if action.Actor != p.playerID {
		return violation(action.Type, "actor %d is not the tracked seat", action.Actor)
	}
	if p.absSeat(cans.Target) != action.Target {
		return violation(action.Type, "target %d did not discard", action.Target)
	}
	if action.Pai.Deaka() != cans.Tile.Deaka() {
		return violation(action.Type, "tile %s is not the discarded %s", action.Pai, cans.Tile)
	}
	if len(action.Consumed) != nConsumed {
		return violation(action.Type, "needs %d consumed tiles, got %d", nConsumed, len(action.Consumed))
	}
	h := p.tehai
	akas := p.akasInHand
	for _, c := range action.Consumed {
		if !c.IsValid() {
			return violation(action.Type, "hidden consumed tile")
		}
		k := c.Kind()
		if h[k] == 0 {
			return violation(action.Type, "consumed %s not in hand", c)
		}
		if c.IsAka() {
			if !akas[c-mahjong.TileAkaMan] {
				return violation(action.Type, "consumed %s not in hand", c)
			}
			akas[c-mahjong.TileAkaMan] = false
		}
		h[k]--
	}

	if action.Type == mjai.EventChi {
		kinds := []int{action.Pai.Kind()}
		for _, c := range action.Consumed {
			kinds = append(kinds, c.Kind())
		}
		lo, hi := kinds[0], kinds[0]
		for _, k := range kinds[1:] {
			if k < lo {
				lo = k
			}
			if k > hi {
				hi = k
			}
		}
		run := mahjong.Tile(lo).IsSuit() && mahjong.Tile(hi).Color() == mahjong.Tile(lo).Color() &&
			hi == lo+2 && kinds[0]+kinds[1]+kinds[2] == 3*lo+3
		if !run {
			return violation(action.Type, "tiles do not form a run")
		}
		ok := false
		for _, left := range cans.ChiLefts {
			if left.Kind() == lo {
				ok = true
				break
			}
		}
		if !ok {
			return violation(action.Type, "run not claimable")
		}
	} else {
		kind := action.Pai.Kind()
		for _, c := range action.Consumed {
			if c.Kind() != kind {
				return violation(action.Type, "mixed kinds in call")
			}
		}
	}
	return nil
}
