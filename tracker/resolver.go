package tracker

import "github.com/kevin-chtw/tw_riichi/mahjong"

// CheckerSelf inspects the state after our own draw or call and adds the
// operations it grants. CheckerWait does the same for another seat's exposed
// tile. Checkers never mutate PlayerState.
type CheckerSelf interface {
	Check(p *PlayerState, opt *Operates)
}

type CheckerWait interface {
	Check(p *PlayerState, opt *Operates)
}

func (p *PlayerState) registerCheckers() {
	p.selfCheckers = []CheckerSelf{
		&checkerTsumoAgari{},
		&checkerRiichi{},
		&checkerSelfKan{},
		&checkerKyuushu{},
	}
	p.waitCheckers = []CheckerWait{
		&checkerRon{},
		&checkerPon{},
		&checkerMinkan{},
		&checkerChi{},
	}
}

// Resolve derives the legal action set for the current point in the event
// stream. It is pure: calling it any number of times changes nothing.
func (p *PlayerState) Resolve() *Operates {
	switch p.phase {
	case phaseSelfDraw, phaseSelfCall:
		return p.fetchSelfOperates()
	case phaseSelfRiichi:
		opt := NewOperates(OperateDiscard)
		opt.DiscardTiles = p.legalDiscards()
		return opt
	case phaseWait, phaseChankan:
		return p.fetchWaitOperates()
	default:
		opt := NewOperates(OperateNone)
		p.checkFourKan(opt)
		return opt
	}
}

func (p *PlayerState) fetchSelfOperates() *Operates {
	opt := NewOperates(OperateDiscard)
	opt.DiscardTiles = p.legalDiscards()
	for _, c := range p.selfCheckers {
		c.Check(p, opt)
	}
	p.checkFourKan(opt)
	return opt
}

func (p *PlayerState) fetchWaitOperates() *Operates {
	opt := NewOperates(OperatePass)
	opt.Target = p.phaseTarget
	opt.Tile = p.phaseTile
	for _, c := range p.waitCheckers {
		c.Check(p, opt)
	}
	p.checkFourKan(opt)
	return opt
}

// checkFourKan surfaces the abortive draw once the fourth kan is on the
// board, regardless of whose turn it is.
func (p *PlayerState) checkFourKan(opt *Operates) {
	if p.inKyoku && p.kansOnBoard >= MaxKans {
		opt.AddOperate(OperateRyukyoku)
	}
}

type checkerTsumoAgari struct{}

func (checkerTsumoAgari) Check(p *PlayerState, opt *Operates) {
	if p.phase != phaseSelfDraw {
		return
	}
	if mahjong.IsAgari(p.tehai, p.meldCount()) {
		opt.AddOperate(OperateTsumo)
	}
}

type checkerRiichi struct{}

func (checkerRiichi) Check(p *PlayerState, opt *Operates) {
	if p.phase != phaseSelfDraw {
		return
	}
	if !p.isMenzen || p.riichiDeclared[0] {
		return
	}
	// shanten of the 14-tile hand: 0 or -1 means some discard leaves tenpai.
	if p.shanten > 0 {
		return
	}
	if p.tilesLeft < 4 || p.scores[0] < riichiStake {
		return
	}
	opt.AddOperate(OperateRiichi)
}

type checkerSelfKan struct{}

func (checkerSelfKan) Check(p *PlayerState, opt *Operates) {
	if p.phase != phaseSelfDraw {
		return
	}
	if len(p.ankanCandidates) > 0 {
		opt.AddOperate(OperateAnkan)
		opt.AnkanTiles = append([]mahjong.Tile(nil), p.ankanCandidates...)
	}
	if len(p.kakanCandidates) > 0 {
		opt.AddOperate(OperateKakan)
		opt.KakanTiles = append([]mahjong.Tile(nil), p.kakanCandidates...)
	}
}

type checkerKyuushu struct{}

func (checkerKyuushu) Check(p *PlayerState, opt *Operates) {
	if p.phase != phaseSelfDraw || !p.canWRiichi {
		return
	}
	if p.tehaiLenDiv3 != 4 {
		return
	}
	if p.tehai.CountYaochuuKinds() >= 9 {
		opt.AddOperate(OperateRyukyoku)
	}
}

type checkerRon struct{}

func (checkerRon) Check(p *PlayerState, opt *Operates) {
	if p.shanten != 0 || p.Furiten() {
		return
	}
	if p.waits[p.phaseTile.Kind()] {
		opt.AddOperate(OperateRon)
	}
}

type checkerPon struct{}

func (checkerPon) Check(p *PlayerState, opt *Operates) {
	if p.phase == phaseChankan || p.riichiAccepted[0] || p.tilesLeft == 0 {
		return
	}
	if p.tehai[p.phaseTile.Kind()] >= 2 {
		opt.AddOperate(OperatePon)
	}
}

type checkerMinkan struct{}

func (checkerMinkan) Check(p *PlayerState, opt *Operates) {
	if p.phase == phaseChankan || p.riichiAccepted[0] || p.tilesLeft == 0 {
		return
	}
	if p.kansOnBoard >= MaxKans {
		return
	}
	if p.tehai[p.phaseTile.Kind()] == 3 {
		opt.AddOperate(OperateMinkan)
	}
}

type checkerChi struct{}

func (checkerChi) Check(p *PlayerState, opt *Operates) {
	if p.phase == phaseChankan || p.riichiAccepted[0] || p.tilesLeft == 0 {
		return
	}
	// Chi claims the left neighbour's discard only.
	if p.phaseTarget != SeatCount-1 {
		return
	}
	t := p.phaseTile
	if !t.IsSuit() {
		return
	}
	k := t.Kind()
	pt := t.Point()
	var lefts []mahjong.Tile
	if pt <= 6 && p.tehai[k+1] > 0 && p.tehai[k+2] > 0 {
		lefts = append(lefts, mahjong.Tile(k))
	}
	if pt >= 1 && pt <= 7 && p.tehai[k-1] > 0 && p.tehai[k+1] > 0 {
		lefts = append(lefts, mahjong.Tile(k-1))
	}
	if pt >= 2 && p.tehai[k-2] > 0 && p.tehai[k-1] > 0 {
		lefts = append(lefts, mahjong.Tile(k-2))
	}
	if len(lefts) > 0 {
		opt.AddOperate(OperateChi)
		opt.ChiLefts = lefts
	}
}
