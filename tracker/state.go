// Package tracker maintains a single seat's complete view of a riichi game
// from an mjai event stream and derives the seat's legal actions after every
// event. One PlayerState instance is owned by exactly one pipeline; apply
// events strictly in protocol order.
package tracker

import (
	"errors"
	"fmt"

	"github.com/kevin-chtw/tw_riichi/mahjong"
)

const (
	SeatNull  int32 = -1
	SeatCount int32 = 4

	// Theoretical bounds of the domain; exceeding them means the upstream
	// engine and this tracker disagree and the instance must stop.
	MaxKawaLen        = 24
	MaxDoraIndicators = 5
	MaxKans           = 4

	riichiStake   = 1000
	initTilesLeft = 70
)

var (
	ErrGameEnded = errors.New("tracker: game already ended")
	// ErrBroken wraps every invariant breach; once returned the instance
	// refuses further events.
	ErrBroken = errors.New("tracker: invariant breach")
)

type phase int

const (
	phaseNone phase = iota
	phaseSelfDraw
	phaseSelfCall
	phaseSelfRiichi
	phaseWait
	phaseChankan
)

// KawaItem is one discard record. Order within the pile is chronological.
type KawaItem struct {
	Tile      mahjong.Tile
	Tsumogiri bool
	Riichi    bool
	Claimed   bool
}

// ChiPon is an in-flight chi/pon proposal: the claimed tile plus the hand
// tiles that complete it.
type ChiPon struct {
	Tile     mahjong.Tile
	Consumed [2]mahjong.Tile
}

// PlayerState is the per-seat aggregate. All seat indices below are rotated
// so that index 0 is the tracked seat and 1..3 follow in turn order.
type PlayerState struct {
	playerID int32

	bakaze    mahjong.Tile
	jikaze    mahjong.Tile
	kyoku     int32
	honba     int32
	kyotaku   int32
	scores    [SeatCount]int32
	rank      int32
	oya       int32
	isAllLast bool

	doraIndicators []mahjong.Tile
	tilesLeft      int32

	kawa          [SeatCount][]KawaItem
	kawaOverview  [SeatCount][]mahjong.Tile
	fuuroOverview [SeatCount][][]mahjong.Tile
	ankanOverview [SeatCount][]mahjong.Tile

	riichiDeclared [SeatCount]bool
	riichiAccepted [SeatCount]bool

	intermediateKan    mahjong.Tile
	intermediateChiPon *ChiPon

	shanten int32

	lastSelfTsumo mahjong.Tile
	lastKawaTile  mahjong.Tile
	lastCans      *Operates

	ankanCandidates []mahjong.Tile
	kakanCandidates []mahjong.Tile
	chankanChance   bool

	canWRiichi bool
	isWRiichi  bool
	atRinshan  bool
	atIppatsu  bool
	// atFuriten is the permanent flag: once set it survives until the hand
	// ends. toMarkSameCycleFuriten covers the temporary window from a passed
	// wait tile until the seat's own next discard.
	atFuriten              bool
	toMarkSameCycleFuriten bool

	kansOnBoard int32

	isMenzen bool
	chis     []mahjong.Tile
	pons     []mahjong.Tile
	minkans  []mahjong.Tile
	ankans   []mahjong.Tile

	dorasOwned [SeatCount]int32
	dorasSeen  int32
	akasInHand [mahjong.AkaCount]bool

	tehaiLenDiv3          int32
	hasNextShantenDiscard bool

	tehai               mahjong.Hand
	waits               [mahjong.KindCount]bool
	doraFactor          [mahjong.KindCount]uint8
	tilesSeen           [mahjong.KindCount]uint8
	keepShantenDiscards [mahjong.KindCount]bool
	nextShantenDiscards [mahjong.KindCount]bool
	forbiddenTiles      [mahjong.KindCount]bool
	discardedTiles      [mahjong.KindCount]bool

	phase       phase
	phaseTarget int32
	phaseTile   mahjong.Tile

	rule         *Rule
	selfCheckers []CheckerSelf
	waitCheckers []CheckerWait

	inKyoku bool
	ended   bool
	broken  error
}

// NewPlayerState creates the tracker for one absolute seat id with the
// default ruleset.
func NewPlayerState(playerID int32) *PlayerState {
	return NewPlayerStateWithRule(playerID, NewRule())
}

func NewPlayerStateWithRule(playerID int32, rule *Rule) *PlayerState {
	p := &PlayerState{
		playerID:      playerID,
		rule:          rule,
		lastSelfTsumo: mahjong.TileNull,
		lastKawaTile:  mahjong.TileNull,
		lastCans:      NewOperates(OperateNone),
		shanten:       6,
	}
	p.registerCheckers()
	return p
}

func (p *PlayerState) PlayerID() int32 {
	return p.playerID
}

// resetKyoku clears every hand-scoped field. Match-scoped context (scores,
// honba, kyotaku) is overwritten by the start_kyoku payload, not here.
func (p *PlayerState) resetKyoku() {
	p.doraIndicators = p.doraIndicators[:0]
	p.tilesLeft = 0
	for i := range p.kawa {
		p.kawa[i] = nil
		p.kawaOverview[i] = nil
		p.fuuroOverview[i] = nil
		p.ankanOverview[i] = nil
		p.riichiDeclared[i] = false
		p.riichiAccepted[i] = false
		p.dorasOwned[i] = 0
	}
	p.intermediateKan = mahjong.TileNull
	p.intermediateChiPon = nil
	p.shanten = 6
	p.lastSelfTsumo = mahjong.TileNull
	p.lastKawaTile = mahjong.TileNull
	p.lastCans = NewOperates(OperateNone)
	p.ankanCandidates = nil
	p.kakanCandidates = nil
	p.chankanChance = false
	p.canWRiichi = false
	p.isWRiichi = false
	p.atRinshan = false
	p.atIppatsu = false
	p.atFuriten = false
	p.toMarkSameCycleFuriten = false
	p.kansOnBoard = 0
	p.isMenzen = true
	p.chis = nil
	p.pons = nil
	p.minkans = nil
	p.ankans = nil
	p.dorasSeen = 0
	p.akasInHand = [mahjong.AkaCount]bool{}
	p.tehaiLenDiv3 = 4
	p.hasNextShantenDiscard = false
	p.tehai = mahjong.Hand{}
	p.waits = [mahjong.KindCount]bool{}
	p.doraFactor = [mahjong.KindCount]uint8{}
	p.tilesSeen = [mahjong.KindCount]uint8{}
	p.keepShantenDiscards = [mahjong.KindCount]bool{}
	p.nextShantenDiscards = [mahjong.KindCount]bool{}
	p.forbiddenTiles = [mahjong.KindCount]bool{}
	p.discardedTiles = [mahjong.KindCount]bool{}
	p.phase = phaseNone
	p.phaseTarget = SeatNull
	p.phaseTile = mahjong.TileNull
	p.inKyoku = false
}

// relSeat rotates an absolute seat id so the tracked seat is 0.
func (p *PlayerState) relSeat(abs int32) int32 {
	return (abs - p.playerID + SeatCount) % SeatCount
}

func (p *PlayerState) absSeat(rel int32) int32 {
	return (p.playerID + rel) % SeatCount
}

func (p *PlayerState) meldCount() int {
	return len(p.chis) + len(p.pons) + len(p.minkans) + len(p.ankans)
}

// hasTileExact checks concealed possession of the exact tile, aka included:
// "5mr" requires the red five itself, "5m" requires a plain copy.
func (p *PlayerState) hasTileExact(t mahjong.Tile) bool {
	if !t.IsValid() {
		return false
	}
	k := t.Kind()
	if p.tehai[k] == 0 {
		return false
	}
	aka, isFive := akaOfKind(k)
	if t.IsAka() {
		return isFive && p.akasInHand[aka-mahjong.TileAkaMan]
	}
	if isFive && p.akasInHand[aka-mahjong.TileAkaMan] {
		return p.tehai[k] > 1
	}
	return true
}

// akaOfKind returns the aka id whose kind is k, if any.
func akaOfKind(k int) (mahjong.Tile, bool) {
	for aka := mahjong.TileAkaMan; aka <= mahjong.TileAkaSou; aka++ {
		if aka.Kind() == k {
			return aka, true
		}
	}
	return mahjong.TileNull, false
}

func (p *PlayerState) breach(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrBroken, fmt.Sprintf(format, args...))
	p.broken = err
	return err
}

// checkInvariants runs the table-wide tile arithmetic after every applied
// event.
func (p *PlayerState) checkInvariants() error {
	if !p.inKyoku {
		return nil
	}
	for k, n := range p.tehai {
		if n > 4 {
			return p.breach("%d copies of %s in hand", n, mahjong.Tile(k))
		}
	}
	total := p.tehai.Count() + 3*p.meldCount()
	if total != 13 && total != 14 {
		return p.breach("hand accounts for %d tiles", total)
	}
	if len(p.doraIndicators) > MaxDoraIndicators {
		return p.breach("%d dora indicators", len(p.doraIndicators))
	}
	if p.kansOnBoard > MaxKans {
		return p.breach("%d kans on board", p.kansOnBoard)
	}
	for i := range p.kawa {
		if len(p.kawa[i]) > MaxKawaLen {
			return p.breach("kawa of seat %d holds %d discards", i, len(p.kawa[i]))
		}
	}
	return nil
}

// witnessTile records a tile becoming visible anywhere on the table.
func (p *PlayerState) witnessTile(t mahjong.Tile) error {
	k := t.Kind()
	if p.tilesSeen[k] >= 4 {
		return p.breach("fifth %s witnessed", mahjong.Tile(k))
	}
	p.tilesSeen[k]++
	p.dorasSeen += int32(p.doraFactor[k])
	if t.IsAka() {
		p.dorasSeen++
	}
	return nil
}

// gainTile/loseTile track the dora count a seat visibly owns.
func (p *PlayerState) gainTile(seat int32, t mahjong.Tile) {
	p.dorasOwned[seat] += int32(p.doraFactor[t.Kind()])
	if t.IsAka() {
		p.dorasOwned[seat]++
	}
}

func (p *PlayerState) loseTile(seat int32, t mahjong.Tile) {
	p.dorasOwned[seat] -= int32(p.doraFactor[t.Kind()])
	if t.IsAka() {
		p.dorasOwned[seat]--
	}
}

// meldKindCount counts visible meld tiles of a kind for one seat.
func (p *PlayerState) meldKindCount(seat int32, kind int) int32 {
	var n int32
	for _, meld := range p.fuuroOverview[seat] {
		for _, t := range meld {
			if t.Kind() == kind {
				n++
			}
		}
	}
	for _, t := range p.ankanOverview[seat] {
		if t.Kind() == kind {
			n += 4
		}
	}
	return n
}

// revealDora appends an indicator and folds the new dora kind into the
// seen/owned counters.
func (p *PlayerState) revealDora(indicator mahjong.Tile) error {
	if !indicator.IsValid() {
		return p.breach("hidden dora indicator")
	}
	if len(p.doraIndicators) >= MaxDoraIndicators {
		return p.breach("sixth dora indicator %s", indicator)
	}
	p.doraIndicators = append(p.doraIndicators, indicator)
	if err := p.witnessTile(indicator); err != nil {
		return err
	}
	kind := indicator.NextDora().Kind()
	p.doraFactor[kind]++
	p.dorasSeen += int32(p.tilesSeen[kind])
	p.dorasOwned[0] += int32(p.tehai[kind]) + p.meldKindCount(0, kind)
	for seat := int32(1); seat < SeatCount; seat++ {
		p.dorasOwned[seat] += p.meldKindCount(seat, kind)
	}
	return nil
}

// Furiten reports whether ron is currently forbidden, by either the
// permanent or the same-cycle rule.
func (p *PlayerState) Furiten() bool {
	return p.atFuriten || p.toMarkSameCycleFuriten
}

// Read-only accessors, mainly for the decision layer and tests.

func (p *PlayerState) Shanten() int32                  { return p.shanten }
func (p *PlayerState) TilesLeft() int32                { return p.tilesLeft }
func (p *PlayerState) KansOnBoard() int32              { return p.kansOnBoard }
func (p *PlayerState) IsMenzen() bool                  { return p.isMenzen }
func (p *PlayerState) Scores() [SeatCount]int32        { return p.scores }
func (p *PlayerState) Rank() int32                     { return p.rank }
func (p *PlayerState) Waits() [mahjong.KindCount]bool  { return p.waits }
func (p *PlayerState) Tehai() mahjong.Hand             { return p.tehai }
func (p *PlayerState) DorasSeen() int32                { return p.dorasSeen }
func (p *PlayerState) DorasOwned() [SeatCount]int32    { return p.dorasOwned }
func (p *PlayerState) LastOperates() *Operates         { return p.lastCans }
func (p *PlayerState) RiichiDeclared(seat int32) bool  { return p.riichiDeclared[seat] }
func (p *PlayerState) RiichiAccepted(seat int32) bool  { return p.riichiAccepted[seat] }
func (p *PlayerState) Kawa(seat int32) []KawaItem      { return p.kawa[seat] }
func (p *PlayerState) DoraIndicators() []mahjong.Tile  { return p.doraIndicators }
func (p *PlayerState) AtIppatsu() bool                 { return p.atIppatsu }
func (p *PlayerState) LastSelfTsumo() mahjong.Tile     { return p.lastSelfTsumo }
func (p *PlayerState) LastKawaTile() mahjong.Tile      { return p.lastKawaTile }
func (p *PlayerState) Bakaze() mahjong.Tile            { return p.bakaze }
func (p *PlayerState) Jikaze() mahjong.Tile            { return p.jikaze }
func (p *PlayerState) Kyoku() int32                    { return p.kyoku }
func (p *PlayerState) Honba() int32                    { return p.honba }
func (p *PlayerState) Kyotaku() int32                  { return p.kyotaku }
func (p *PlayerState) Oya() int32                      { return p.oya }
func (p *PlayerState) IsAllLast() bool                 { return p.isAllLast }
func (p *PlayerState) IsWRiichi() bool                 { return p.isWRiichi }
func (p *PlayerState) AtRinshan() bool                 { return p.atRinshan }
func (p *PlayerState) InKyoku() bool                   { return p.inKyoku }
func (p *PlayerState) AnkanCandidates() []mahjong.Tile { return p.ankanCandidates }
func (p *PlayerState) KakanCandidates() []mahjong.Tile { return p.kakanCandidates }
func (p *PlayerState) Broken() error                   { return p.broken }

func (p *PlayerState) KeepShantenDiscards() [mahjong.KindCount]bool { return p.keepShantenDiscards }
func (p *PlayerState) NextShantenDiscards() [mahjong.KindCount]bool { return p.nextShantenDiscards }
func (p *PlayerState) FuuroOverview(seat int32) [][]mahjong.Tile    { return p.fuuroOverview[seat] }
