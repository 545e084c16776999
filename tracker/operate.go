package tracker

import "github.com/kevin-chtw/tw_riichi/mahjong"

const (
	OperateNone     int32 = 0
	OperatePass     int32 = 1 << (iota - 1) // 过
	OperateDiscard                          // 出牌
	OperateChi                              // 吃
	OperatePon                              // 碰
	OperateMinkan                           // 直杠
	OperateAnkan                            // 暗杠
	OperateKakan                            // 补杠
	OperateRiichi                           // 立直
	OperateTsumo                            // 自摸
	OperateRon                              // 荣和
	OperateRyukyoku                         // 流局宣告
)

var OperateNames = map[int32]string{
	OperatePass:     "Pass",
	OperateDiscard:  "Discard",
	OperateChi:      "Chi",
	OperatePon:      "Pon",
	OperateMinkan:   "Minkan",
	OperateAnkan:    "Ankan",
	OperateKakan:    "Kakan",
	OperateRiichi:   "Riichi",
	OperateTsumo:    "Tsumo",
	OperateRon:      "Ron",
	OperateRyukyoku: "Ryukyoku",
}

// Operates is the unordered capability set derived after one event. Value is
// a bitmask of Operate bits; the payload fields carry the concrete choices
// for the bits that need them. Choice among candidates is the caller's.
type Operates struct {
	Value int32

	// Target is the relative seat reacted to for call operations, and the
	// reacted tile is Tile (the last kawa tile or robbed kakan tile).
	Target int32
	Tile   mahjong.Tile

	// DiscardTiles lists every legal discard, aka ids included.
	DiscardTiles []mahjong.Tile
	// ChiLefts lists the left kind of each formable run.
	ChiLefts []mahjong.Tile
	// AnkanTiles and KakanTiles list declarable kan kinds.
	AnkanTiles []mahjong.Tile
	KakanTiles []mahjong.Tile
}

func NewOperates(ops ...int32) *Operates {
	o := &Operates{Target: SeatNull, Tile: mahjong.TileNull}
	for _, op := range ops {
		o.Value |= op
	}
	return o
}

func (o *Operates) AddOperate(op int32) {
	o.Value |= op
}

func (o *Operates) RemoveOperate(op int32) {
	o.Value &= ^op
}

func (o *Operates) HasOperate(op int32) bool {
	return (o.Value & op) != 0
}

// CanAct reports whether anything beyond an implicit pass is on offer.
func (o *Operates) CanAct() bool {
	return o != nil && o.Value&^OperatePass != 0
}

func (o *Operates) String() string {
	if o == nil || o.Value == 0 {
		return "None"
	}
	s := ""
	for bit := int32(1); bit <= OperateRyukyoku; bit <<= 1 {
		if o.Value&bit != 0 {
			if s != "" {
				s += "|"
			}
			s += OperateNames[bit]
		}
	}
	return s
}
