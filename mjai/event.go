// Package mjai models the mjai game protocol: one JSON object per event,
// discriminated by a "type" field. Parsing is strict; unknown variants and
// malformed fields are rejected here so the state tracker never sees them.
package mjai

import (
	"encoding/json"
	"fmt"

	"github.com/kevin-chtw/tw_riichi/mahjong"
)

type EventType string

const (
	EventNone          EventType = "none"
	EventStartGame     EventType = "start_game"
	EventStartKyoku    EventType = "start_kyoku"
	EventTsumo         EventType = "tsumo"
	EventDahai         EventType = "dahai"
	EventChi           EventType = "chi"
	EventPon           EventType = "pon"
	EventDaiminkan     EventType = "daiminkan"
	EventKakan         EventType = "kakan"
	EventAnkan         EventType = "ankan"
	EventDora          EventType = "dora"
	EventReach         EventType = "reach"
	EventReachAccepted EventType = "reach_accepted"
	EventHora          EventType = "hora"
	EventRyukyoku      EventType = "ryukyoku"
	EventEndKyoku      EventType = "end_kyoku"
	EventEndGame       EventType = "end_game"
)

const SeatCount = 4

// Event is one protocol event. Fields not carried by the variant are left at
// their zero values (TileNull for tiles, -1 for seats).
type Event struct {
	Type EventType

	Actor     int32
	Target    int32
	Pai       mahjong.Tile
	Consumed  []mahjong.Tile
	Tsumogiri bool

	// start_kyoku only.
	Bakaze     mahjong.Tile
	DoraMarker mahjong.Tile
	Kyoku      int32
	Honba      int32
	Kyotaku    int32
	Oya        int32
	Scores     [SeatCount]int32
	Tehais     [SeatCount][]mahjong.Tile

	// CanAct suppresses action derivation during replay of already-seen
	// events; nil means true.
	CanAct *bool
}

// rawEvent is the superset wire form. Pointers distinguish absent fields.
type rawEvent struct {
	Type       EventType        `json:"type"`
	Actor      *int32           `json:"actor,omitempty"`
	Target     *int32           `json:"target,omitempty"`
	Pai        *mahjong.Tile    `json:"pai,omitempty"`
	Consumed   []mahjong.Tile   `json:"consumed,omitempty"`
	Tsumogiri  *bool            `json:"tsumogiri,omitempty"`
	Bakaze     *mahjong.Tile    `json:"bakaze,omitempty"`
	DoraMarker *mahjong.Tile    `json:"dora_marker,omitempty"`
	Kyoku      *int32           `json:"kyoku,omitempty"`
	Honba      *int32           `json:"honba,omitempty"`
	Kyotaku    *int32           `json:"kyotaku,omitempty"`
	Oya        *int32           `json:"oya,omitempty"`
	Scores     []int32          `json:"scores,omitempty"`
	Tehais     [][]mahjong.Tile `json:"tehais,omitempty"`
	CanAct     *bool            `json:"can_act,omitempty"`
}

// ParseEvent decodes and validates one event line.
func ParseEvent(data []byte) (*Event, error) {
	ev := &Event{}
	if err := ev.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return ev, nil
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("mjai: %w", err)
	}

	*e = Event{
		Type:       raw.Type,
		Actor:      -1,
		Target:     -1,
		Pai:        mahjong.TileNull,
		Bakaze:     mahjong.TileNull,
		DoraMarker: mahjong.TileNull,
		Oya:        -1,
		CanAct:     raw.CanAct,
	}

	seat := func(name string, v *int32) (int32, error) {
		if v == nil {
			return -1, fmt.Errorf("mjai: %s: missing %s", raw.Type, name)
		}
		if *v < 0 || *v >= SeatCount {
			return -1, fmt.Errorf("mjai: %s: %s %d out of range", raw.Type, name, *v)
		}
		return *v, nil
	}
	tile := func(name string, v *mahjong.Tile) (mahjong.Tile, error) {
		if v == nil {
			return mahjong.TileNull, fmt.Errorf("mjai: %s: missing %s", raw.Type, name)
		}
		return *v, nil
	}
	consumed := func(n int) error {
		if len(raw.Consumed) != n {
			return fmt.Errorf("mjai: %s: consumed needs %d tiles, got %d", raw.Type, n, len(raw.Consumed))
		}
		e.Consumed = raw.Consumed
		return nil
	}

	var err error
	switch raw.Type {
	case EventNone, EventStartGame, EventEndKyoku, EventEndGame:
		// No payload of interest.

	case EventStartKyoku:
		if e.Bakaze, err = tile("bakaze", raw.Bakaze); err != nil {
			return err
		}
		if e.Bakaze < mahjong.TileEast || e.Bakaze > mahjong.TileNorth {
			return fmt.Errorf("mjai: start_kyoku: bakaze %s is not a wind", e.Bakaze)
		}
		if e.DoraMarker, err = tile("dora_marker", raw.DoraMarker); err != nil {
			return err
		}
		if e.Oya, err = seat("oya", raw.Oya); err != nil {
			return err
		}
		if raw.Kyoku == nil || *raw.Kyoku < 1 || *raw.Kyoku > 4 {
			return fmt.Errorf("mjai: start_kyoku: bad kyoku")
		}
		e.Kyoku = *raw.Kyoku
		if raw.Honba != nil {
			e.Honba = *raw.Honba
		}
		if raw.Kyotaku != nil {
			e.Kyotaku = *raw.Kyotaku
		}
		if len(raw.Scores) != SeatCount {
			return fmt.Errorf("mjai: start_kyoku: scores needs %d entries", SeatCount)
		}
		copy(e.Scores[:], raw.Scores)
		if len(raw.Tehais) != SeatCount {
			return fmt.Errorf("mjai: start_kyoku: tehais needs %d hands", SeatCount)
		}
		for i, tehai := range raw.Tehais {
			if len(tehai) != 13 {
				return fmt.Errorf("mjai: start_kyoku: tehai %d has %d tiles", i, len(tehai))
			}
			e.Tehais[i] = tehai
		}

	case EventTsumo, EventDahai:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}
		if e.Pai, err = tile("pai", raw.Pai); err != nil {
			return err
		}
		if raw.Tsumogiri != nil {
			e.Tsumogiri = *raw.Tsumogiri
		}

	case EventChi, EventPon:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}
		if e.Target, err = seat("target", raw.Target); err != nil {
			return err
		}
		if e.Pai, err = tile("pai", raw.Pai); err != nil {
			return err
		}
		if err = consumed(2); err != nil {
			return err
		}

	case EventDaiminkan:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}
		if e.Target, err = seat("target", raw.Target); err != nil {
			return err
		}
		if e.Pai, err = tile("pai", raw.Pai); err != nil {
			return err
		}
		if err = consumed(3); err != nil {
			return err
		}

	case EventKakan:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}
		if e.Pai, err = tile("pai", raw.Pai); err != nil {
			return err
		}
		if err = consumed(3); err != nil {
			return err
		}

	case EventAnkan:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}
		if err = consumed(4); err != nil {
			return err
		}

	case EventDora:
		if e.DoraMarker, err = tile("dora_marker", raw.DoraMarker); err != nil {
			return err
		}

	case EventReach, EventReachAccepted:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}

	case EventHora:
		if e.Actor, err = seat("actor", raw.Actor); err != nil {
			return err
		}
		if e.Target, err = seat("target", raw.Target); err != nil {
			return err
		}
		if raw.Pai != nil {
			e.Pai = *raw.Pai
		}

	case EventRyukyoku:
		if raw.Actor != nil {
			if e.Actor, err = seat("actor", raw.Actor); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("mjai: unknown event type %q", raw.Type)
	}
	return nil
}

func (e *Event) MarshalJSON() ([]byte, error) {
	raw := rawEvent{Type: e.Type, CanAct: e.CanAct}
	opt := func(v int32) *int32 {
		if v < 0 {
			return nil
		}
		return &v
	}
	optTile := func(v mahjong.Tile) *mahjong.Tile {
		if !v.IsValid() {
			return nil
		}
		return &v
	}

	switch e.Type {
	case EventNone, EventStartGame, EventEndKyoku, EventEndGame:

	case EventStartKyoku:
		raw.Bakaze = optTile(e.Bakaze)
		raw.DoraMarker = optTile(e.DoraMarker)
		raw.Kyoku = &e.Kyoku
		raw.Honba = &e.Honba
		raw.Kyotaku = &e.Kyotaku
		raw.Oya = opt(e.Oya)
		raw.Scores = e.Scores[:]
		raw.Tehais = make([][]mahjong.Tile, SeatCount)
		for i := range e.Tehais {
			raw.Tehais[i] = e.Tehais[i]
		}

	case EventTsumo, EventDahai:
		raw.Actor = opt(e.Actor)
		raw.Pai = optTile(e.Pai)
		raw.Tsumogiri = &e.Tsumogiri

	case EventChi, EventPon, EventDaiminkan:
		raw.Actor = opt(e.Actor)
		raw.Target = opt(e.Target)
		raw.Pai = optTile(e.Pai)
		raw.Consumed = e.Consumed

	case EventKakan:
		raw.Actor = opt(e.Actor)
		raw.Pai = optTile(e.Pai)
		raw.Consumed = e.Consumed

	case EventAnkan:
		raw.Actor = opt(e.Actor)
		raw.Consumed = e.Consumed

	case EventDora:
		raw.DoraMarker = optTile(e.DoraMarker)

	case EventReach, EventReachAccepted:
		raw.Actor = opt(e.Actor)

	case EventHora:
		raw.Actor = opt(e.Actor)
		raw.Target = opt(e.Target)
		raw.Pai = optTile(e.Pai)

	case EventRyukyoku:
		raw.Actor = opt(e.Actor)

	default:
		return nil, fmt.Errorf("mjai: unknown event type %q", e.Type)
	}
	return json.Marshal(raw)
}

// ShouldAct reports the replay-suppression flag, defaulting to true.
func (e *Event) ShouldAct() bool {
	return e.CanAct == nil || *e.CanAct
}
