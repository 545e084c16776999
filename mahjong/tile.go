package mahjong

import (
	"fmt"
	"strings"
)

// Tile is a single tile id in mjai order: 0-8 man, 9-17 pin, 18-26 sou,
// 27-33 honors (E S W N P F C). Ids 34-36 are the red fives of man, pin
// and sou; Deaka folds them back onto their kind.
type Tile int32

const (
	TileNull Tile = -1

	TileEast  Tile = 27
	TileSouth Tile = 28
	TileWest  Tile = 29
	TileNorth Tile = 30
	TileHaku  Tile = 31
	TileHatsu Tile = 32
	TileChun  Tile = 33

	TileAkaMan Tile = 34
	TileAkaPin Tile = 35
	TileAkaSou Tile = 36
)

const (
	KindCount = 34 // distinct kinds, akas excluded
	TileCount = 37 // kinds plus the three red fives
	AkaCount  = 3
)

type EColor int

const (
	ColorUndefined EColor = -1
	ColorMan       EColor = iota - 1 // 万
	ColorPin                         // 筒
	ColorSou                         // 索
	ColorHonor                       // 字牌
	ColorEnd
)

var honorNames = []string{"E", "S", "W", "N", "P", "F", "C"}

var nameToHonor = map[string]Tile{
	"E": TileEast, "S": TileSouth, "W": TileWest, "N": TileNorth,
	"P": TileHaku, "F": TileHatsu, "C": TileChun,
}

func MakeTile(color EColor, point int) Tile {
	if color < ColorMan || color >= ColorEnd || point < 0 {
		return TileNull
	}
	if color == ColorHonor {
		if point > 6 {
			return TileNull
		}
		return TileEast + Tile(point)
	}
	if point > 8 {
		return TileNull
	}
	return Tile(int(color)*9 + point)
}

func (t Tile) IsValid() bool {
	return t >= 0 && t < TileCount
}

func (t Tile) IsAka() bool {
	return t >= TileAkaMan && t <= TileAkaSou
}

// Deaka maps a red five onto its plain kind; other tiles pass through.
func (t Tile) Deaka() Tile {
	switch t {
	case TileAkaMan:
		return MakeTile(ColorMan, 4)
	case TileAkaPin:
		return MakeTile(ColorPin, 4)
	case TileAkaSou:
		return MakeTile(ColorSou, 4)
	default:
		return t
	}
}

// Kind returns the deaka'd id as an array index into 34-wide vectors.
func (t Tile) Kind() int {
	return int(t.Deaka())
}

func (t Tile) Color() EColor {
	d := t.Deaka()
	if !d.IsValid() {
		return ColorUndefined
	}
	if d >= TileEast {
		return ColorHonor
	}
	return EColor(d / 9)
}

func (t Tile) Point() int {
	d := t.Deaka()
	if !d.IsValid() {
		return -1
	}
	if d >= TileEast {
		return int(d - TileEast)
	}
	return int(d % 9)
}

func (t Tile) IsSuit() bool {
	c := t.Color()
	return c >= ColorMan && c <= ColorSou
}

func (t Tile) IsHonor() bool {
	return t.Color() == ColorHonor
}

// IsYaochuu reports terminals and honors.
func (t Tile) IsYaochuu() bool {
	if t.IsHonor() {
		return true
	}
	return t.IsSuit() && (t.Point() == 0 || t.Point() == 8)
}

// NextDora returns the dora kind indicated by t: suits wrap 9->1 within the
// suit, winds cycle E->S->W->N, dragons cycle P->F->C.
func (t Tile) NextDora() Tile {
	d := t.Deaka()
	switch {
	case d.IsSuit():
		return MakeTile(d.Color(), (d.Point()+1)%9)
	case d >= TileEast && d <= TileNorth:
		return TileEast + (d-TileEast+1)%4
	case d >= TileHaku && d <= TileChun:
		return TileHaku + (d-TileHaku+1)%3
	default:
		return TileNull
	}
}

func (t Tile) Name() string {
	if !t.IsValid() {
		return "?"
	}
	if t.IsAka() {
		return fmt.Sprintf("5%cr", "mps"[t-TileAkaMan])
	}
	if t >= TileEast {
		return honorNames[t-TileEast]
	}
	return fmt.Sprintf("%d%c", t.Point()+1, "mps"[t.Color()])
}

func (t Tile) String() string {
	return t.Name()
}

// ParseTile parses an mjai tile name such as "5m", "5mr" or "E". The hidden
// marker "?" parses to TileNull.
func ParseTile(name string) (Tile, error) {
	if name == "?" {
		return TileNull, nil
	}
	if t, ok := nameToHonor[name]; ok {
		return t, nil
	}
	if len(name) != 2 && len(name) != 3 {
		return TileNull, fmt.Errorf("mahjong: bad tile name %q", name)
	}
	point := int(name[0] - '1')
	suit := strings.IndexByte("mps", name[1])
	if point < 0 || point > 8 || suit < 0 {
		return TileNull, fmt.Errorf("mahjong: bad tile name %q", name)
	}
	if len(name) == 3 {
		if name[2] != 'r' || point != 4 {
			return TileNull, fmt.Errorf("mahjong: bad tile name %q", name)
		}
		return TileAkaMan + Tile(suit), nil
	}
	return Tile(suit*9 + point), nil
}

func (t Tile) MarshalJSON() ([]byte, error) {
	if t == TileNull {
		return []byte(`"?"`), nil
	}
	if !t.IsValid() {
		return nil, fmt.Errorf("mahjong: marshal invalid tile %d", t)
	}
	return []byte(`"` + t.Name() + `"`), nil
}

func (t *Tile) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("mahjong: tile is not a string: %s", s)
	}
	v, err := ParseTile(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func TilesName(tiles []Tile) string {
	names := make([]string, len(tiles))
	for i, t := range tiles {
		names[i] = t.Name()
	}
	return strings.Join(names, ", ")
}

func ParseTiles(names []string) ([]Tile, error) {
	tiles := make([]Tile, len(names))
	for i, name := range names {
		t, err := ParseTile(name)
		if err != nil {
			return nil, err
		}
		tiles[i] = t
	}
	return tiles, nil
}
