package entity

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeSuite  RoomType = "suite"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite:
		return true
	}
	return false
}

type Room struct {
	Base
	Name          string   `db:"name"`
	Type          RoomType `db:"type"`
	PricePerNight float64  `db:"price_per_night"`
	Features      []string `db:"features"`     // ordered tags, e.g. wifi, balcony
	Availability  bool     `db:"availability"` // false while a non-cancelled booking holds the room
}
