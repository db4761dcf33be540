package lostfound

// ItemType is the closed category set items are filed under.
type ItemType int

const (
	TypeBook ItemType = iota + 1
	TypeBag
	TypeCard
	TypeKey
	TypePhone
	TypeWatch
	TypePen
	TypeUmbrella
	TypeEarphone
	TypeOtherItem
)

var itemTypeNames = map[ItemType]string{
	TypeBook:      "book",
	TypeBag:       "bag",
	TypeCard:      "card",
	TypeKey:       "key",
	TypePhone:     "phone",
	TypeWatch:     "watch",
	TypePen:       "pen",
	TypeUmbrella:  "umbrella",
	TypeEarphone:  "earphone",
	TypeOtherItem: "other",
}

func (t ItemType) Valid() bool { return t >= TypeBook && t <= TypeOtherItem }

func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ItemTypes lists every valid type in declaration order, for building
// filter options.
func ItemTypes() []ItemType {
	out := make([]ItemType, 0, len(itemTypeNames))
	for t := TypeBook; t <= TypeOtherItem; t++ {
		out = append(out, t)
	}
	return out
}

// Color is the closed color set used in item descriptions and search
// filters.
type Color int

const (
	ColorRed Color = iota + 1
	ColorLightRed
	ColorDarkRed
	ColorGreen
	ColorLightGreen
	ColorDarkGreen
	ColorBlue
	ColorLightBlue
	ColorDarkBlue
	ColorYellow
	ColorOrange
	ColorPurple
	ColorPink
	ColorBrown
	ColorGray
	ColorBlack
	ColorWhite
	ColorOther
)

var colorNames = map[Color]string{
	ColorRed:        "red",
	ColorLightRed:   "light red",
	ColorDarkRed:    "dark red",
	ColorGreen:      "green",
	ColorLightGreen: "light green",
	ColorDarkGreen:  "dark green",
	ColorBlue:       "blue",
	ColorLightBlue:  "light blue",
	ColorDarkBlue:   "dark blue",
	ColorYellow:     "yellow",
	ColorOrange:     "orange",
	ColorPurple:     "purple",
	ColorPink:       "pink",
	ColorBrown:      "brown",
	ColorGray:       "gray",
	ColorBlack:      "black",
	ColorWhite:      "white",
	ColorOther:      "other",
}

func (c Color) Valid() bool { return c >= ColorRed && c <= ColorOther }

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Colors lists every valid color in declaration order.
func Colors() []Color {
	out := make([]Color, 0, len(colorNames))
	for c := ColorRed; c <= ColorOther; c++ {
		out = append(out, c)
	}
	return out
}

// ClaimStatus tells whether an item has been picked up by its owner.
type ClaimStatus int

const (
	StatusUnclaimed ClaimStatus = 0
	StatusClaimed   ClaimStatus = 1
)

func (s ClaimStatus) String() string {
	switch s {
	case StatusUnclaimed:
		return "unclaimed"
	case StatusClaimed:
		return "claimed"
	default:
		return "unknown"
	}
}

// Pagination defaults shared by every paged listing.
const (
	DefaultPageNum  = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)
