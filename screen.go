package opsdeck

// Screen indicates which screen is currently displayed
type Screen int

const (
	TableScreen Screen = iota
	DetailScreen
	FilterScreen
	CalendarScreen
)

var screenNames = map[Screen]string{
	TableScreen:    "table",
	DetailScreen:   "detail",
	FilterScreen:   "filter",
	CalendarScreen: "calendar",
}

func (scr Screen) String() string {
	return screenNames[scr]
}
