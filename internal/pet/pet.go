package pet

import (
	"fmt"
	"math"
	"strings"

	"github.com/rivo/uniseg"
)

// Satiety bounds and notification thresholds.
const (
	MinSatiety = 0
	MaxSatiety = 100

	// HungryThreshold is crossed when satiety drops from above to at or below it.
	HungryThreshold = 40
	// StarvingThreshold is crossed when satiety drops from above to at or below it.
	StarvingThreshold = 20
)

// Pet is one adopted pet. The JSON field names match the records written by
// earlier releases so existing collections keep loading.
type Pet struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Emoji    string  `json:"type"`
	TypeName string  `json:"typeName"`
	Satiety  float64 `json:"satiety"`
}

// Label returns "<emoji> <name>".
func (p Pet) Label() string {
	return p.Emoji + " " + p.Name
}

// Band returns the satiety band of the pet.
func (p Pet) Band() Band {
	return Classify(p.Satiety)
}

// Band is a satiety classification.
type Band int

// Bands in ascending satiety order.
const (
	BandStarving Band = iota
	BandHungry
	BandPeckish
	BandOK
	BandFull
)

// Classify maps a satiety value to its band. Boundary values belong to the
// lower band: 80 is ok, 60 is peckish, 40 is hungry, 20 is starving.
func Classify(satiety float64) Band {
	switch {
	case satiety > 80:
		return BandFull
	case satiety > 60:
		return BandOK
	case satiety > 40:
		return BandPeckish
	case satiety > 20:
		return BandHungry
	default:
		return BandStarving
	}
}

// String returns the status word shown next to the pet.
func (b Band) String() string {
	switch b {
	case BandFull:
		return "full"
	case BandOK:
		return "ok"
	case BandPeckish:
		return "peckish"
	case BandHungry:
		return "hungry"
	default:
		return "starving"
	}
}

// Color returns the band's display colour as a hex string.
func (b Band) Color() string {
	switch b {
	case BandFull:
		return "#3EC73E"
	case BandOK:
		return "#98C379"
	case BandPeckish:
		return "#E5C07B"
	case BandHungry:
		return "#E06C75"
	default:
		return "#BE5046"
	}
}

func clampSatiety(v float64) float64 {
	return math.Min(MaxSatiety, math.Max(MinSatiety, v))
}

// StatusText renders "<emoji> <name> (<status>)" right-padded to
// width plus the display width of the name, measured in terminal cells.
func StatusText(p Pet, status string, width int) string {
	text := fmt.Sprintf("%s %s (%s)", p.Emoji, p.Name, status)
	target := width + uniseg.StringWidth(p.Name)
	if pad := target - uniseg.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

// Tooltip renders the truncated satiety percentage.
func Tooltip(p Pet) string {
	return fmt.Sprintf("%d%%", int(math.Floor(p.Satiety)))
}

// PickerLabel renders a pet as listed in the switch picker.
func PickerLabel(p Pet) string {
	return fmt.Sprintf("%s (%s)", p.Label(), p.Band())
}
