package manifest

// typeMode determines where a row's meter type comes from.
type typeMode int

const (
	// typeColumn means the manifest has a per-row type column.
	typeColumn typeMode = iota
	// typeFixed means the whole manifest is one type, named by the profile.
	typeFixed
)

// Profile describes the column layout of one supplier's manifest export.
// Supporting a new supplier is just adding a Profile to the profiles slice.
type Profile struct {
	Name      string
	Comma     rune
	SerialCol string
	TypeMode  typeMode
	TypeCol   string // used when TypeMode == typeColumn
	FixedType string // used when TypeMode == typeFixed
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.SerialCol}
	if p.TypeMode == typeColumn {
		cols = append(cols, p.TypeCol)
	}

	return cols
}

// profiles is the ordered list of supplier formats to try during
// auto-detection. More specific profiles come first.
var profiles = []Profile{
	{
		Name:      "hexing",
		Comma:     ',',
		SerialCol: "Serial Number",
		TypeMode:  typeColumn,
		TypeCol:   "Meter Type",
	},
	{
		Name:      "stron",
		Comma:     ',',
		SerialCol: "Meter No.",
		TypeMode:  typeColumn,
		TypeCol:   "Type",
	},
	{
		Name:      "inhemeter-split",
		Comma:     ';',
		SerialCol: "SERIAL_NO",
		TypeMode:  typeFixed,
		FixedType: "split",
	},
}

// typeAliases maps the type labels suppliers use onto our two categories.
var typeAliases = map[string]string{
	"split":       "split",
	"split phase": "split",
	"sp":          "split",
	"integrated":  "integrated",
	"integ":       "integrated",
	"din":         "integrated",
}
