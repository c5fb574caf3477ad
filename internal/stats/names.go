package stats

var pitchNames = map[string]string{
	"FF": "4-Seam Fastball",
	"SI": "Sinker",
	"FC": "Cutter",
	"SL": "Slider",
	"ST": "Sweeper",
	"CU": "Curveball",
	"KC": "Knuckle Curve",
	"CH": "Changeup",
	"FS": "Splitter",
	"SV": "Slurve",
	"KN": "Knuckleball",
}

// PitchName maps a Statcast pitch code to its display name.
// Unknown codes are returned unchanged.
func PitchName(code string) string {
	if name, ok := pitchNames[code]; ok {
		return name
	}
	return code
}
