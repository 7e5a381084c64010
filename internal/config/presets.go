package config

import "sort"

// Preset is a named tilt and year length.
type Preset struct {
	Description string
	Obliquity   float64
	NumDays     int
}

// Presets holds axial tilts of solar system planets plus two teaching cases.
// Year lengths are in Earth days except for Mars, which uses sols.
var Presets = map[string]Preset{
	"earth":   {Description: "Earth, J2000 mean obliquity", Obliquity: 23.44, NumDays: 365},
	"mars":    {Description: "Mars, one year in sols", Obliquity: 25.19, NumDays: 668},
	"jupiter": {Description: "Jupiter, almost upright", Obliquity: 3.13, NumDays: 365},
	"saturn":  {Description: "Saturn", Obliquity: 26.73, NumDays: 365},
	"uranus":  {Description: "Uranus, rolling on its side", Obliquity: 97.77, NumDays: 365},
	"venus":   {Description: "Venus, retrograde rotation", Obliquity: 177.36, NumDays: 365},
	"flat":    {Description: "no tilt, solar and clock noon agree", Obliquity: 0, NumDays: 16},
	"extreme": {Description: "steep tilt with few days", Obliquity: 60, NumDays: 16},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns the preset names in order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's tilt and year length into cfg.
func (p Preset) Apply(cfg *Config) {
	cfg.Obliquity = p.Obliquity
	cfg.NumDays = p.NumDays
	cfg.CurrentDay = min(cfg.CurrentDay, p.NumDays-1)
}
