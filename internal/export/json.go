package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/obliquity/internal/discrepancy"
)

type ExportData struct {
	Obliquity float64      `json:"obliquity"`
	NumDays   int          `json:"num_days"`
	Peak      SampleJSON   `json:"peak"`
	Samples   []SampleJSON `json:"samples"`
}

type SampleJSON struct {
	Day          int     `json:"day"`
	OrbitalAngle float64 `json:"orbital_angle"`
	Minutes      float64 `json:"minutes"`
	Degrees      float64 `json:"degrees"`
}

func toJSON(s discrepancy.Sample) SampleJSON {
	return SampleJSON{
		Day:          s.Day,
		OrbitalAngle: s.OrbitalAngle,
		Minutes:      s.Minutes,
		Degrees:      discrepancy.MinutesToDegrees(s.Minutes),
	}
}

// NewExportData summarizes a series for JSON output.
func NewExportData(obliquity float64, samples []discrepancy.Sample) ExportData {
	data := ExportData{
		Obliquity: obliquity,
		NumDays:   len(samples),
		Peak:      toJSON(discrepancy.Peak(samples)),
		Samples:   make([]SampleJSON, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = toJSON(s)
	}
	return data
}

func WriteJSON(w io.Writer, obliquity float64, samples []discrepancy.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(obliquity, samples))
}
