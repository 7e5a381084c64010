package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/obliquity/internal/discrepancy"
)

var ErrBadSeries = errors.New("export: malformed series csv")

// WriteCSV writes samples as day, orbital angle (radians) and minutes.
func WriteCSV(out io.Writer, samples []discrepancy.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"day", "orbital_angle", "minutes"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Day),
			strconv.FormatFloat(s.OrbitalAngle, 'f', 6, 64),
			strconv.FormatFloat(s.Minutes, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(in io.Reader) ([]discrepancy.Sample, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSeries, err)
	}
	if len(records) < 2 {
		return []discrepancy.Sample{}, nil
	}

	samples := make([]discrepancy.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		day, err1 := strconv.Atoi(rec[0])
		angle, err2 := strconv.ParseFloat(rec[1], 64)
		minutes, err3 := strconv.ParseFloat(rec[2], 64)
		if err := errors.Join(err1, err2, err3); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadSeries, i+2, err)
		}
		samples = append(samples, discrepancy.Sample{Day: day, OrbitalAngle: angle, Minutes: minutes})
	}
	return samples, nil
}
