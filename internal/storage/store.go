package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/export"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrEmptySeries = errors.New("storage: series is empty")
)

// Store keeps saved series runs, one directory per run.
type Store struct {
	baseDir string
	log     *slog.Logger
	now     func() time.Time
}

func New(baseDir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{baseDir: baseDir, log: log, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
	Obliquity   float64   `json:"obliquity"`
	NumDays     int       `json:"num_days"`
	PeakDay     int       `json:"peak_day"`
	PeakMinutes float64   `json:"peak_minutes"`
	MeanMinutes float64   `json:"mean_minutes"`
}

// Save writes samples under a new run named after name and returns its id.
func (s *Store) Save(name string, obliquity float64, samples []discrepancy.Sample) (string, error) {
	if len(samples) == 0 {
		return "", ErrEmptySeries
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	ts := s.now()
	runID, runDir, err := s.makeRunDir(slug(name), ts)
	if err != nil {
		return "", err
	}

	peak := discrepancy.Peak(samples)
	sum := 0.0
	for _, smp := range samples {
		sum += smp.Minutes
	}
	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   ts,
		Obliquity:   obliquity,
		NumDays:     len(samples),
		PeakDay:     peak.Day,
		PeakMinutes: peak.Minutes,
		MeanMinutes: sum / float64(len(samples)),
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), samples); err != nil {
		return "", err
	}
	s.log.Debug("saved run", "id", runID, "days", len(samples), "obliquity", obliquity)
	return runID, nil
}

func (s *Store) makeRunDir(base string, ts time.Time) (string, string, error) {
	id := fmt.Sprintf("%s_%d", base, ts.Unix())
	for i := 2; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d_%d", base, ts.Unix(), i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, samples []discrepancy.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteCSV(f, samples); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Debug("skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the samples saved with a run.
func (s *Store) LoadSeries(runID string) ([]discrepancy.Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()
	return export.ReadCSV(f)
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "run"
	}
	return b.String()
}
