package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/trajsim/internal/kinematics"
	"github.com/san-kum/trajsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "states.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var csvHeader = []string{"time", "x", "y", "vx", "vy", "speed"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string                      `json:"id"`
	Timestamp    time.Time                   `json:"timestamp"`
	Params       kinematics.LaunchParameters `json:"params"`
	DeltaY       float64                     `json:"delta_y"`
	Dt           float64                     `json:"dt"`
	Multiplier   float64                     `json:"speed_multiplier"`
	Impacted     bool                        `json:"impacted"`
	TimeOfFlight float64                     `json:"time_of_flight"`
	Range        float64                     `json:"range"`
	Steps        int                         `json:"steps"`
	Metrics      map[string]float64          `json:"metrics"`
}

// Save writes a run directory with metadata.json and states.csv and returns
// the run id.
func (s *Store) Save(cfg sim.Config, result *sim.Result) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("run_%s", ts.Format("20060102_150405.000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    ts,
		Params:       result.Params,
		DeltaY:       result.Params.DeltaY(),
		Dt:           cfg.Dt,
		Multiplier:   cfg.SpeedMultiplier,
		Impacted:     result.Impacted,
		TimeOfFlight: result.ImpactTime,
		Range:        result.Range,
		Steps:        result.StepsTaken,
		Metrics:      result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}

	return runID, nil
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

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			formatFloat(smp.Time),
			formatFloat(smp.X),
			formatFloat(smp.Y),
			formatFloat(smp.VX),
			formatFloat(smp.VY),
			formatFloat(smp.Speed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
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

// LoadSamples reads states.csv back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(csvHeader) {
			continue
		}

		vals := make([]float64, len(csvHeader))
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		samples = append(samples, sim.Sample{
			Time: vals[0], X: vals[1], Y: vals[2], VX: vals[3], VY: vals[4], Speed: vals[5],
		})
	}

	return samples, nil
}
