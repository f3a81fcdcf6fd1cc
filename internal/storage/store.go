// Package storage keeps reports of headless runs on disk: a metadata.json
// summary and a per-frame samples.csv under one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Balls      int                `json:"balls"`
	Width      float32            `json:"width"`
	Height     float32            `json:"height"`
	CellSize   float32            `json:"cell_size"`
	Gravity    string             `json:"gravity"`
	Frames     int                `json:"frames"`
	Steps      int                `json:"steps"`
	Dropped    float32            `json:"dropped"`
	SimTime    float64            `json:"sim_time"`
	Collisions int                `json:"collisions"`
	WallHits   int                `json:"wall_hits"`
	Transfers  int                `json:"transfers"`
	Metrics    map[string]float64 `json:"metrics"`
}

// FromResult copies a run's totals into the metadata.
func (m *RunMetadata) FromResult(r *sim.Result) {
	m.Frames = r.Frames
	m.Steps = r.Steps
	m.Dropped = r.Dropped
	m.SimTime = r.Time
	m.Collisions = r.Stats.Collisions
	m.WallHits = r.Stats.WallHits
	m.Transfers = r.Stats.Transfers
	m.Metrics = r.Metrics
}

// Sample is one frame's row in samples.csv.
type Sample struct {
	Frame      int
	Time       float64
	Energy     float64
	Collisions int
}

// Recorder is a sim.Observer collecting one Sample per frame.
type Recorder struct {
	Samples []Sample
}

func (r *Recorder) OnFrame(f *sim.Frame) {
	r.Samples = append(r.Samples, Sample{
		Frame:      f.Index,
		Time:       f.Time,
		Energy:     metrics.TotalKineticEnergy(f),
		Collisions: f.Stats.Collisions,
	})
}

// Save writes meta and samples under a new run directory and returns its ID.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("run_%d", meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "time", "energy", "collisions"}); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Frame),
			strconv.FormatFloat(smp.Time, 'f', 4, 64),
			strconv.FormatFloat(smp.Energy, 'f', 6, 64),
			strconv.Itoa(smp.Collisions),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads a run's samples.csv, skipping malformed rows.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, max(len(records)-1, 0))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		frame, err1 := strconv.Atoi(record[0])
		t, err2 := strconv.ParseFloat(record[1], 64)
		energy, err3 := strconv.ParseFloat(record[2], 64)
		collisions, err4 := strconv.Atoi(record[3])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		samples = append(samples, Sample{Frame: frame, Time: t, Energy: energy, Collisions: collisions})
	}

	return samples, nil
}
