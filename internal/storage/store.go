// Package storage persists run diagnostics under a data directory, one
// subdirectory per run with metadata.json and reports.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/nbodylab/internal/driver"
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
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	TEnd      float64            `json:"t_end"`
	Workers   int                `json:"workers"`
	Partition string             `json:"partition"`
	Bodies    int                `json:"bodies"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(scenario string, cfg driver.Config, bodies int, result *driver.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		TEnd:      cfg.TEnd,
		Workers:   cfg.Workers,
		Partition: cfg.Partition.String(),
		Bodies:    bodies,
		Steps:     result.Steps,
		Metrics: map[string]float64{
			"final_total":     result.Final.Total,
			"final_kinetic":   result.Final.Kinetic,
			"final_potential": result.Final.Potential,
			"max_drift":       result.MaxDrift,
		},
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

	csvFile, err := os.Create(filepath.Join(runDir, "reports.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"step", "time", "total", "kinetic", "potential", "drift"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, d := range result.Reports {
		row := []string{
			strconv.Itoa(d.Step),
			strconv.FormatFloat(d.T, 'g', -1, 64),
			strconv.FormatFloat(d.Total, 'g', -1, 64),
			strconv.FormatFloat(d.Kinetic, 'g', -1, 64),
			strconv.FormatFloat(d.Potential, 'g', -1, 64),
			strconv.FormatFloat(d.Drift, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

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

func (s *Store) LoadReports(runID string) ([]driver.Diagnostic, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "reports.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []driver.Diagnostic{}, nil
	}

	reports := make([]driver.Diagnostic, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 6 {
			continue
		}

		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		vals := make([]float64, 5)
		ok := true
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		reports = append(reports, driver.Diagnostic{
			Step:      step,
			T:         vals[0],
			Total:     vals[1],
			Kinetic:   vals[2],
			Potential: vals[3],
			Drift:     vals[4],
		})
	}

	return reports, nil
}
