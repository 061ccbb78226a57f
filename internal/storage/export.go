package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/nbodylab/internal/driver"
)

type ExportData struct {
	ID        string              `json:"id"`
	Scenario  string              `json:"scenario"`
	Dt        float64             `json:"dt"`
	TEnd      float64             `json:"t_end"`
	Workers   int                 `json:"workers"`
	Partition string              `json:"partition"`
	Bodies    int                 `json:"bodies"`
	Steps     int                 `json:"steps"`
	Reports   []driver.Diagnostic `json:"reports"`
	Metrics   map[string]float64  `json:"metrics"`
}

func exportJSON(w io.Writer, meta *RunMetadata, reports []driver.Diagnostic) error {
	data := ExportData{
		ID:        meta.ID,
		Scenario:  meta.Scenario,
		Dt:        meta.Dt,
		TEnd:      meta.TEnd,
		Workers:   meta.Workers,
		Partition: meta.Partition,
		Bodies:    meta.Bodies,
		Steps:     meta.Steps,
		Reports:   reports,
		Metrics:   meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, meta *RunMetadata, reports []driver.Diagnostic) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, meta, reports)
}

func ExportJSONStdout(meta *RunMetadata, reports []driver.Diagnostic) error {
	return exportJSON(os.Stdout, meta, reports)
}
