// Package dataset reads and writes the crawl output artifact, the single
// hand-off file between the ingestion pipeline and the view layer.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lawwatch/lawwatch/internal/notice"
)

// Dataset is the serialized artifact: raw merged records, pre-classification.
type Dataset struct {
	Documents    []notice.Document `json:"documents"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	TotalRecords int               `json:"totalRecords"`
}

// New assembles a Dataset. totalRecords falls back to the document count when
// the listing never reported one.
func New(documents []notice.Document, totalRecords int, updatedAt time.Time) Dataset {
	if documents == nil {
		documents = []notice.Document{}
	}
	if totalRecords <= 0 {
		totalRecords = len(documents)
	}
	return Dataset{
		Documents:    documents,
		UpdatedAt:    updatedAt.UTC(),
		TotalRecords: totalRecords,
	}
}

// Write persists the dataset to path, creating parent directories as needed.
func Write(path string, ds Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create dataset dir for %s: %w", path, err)
	}
	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return nil
}

// Load reads the dataset from path.
func Load(path string) (Dataset, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var ds Dataset
	if err := json.Unmarshal(payload, &ds); err != nil {
		return Dataset{}, fmt.Errorf("unmarshal dataset %s: %w", path, err)
	}
	if ds.TotalRecords == 0 {
		ds.TotalRecords = len(ds.Documents)
	}
	return ds, nil
}
