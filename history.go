package damast

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Record is one applied operation in a billet or layer history.
// Histories are append only.
type Record struct {
	Operation  string             `json:"operation"`
	Timestamp  time.Time          `json:"timestamp"`
	Duration   float64            `json:"duration_seconds"`
	Parameters map[string]float64 `json:"parameters"`
	Stats      map[string]float64 `json:"stats,omitempty"`
}

// BilletInfo is the billet dimension summary written to operation logs.
type BilletInfo struct {
	Width      float64 `json:"width_mm"`
	Length     float64 `json:"length_mm"`
	LayerCount int     `json:"layer_count"`
	Height     float64 `json:"total_height_mm"`
}

// OperationLog is the serializable history of a billet: its dimensions at
// export time, every applied operation and the final per-layer statistics.
type OperationLog struct {
	BilletInfo BilletInfo  `json:"billet_info"`
	Operations []Record    `json:"operations"`
	FinalStats BilletStats `json:"final_stats"`
}

// OperationLog assembles the billet's operation log. It does not mutate
// billet state.
func (b *Billet) OperationLog() OperationLog {
	ops := make([]Record, len(b.history))
	copy(ops, b.history)
	return OperationLog{
		BilletInfo: BilletInfo{
			Width:      b.width,
			Length:     b.length,
			LayerCount: len(b.layers),
			Height:     b.Height(),
		},
		Operations: ops,
		FinalStats: b.Stats(),
	}
}

// WriteOperationLog writes the billet's operation log as indented JSON.
func (b *Billet) WriteOperationLog(w io.Writer) error {
	data, err := json.MarshalIndent(b.OperationLog(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal operation log: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// SaveOperationLog writes the billet's operation log to a JSON file.
// I/O failures never affect billet state.
func (b *Billet) SaveOperationLog(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return b.WriteOperationLog(file)
}
