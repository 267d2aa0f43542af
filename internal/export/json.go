package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/trajsim/internal/sim"
	"github.com/san-kum/trajsim/internal/storage"
)

type RunData struct {
	storage.RunMetadata
	Samples []sim.Sample `json:"samples"`
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, samples []sim.Sample) error {
	if samples == nil {
		samples = []sim.Sample{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(RunData{RunMetadata: meta, Samples: samples})
}

func ExportJSON(path string, meta storage.RunMetadata, samples []sim.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, samples)
}
