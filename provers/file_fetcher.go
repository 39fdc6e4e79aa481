package prover

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kysee/bls377-snark/types"
)

// FileFetcher implements Fetcher by reading epoch records from a local JSON
// file holding an array of records
type FileFetcher struct {
	FilePath string
}

// NewFileFetcher creates a new FileFetcher with the given file path
func NewFileFetcher(filePath string) *FileFetcher {
	return &FileFetcher{
		FilePath: filePath,
	}
}

// Epoch reads the file and returns the record matching the epoch number
func (f *FileFetcher) Epoch(number uint64) (*types.EpochRecord, error) {
	data, err := os.ReadFile(f.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", f.FilePath, err)
	}

	var records []types.EpochRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	for i := range records {
		if records[i].Epoch == number {
			return &records[i], nil
		}
	}

	return nil, fmt.Errorf("no record for epoch %d in %s", number, f.FilePath)
}
