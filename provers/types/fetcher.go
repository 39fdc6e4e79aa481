package types

import (
	"github.com/kysee/bls377-snark/types"
)

// EpochAPIResponse represents the epoch API response structure
type EpochAPIResponse = []types.EpochRecord

// Fetcher defines the interface for fetching epoch records
type Fetcher interface {
	// Epoch retrieves the record for the given epoch number
	Epoch(number uint64) (*types.EpochRecord, error)
}
