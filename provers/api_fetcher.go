package prover

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	cfgtypes "github.com/kysee/bls377-snark/provers/types"
	"github.com/kysee/bls377-snark/types"
)

// APIFetcher implements Fetcher by calling an epoch REST endpoint
type APIFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewAPIFetcher creates a new APIFetcher with the given base URL
func NewAPIFetcher(baseURL string) *APIFetcher {
	return &APIFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{},
	}
}

// Epoch retrieves the epoch record via the REST API
// GET /epochs/{number}
func (a *APIFetcher) Epoch(number uint64) (*types.EpochRecord, error) {
	endpoint, err := url.Parse(a.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	endpoint.Path = fmt.Sprintf("/epochs/%d", number)

	// Send HTTP GET request
	resp, err := a.Client.Get(endpoint.String())
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Check HTTP status code
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	// Parse API response
	var apiResponse cfgtypes.EpochAPIResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	// Check if we got any records
	if len(apiResponse) == 0 {
		return nil, fmt.Errorf("no epoch records found")
	}

	// Return the first record
	return &apiResponse[0], nil
}
