package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/BaizeAI/download-dataset/internal/pkg/constants"
)

const (
	hubAPIEndpointPathSplits = "/splits"
	hubAPIEndpointPathRows   = "/rows"

	userAgent = "download-dataset/1.0.0"
)

type HfAPISplitEntry struct {
	Dataset string `json:"dataset"`
	Config  string `json:"config"`
	Split   string `json:"split"`
}

type HfAPISplitsResponse struct {
	Splits  []HfAPISplitEntry `json:"splits"`
	Pending []json.RawMessage `json:"pending,omitempty"`
	Failed  []json.RawMessage `json:"failed,omitempty"`
}

type HfAPIFeature struct {
	FeatureIdx int             `json:"feature_idx"`
	Name       string          `json:"name"`
	Type       json.RawMessage `json:"type"`
}

type HfAPIRow struct {
	RowIdx         int             `json:"row_idx"`
	Row            json.RawMessage `json:"row"`
	TruncatedCells []string        `json:"truncated_cells"`
}

type HfAPIRowsResponse struct {
	Features       []HfAPIFeature `json:"features"`
	Rows           []HfAPIRow     `json:"rows"`
	NumRowsTotal   int            `json:"num_rows_total"`
	NumRowsPerPage int            `json:"num_rows_per_page"`
	Partial        bool           `json:"partial"`
}

type HfAPIErrorResponse struct {
	Error string `json:"error"`
}

type HfAPIError struct {
	HfAPIErrorResponse

	StatusCode int
}

func (e *HfAPIError) Error() string {
	if e.HfAPIErrorResponse.Error == "" {
		return fmt.Sprintf("unexpected status code %d from dataset hub", e.StatusCode)
	}

	return e.HfAPIErrorResponse.Error
}

// IsHfAPIError reports whether err or any error it wraps is a *HfAPIError.
func IsHfAPIError(err error) bool {
	var hfErr *HfAPIError
	return errors.As(err, &hfErr)
}

type HfDatasetsAPI interface {
	Splits(ctx context.Context, dataset string, config string) (*HfAPISplitsResponse, error)
	Rows(ctx context.Context, dataset string, config string, split string, offset int, length int) (*HfAPIRowsResponse, error)
}

type HfAPIClient struct {
	client      *http.Client
	apiEndpoint string
}

type HfAPIClientOption func(c *HfAPIClient)

func WithEndpoint(endpoint string) HfAPIClientOption {
	return func(c *HfAPIClient) {
		c.apiEndpoint = strings.TrimRight(endpoint, "/")
	}
}

func WithHTTPClient(client *http.Client) HfAPIClientOption {
	return func(c *HfAPIClient) {
		c.client = client
	}
}

// NewHfAPIClient creates a new HfAPIClient for the datasets-server API.
//
// Documentations: https://huggingface.co/docs/dataset-viewer/quick_start
func NewHfAPIClient(opts ...HfAPIClientOption) *HfAPIClient {
	c := &HfAPIClient{
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *HfAPIClient) endpoint() string {
	if c.apiEndpoint == "" {
		return constants.DatasetsServerEndpoint
	}

	return c.apiEndpoint
}

// Splits lists the splits of dataset under config.
//
// Documentations: https://huggingface.co/docs/dataset-viewer/splits
func (c *HfAPIClient) Splits(ctx context.Context, dataset string, config string) (*HfAPISplitsResponse, error) {
	query := url.Values{}
	query.Set("dataset", dataset)
	query.Set("config", config)

	var splitsResponse HfAPISplitsResponse
	err := c.get(ctx, hubAPIEndpointPathSplits, query, &splitsResponse)
	if err != nil {
		return nil, err
	}

	return &splitsResponse, nil
}

// Rows fetches one page of rows of a split.
//
// Documentations: https://huggingface.co/docs/dataset-viewer/rows
func (c *HfAPIClient) Rows(ctx context.Context, dataset string, config string, split string, offset int, length int) (*HfAPIRowsResponse, error) {
	query := url.Values{}
	query.Set("dataset", dataset)
	query.Set("config", config)
	query.Set("split", split)
	query.Set("offset", strconv.Itoa(offset))
	query.Set("length", strconv.Itoa(length))

	var rowsResponse HfAPIRowsResponse
	err := c.get(ctx, hubAPIEndpointPathRows, query, &rowsResponse)
	if err != nil {
		return nil, err
	}

	return &rowsResponse, nil
}

func (c *HfAPIClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.endpoint()+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	req = req.WithContext(ctx)
	req.Header = c.buildHfHeaders()

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	bodyBuffer := new(bytes.Buffer)
	_, err = bodyBuffer.ReadFrom(resp.Body)
	if err != nil {
		return err
	}

	var errResponse HfAPIErrorResponse
	// Non-JSON bodies only matter when the status code is not 2xx.
	_ = json.Unmarshal(bodyBuffer.Bytes(), &errResponse)
	if errResponse.Error != "" || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HfAPIError{HfAPIErrorResponse: errResponse, StatusCode: resp.StatusCode}
	}

	err = json.Unmarshal(bodyBuffer.Bytes(), out)
	if err != nil {
		return fmt.Errorf("failed to decode response of %s: %w", path, err)
	}

	return nil
}

func (c *HfAPIClient) buildHfHeaders() http.Header {
	return http.Header{
		"Accept":     []string{"application/json"},
		"User-Agent": []string{userAgent},
	}
}
