package datasets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BaizeAI/download-dataset/internal/pkg/datasets/huggingface"
)

var _ Hub = &fakeHub{}

type fakeHub struct {
	splits    map[string][]string
	splitData map[string]*Split
	loadErr   map[string]error

	loaded []string
}

func (f *fakeHub) SplitNames(_ context.Context, dataset string, _ string) ([]string, error) {
	names, ok := f.splits[dataset]
	if !ok {
		return nil, &huggingface.HfAPIError{
			HfAPIErrorResponse: huggingface.HfAPIErrorResponse{Error: fmt.Sprintf("dataset %s does not exist", dataset)},
			StatusCode:         404,
		}
	}

	return names, nil
}

func (f *fakeHub) LoadSplit(_ context.Context, dataset string, config string, split string) (*Split, error) {
	f.loaded = append(f.loaded, split)

	if err, ok := f.loadErr[split]; ok {
		return nil, err
	}

	s, ok := f.splitData[split]
	if !ok {
		return nil, fmt.Errorf("split %s not found", split)
	}

	s.Dataset = dataset
	s.Config = config
	s.Name = split

	return s, nil
}

var _ huggingface.HfDatasetsAPI = &fakeHfDatasetsAPI{}

type fakeHfDatasetsAPI struct {
	splits *huggingface.HfAPISplitsResponse
	// rows of every split, paged by the fake.
	rows    map[string][]json.RawMessage
	partial bool
	// truncated cells by row index.
	truncated map[int][]string

	rowsCalls [][2]int
}

func (f *fakeHfDatasetsAPI) Splits(_ context.Context, _ string, _ string) (*huggingface.HfAPISplitsResponse, error) {
	return f.splits, nil
}

func (f *fakeHfDatasetsAPI) Rows(_ context.Context, _ string, _ string, split string, offset int, length int) (*huggingface.HfAPIRowsResponse, error) {
	f.rowsCalls = append(f.rowsCalls, [2]int{offset, length})

	all, ok := f.rows[split]
	if !ok {
		return nil, &huggingface.HfAPIError{HfAPIErrorResponse: huggingface.HfAPIErrorResponse{Error: "split not found"}, StatusCode: 404}
	}

	resp := &huggingface.HfAPIRowsResponse{
		Features: []huggingface.HfAPIFeature{
			{FeatureIdx: 0, Name: "text", Type: json.RawMessage(`{"dtype":"string","_type":"Value"}`)},
			{FeatureIdx: 1, Name: "label", Type: json.RawMessage(`{"_type":"ClassLabel"}`)},
		},
		NumRowsTotal:   len(all),
		NumRowsPerPage: length,
		Partial:        f.partial,
	}

	for i := offset; i < len(all) && i < offset+length; i++ {
		resp.Rows = append(resp.Rows, huggingface.HfAPIRow{RowIdx: i, Row: all[i], TruncatedCells: f.truncated[i]})
	}

	return resp, nil
}

func rowsOf(lines ...string) []json.RawMessage {
	rows := make([]json.RawMessage, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, json.RawMessage(line))
	}

	return rows
}
