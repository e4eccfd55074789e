package datasets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/BaizeAI/download-dataset/internal/pkg/constants"
	"github.com/BaizeAI/download-dataset/internal/pkg/datasets/huggingface"
	"github.com/BaizeAI/download-dataset/pkg/log"
)

var _ Hub = &HuggingFaceHub{}

// ErrIncompleteSplit is returned when the hub serves a split only partially
// or with truncated cells.
var ErrIncompleteSplit = errors.New("split is incomplete")

type HuggingFaceHub struct {
	api      huggingface.HfDatasetsAPI
	pageSize int

	allowIncomplete bool
}

type HuggingFaceHubOption func(h *HuggingFaceHub)

// WithAllowIncomplete keeps partial splits and truncated rows instead of
// failing with ErrIncompleteSplit.
func WithAllowIncomplete(allow bool) HuggingFaceHubOption {
	return func(h *HuggingFaceHub) {
		h.allowIncomplete = allow
	}
}

func NewHuggingFaceHub(api huggingface.HfDatasetsAPI, pageSize int, opts ...HuggingFaceHubOption) (*HuggingFaceHub, error) {
	if pageSize <= 0 || pageSize > constants.MaxRowsPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", constants.MaxRowsPageSize, pageSize)
	}

	h := &HuggingFaceHub{
		api:      api,
		pageSize: pageSize,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

func (h *HuggingFaceHub) SplitNames(ctx context.Context, dataset string, config string) ([]string, error) {
	resp, err := h.api.Splits(ctx, dataset, config)
	if err != nil {
		return nil, err
	}

	entries := lo.Filter(resp.Splits, func(item huggingface.HfAPISplitEntry, _ int) bool {
		return item.Config == "" || item.Config == config
	})

	return lo.Map(entries, func(item huggingface.HfAPISplitEntry, _ int) string {
		return item.Split
	}), nil
}

// LoadSplit pages through the rows API until every row of the split has
// been fetched.
func (h *HuggingFaceHub) LoadSplit(ctx context.Context, dataset string, config string, split string) (*Split, error) {
	logger := log.WithFields(logrus.Fields{
		"dataset":  dataset,
		"config":   config,
		"split":    split,
		"pageSize": h.pageSize,
	})

	result := &Split{
		Dataset: dataset,
		Config:  config,
		Name:    split,
		Rows:    make([]json.RawMessage, 0),
	}

	var partial bool
	var truncatedRows int

	offset := 0
	for {
		resp, err := h.api.Rows(ctx, dataset, config, split, offset, h.pageSize)
		if err != nil {
			return nil, err
		}

		if result.Features == nil {
			result.Features = lo.Map(resp.Features, func(item huggingface.HfAPIFeature, _ int) Feature {
				return Feature{Name: item.Name, Type: item.Type}
			})
		}
		if resp.Partial {
			if !h.allowIncomplete {
				return nil, fmt.Errorf("%w: hub serves split %s of dataset %s only partially", ErrIncompleteSplit, split, dataset)
			}
			partial = true
		}

		for _, row := range resp.Rows {
			if len(row.TruncatedCells) > 0 {
				if !h.allowIncomplete {
					return nil, fmt.Errorf("%w: row %d of split %s of dataset %s has truncated cells %v", ErrIncompleteSplit, row.RowIdx, split, dataset, row.TruncatedCells)
				}
				truncatedRows++
			}

			result.Rows = append(result.Rows, row.Row)
		}

		offset += len(resp.Rows)
		logger.Debugf("fetched %d/%d rows", offset, resp.NumRowsTotal)

		if len(resp.Rows) == 0 || offset >= resp.NumRowsTotal {
			break
		}
	}

	if partial {
		logger.Warn("hub reported the split as partial, only the rows it serves are downloaded")
	}
	if truncatedRows > 0 {
		logger.Warnf("%d rows have truncated cells and are written as served", truncatedRows)
	}

	return result, nil
}
