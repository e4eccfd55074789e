package datasets

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/BaizeAI/download-dataset/pkg/log"
	"github.com/BaizeAI/download-dataset/pkg/utils"
)

type Feature struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type,omitempty"`
}

// Split is one materialized split of a dataset. Rows are kept exactly as the
// hub returned them.
type Split struct {
	Dataset string
	Config  string
	Name    string

	Features []Feature
	Rows     []json.RawMessage
}

func (s *Split) NumRows() int {
	return len(s.Rows)
}

func (s *Split) FeatureNames() []string {
	return lo.Map(s.Features, func(item Feature, _ int) string {
		return item.Name
	})
}

func (s *Split) String() string {
	quoted := lo.Map(s.FeatureNames(), func(item string, _ int) string {
		return "'" + item + "'"
	})

	return fmt.Sprintf("Dataset({\n    features: [%s],\n    num_rows: %d\n})", strings.Join(quoted, ", "), s.NumRows())
}

// EncodeJSONLines writes every row as a single line of compact JSON.
func (s *Split) EncodeJSONLines(w io.Writer) error {
	bufWriter := bufio.NewWriter(w)
	line := new(bytes.Buffer)

	for i, row := range s.Rows {
		line.Reset()

		err := json.Compact(line, row)
		if err != nil {
			return fmt.Errorf("row %d of split %s is not valid JSON: %w", i, s.Name, err)
		}

		line.WriteByte('\n')
		_, err = bufWriter.Write(line.Bytes())
		if err != nil {
			return err
		}
	}

	return bufWriter.Flush()
}

// WriteJSONLines replaces the file at path with the JSON lines encoding of
// the split.
func (s *Split) WriteJSONLines(path string) error {
	logger := log.WithFields(logrus.Fields{
		"dataset": s.Dataset,
		"config":  s.Config,
		"split":   s.Name,
		"numRows": s.NumRows(),
	})

	logger.Debugf("writing split as JSON lines to %s", path)

	return utils.ReplaceFile(logger, path, s.EncodeJSONLines)
}
