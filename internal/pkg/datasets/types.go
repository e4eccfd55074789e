package datasets

import (
	"context"
)

// Hub is the dataset-hub surface the downloader depends on.
type Hub interface {
	SplitNames(ctx context.Context, dataset string, config string) ([]string, error)
	LoadSplit(ctx context.Context, dataset string, config string, split string) (*Split, error)
}

type Options struct {
	Dataset    string
	ConfigName string

	DownloadDir    string
	OutputFilename string
}
