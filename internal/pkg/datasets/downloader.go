package datasets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/BaizeAI/download-dataset/pkg/log"
	"github.com/BaizeAI/download-dataset/pkg/utils"
)

type Downloader struct {
	Hub     Hub
	Options Options

	// Out receives the human readable progress lines.
	Out io.Writer
}

func NewDownloader(hub Hub, options Options, out io.Writer) *Downloader {
	return &Downloader{
		Hub:     hub,
		Options: options,
		Out:     out,
	}
}

func (d *Downloader) OutputPath() string {
	return filepath.Join(d.Options.DownloadDir, d.Options.OutputFilename)
}

// Run downloads every split of the dataset in order. Each split replaces the
// output file written by the previous one.
func (d *Downloader) Run(ctx context.Context) error {
	logger := log.WithFields(logrus.Fields{
		"dataset":     d.Options.Dataset,
		"config":      d.Options.ConfigName,
		"downloadDir": d.Options.DownloadDir,
		"output":      d.OutputPath(),
	})

	err := utils.EnsureDir(logger, d.Options.DownloadDir)
	if err != nil {
		return err
	}

	splits, err := d.Hub.SplitNames(ctx, d.Options.Dataset, d.Options.ConfigName)
	if err != nil {
		return fmt.Errorf("failed to list splits of dataset %s: %w", d.Options.Dataset, err)
	}

	logger.Debugf("found %d splits: %v", len(splits), splits)

	for _, split := range splits {
		_, err = fmt.Fprintf(d.Out, "Loading %s split of %s dataset...\n", split, d.Options.Dataset)
		if err != nil {
			return err
		}

		var loaded *Split
		loaded, err = d.Hub.LoadSplit(ctx, d.Options.Dataset, d.Options.ConfigName, split)
		if err != nil {
			return fmt.Errorf("failed to load split %s of dataset %s: %w", split, d.Options.Dataset, err)
		}

		_, err = fmt.Fprintln(d.Out, loaded.String())
		if err != nil {
			return err
		}

		err = loaded.WriteJSONLines(d.OutputPath())
		if err != nil {
			return fmt.Errorf("failed to write split %s to %s: %w", split, d.OutputPath(), err)
		}

		logger.WithField("split", split).Debugf("split written with %d rows", loaded.NumRows())
	}

	return nil
}
