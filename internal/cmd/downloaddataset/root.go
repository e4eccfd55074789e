package downloaddataset

import (
	"fmt"
	"net/url"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/BaizeAI/download-dataset/config"
	"github.com/BaizeAI/download-dataset/internal/pkg/constants"
	"github.com/BaizeAI/download-dataset/internal/pkg/datasets"
	"github.com/BaizeAI/download-dataset/internal/pkg/datasets/huggingface"
	"github.com/BaizeAI/download-dataset/pkg/log"
)

func NewCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "download-dataset",
		Short:         "Download every split of a dataset as JSON lines",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := new(CommandFlags)

	rootCmd.Flags().StringVar(&flags.Dataset, "dataset", constants.DefaultDatasetName, "dataset name")
	rootCmd.Flags().StringVar(&flags.DownloadDir, "download_dir", constants.DefaultDownloadDir, "directory to download the dataset to")
	rootCmd.Flags().StringVar(&flags.ConfigName, "config-name", constants.DefaultConfigName, "dataset configuration whose splits are downloaded")
	rootCmd.Flags().StringVar(&flags.Endpoint, "endpoint", constants.DatasetsServerEndpoint, "endpoint of the datasets server API")
	rootCmd.Flags().IntVar(&flags.PageSize, "page-size", constants.DefaultRowsPageSize, fmt.Sprintf("rows fetched per request, at most %d", constants.MaxRowsPageSize))
	rootCmd.Flags().BoolVar(&flags.AllowIncomplete, "allow-incomplete", false, "keep splits the hub serves partially or with truncated cells instead of failing")
	rootCmd.Flags().StringVar(&flags.ConfigFile, "config", "", "path to a YAML config file")
	rootCmd.Flags().BoolVar(&flags.Debug, "debug", false, "enable debug logging")

	rootCmd.PreRunE = newCommandPreRunEFunc(flags)
	rootCmd.RunE = newCommandRunEFunc(flags)

	return rootCmd
}

type CommandFlags struct {
	Dataset     string
	DownloadDir string

	ConfigName string
	Endpoint   string
	PageSize   int
	ConfigFile string
	Debug      bool

	AllowIncomplete bool
}

// newCommandPreRunEFunc resolves flags that were not set explicitly from the
// environment and the config file, then validates the result.
func newCommandPreRunEFunc(flags *CommandFlags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if flags.Debug {
			log.SetDebug()
		}

		var err error
		if flags.ConfigFile != "" {
			err = config.ParseConfigFromFile(flags.ConfigFile)
		} else {
			err = config.ParseConfigFromEnv()
		}
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		if !cmd.Flags().Changed("endpoint") {
			flags.Endpoint = config.GetEndpoint()
		}
		if !cmd.Flags().Changed("page-size") {
			flags.PageSize = config.GetPageSize()
		}
		if !cmd.Flags().Changed("config-name") {
			flags.ConfigName = config.GetConfigName()
		}

		parsedURL, err := url.Parse(flags.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint %s: %w", flags.Endpoint, err)
		}
		if !parsedURL.IsAbs() || parsedURL.Host == "" {
			return fmt.Errorf("invalid endpoint %s: must be an absolute URL", flags.Endpoint)
		}
		if flags.PageSize <= 0 || flags.PageSize > constants.MaxRowsPageSize {
			return fmt.Errorf("flag --page-size must be between 1 and %d, got %d", constants.MaxRowsPageSize, flags.PageSize)
		}

		return nil
	}
}

func newCommandRunEFunc(flags *CommandFlags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log.WithFields(logrus.Fields{
			"dataset":         flags.Dataset,
			"downloadDir":     flags.DownloadDir,
			"configName":      flags.ConfigName,
			"endpoint":        flags.Endpoint,
			"pageSize":        flags.PageSize,
			"allowIncomplete": flags.AllowIncomplete,
		}).Debug("downloading dataset")

		client := huggingface.NewHfAPIClient(huggingface.WithEndpoint(flags.Endpoint))

		hub, err := datasets.NewHuggingFaceHub(client, flags.PageSize, datasets.WithAllowIncomplete(flags.AllowIncomplete))
		if err != nil {
			return err
		}

		downloader := datasets.NewDownloader(hub, datasets.Options{
			Dataset:        flags.Dataset,
			ConfigName:     flags.ConfigName,
			DownloadDir:    flags.DownloadDir,
			OutputFilename: constants.OutputFilename,
		}, cmd.OutOrStdout())

		return downloader.Run(cmd.Context())
	}
}

func HandleError(err error) {
	if err == nil {
		return
	}

	_, err = fmt.Fprintf(os.Stderr, "failed to download dataset: %s\n", err)
	if err != nil {
		panic(err)
	}

	os.Exit(1)
}
