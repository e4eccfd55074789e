package config

import (
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/BaizeAI/download-dataset/internal/pkg/constants"
)

var (
	config *configuration
)

type configuration struct {
	Endpoint   string `json:"endpoint"`
	PageSize   int    `json:"page_size"`
	ConfigName string `json:"config_name"`
}

func GetEndpoint() string {
	if config == nil || config.Endpoint == "" {
		return constants.DatasetsServerEndpoint
	}
	return config.Endpoint
}

func GetPageSize() int {
	if config == nil || config.PageSize == 0 {
		return constants.DefaultRowsPageSize
	}
	return config.PageSize
}

func GetConfigName() string {
	if config == nil || config.ConfigName == "" {
		return constants.DefaultConfigName
	}
	return config.ConfigName
}

// Reset drops any parsed configuration so the getters return defaults again.
func Reset() {
	config = nil
}

func ParseConfigFromFileContent(content string) error {
	f, err := os.CreateTemp("", "download-dataset-config-*")
	if err != nil {
		return err
	}
	_, err = f.Write([]byte(content))
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()
	if err != nil {
		return err
	}
	return ParseConfigFromFile(f.Name())
}

// ParseConfigFromFile reads a YAML config file. Environment variables prefixed
// with DOWNLOAD_DATASET_ override keys of the file, e.g.
// DOWNLOAD_DATASET_PAGE_SIZE for page_size.
func ParseConfigFromFile(configPath string) error {
	cfg := &configuration{}
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return unmarshal(v, cfg)
}

// ParseConfigFromEnv reads only the environment overrides.
func ParseConfigFromEnv() error {
	cfg := &configuration{}
	return unmarshal(newViper(), cfg)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	v.SetDefault("endpoint", "")
	v.SetDefault("page_size", 0)
	v.SetDefault("config_name", "")
	return v
}

func unmarshal(v *viper.Viper, cfg *configuration) error {
	err := v.Unmarshal(cfg, func(c *mapstructure.DecoderConfig) {
		c.TagName = "json"
		c.WeaklyTypedInput = true
	})
	if err != nil {
		return err
	}
	config = cfg
	return nil
}
