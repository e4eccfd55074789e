package constants

const (
	// DefaultDatasetName is the dataset downloaded when --dataset is omitted.
	DefaultDatasetName string = "emotion"
	DefaultDownloadDir string = "./"

	// DefaultConfigName is the dataset configuration whose splits are
	// enumerated and downloaded.
	DefaultConfigName string = "unsplit"

	// OutputFilename is the JSON lines file every split is written to,
	// regardless of the dataset name.
	OutputFilename string = "emotion.jsonl"
)

const (
	DatasetsServerEndpoint string = "https://datasets-server.huggingface.co"

	// DefaultRowsPageSize is also the largest page the rows API accepts.
	DefaultRowsPageSize int = 100
	MaxRowsPageSize     int = 100
)

const (
	EnvPrefix = "DOWNLOAD_DATASET"
)
