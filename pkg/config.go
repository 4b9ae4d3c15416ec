package mbevts

type Configuration struct {
	FileIn           string `json:"file_in"`
	FileOut          string `json:"file_out"`
	Verbosity        int    `json:"verbosity"`
	RunNumber        uint32 `json:"run_number"`
	MaxWindows       int    `json:"max_windows"`
	Skip             int    `json:"skip"`
	ResetTimestamps  bool   `json:"reset_timestamps"`
	WriteData        bool   `json:"write_data"`
	CompressionLevel int    `json:"compression_level"`
	ChunkSize        int    `json:"chunk_size"`
	BufferSize       int    `json:"buffer_size"`
	UseCatalog       bool   `json:"use_catalog"`
	CatalogDriver    string `json:"catalog_driver"`
	CatalogDSN       string `json:"catalog_dsn"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	MetricsAddr      string `json:"metrics_addr"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// DefaultConfiguration returns the values used when a key is missing from the configuration file.
func DefaultConfiguration() Configuration {
	return Configuration{
		Verbosity:        0,
		MaxWindows:       1000000000,
		Skip:             0,
		ResetTimestamps:  false,
		WriteData:        true,
		CompressionLevel: 4,
		ChunkSize:        32768,
		BufferSize:       100,
		UseCatalog:       false,
		CatalogDriver:    "mysql",
		Host:             "localhost",
		User:             "miniball",
		Passwd:           "readonly",
		DBName:           "MINIBALL",
	}
}
