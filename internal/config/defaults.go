package config

const (
	defaultCatalogPath       = "~/.local/share/djutil/catalog.db"
	defaultBackupDir         = "~/.local/share/djutil/backups"
	defaultLogDir            = "~/.local/share/djutil/logs"
	defaultFileThreshold     = 0.6
	defaultCatalogThreshold  = 0.75
	defaultAmbiguityWindow   = 0.05
	defaultConversionTimeout = 300
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogPath: defaultCatalogPath,
			BackupDir:   defaultBackupDir,
			LogDir:      defaultLogDir,
		},
		Matching: Matching{
			FileThreshold:    defaultFileThreshold,
			CatalogThreshold: defaultCatalogThreshold,
			AmbiguityWindow:  defaultAmbiguityWindow,
		},
		Conversion: Conversion{
			TimeoutSeconds: defaultConversionTimeout,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
