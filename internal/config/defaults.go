package config

const (
	defaultConfigPath     = "~/.config/loadmaster/config.toml"
	defaultDataDir        = "~/.local/share/loadmaster"
	defaultLogDir         = "~/.local/share/loadmaster/logs"
	defaultOutputDir      = "~/loadmaster/manifests"
	defaultPreviewBind    = "127.0.0.1:7488"
	defaultAircraft       = "C-130"
	defaultParachute      = "T-11"
	defaultChalk          = "101"
	defaultDoor           = "Left"
	defaultRowsPerPage    = 48
	defaultRenderFormat   = "text"
	defaultWaveNumber     = "1"
	defaultExportTimeout  = 30
	defaultExportWorkers  = 4
	defaultPublishDriver  = "fs"
	defaultS3Region       = "us-east-1"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	exportEndpointEnvVar  = "LOADMASTER_EXPORT_ENDPOINT"
	publishS3BucketEnvVar = "LOADMASTER_S3_BUCKET"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
			OutputDir:   defaultOutputDir,
			PreviewBind: defaultPreviewBind,
		},
		Mission: Mission{
			Aircraft:  defaultAircraft,
			Parachute: defaultParachute,
			Chalk:     defaultChalk,
			Pass:      1,
			Door:      defaultDoor,
		},
		Render: Render{
			RowsPerPage:   defaultRowsPerPage,
			DefaultFormat: defaultRenderFormat,
		},
		Export: Export{
			WaveNumber:     defaultWaveNumber,
			RequestTimeout: defaultExportTimeout,
			Concurrency:    defaultExportWorkers,
		},
		Publish: Publish{
			Driver: defaultPublishDriver,
			S3: S3{
				Region: defaultS3Region,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
