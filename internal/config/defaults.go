package config

const (
	defaultConfigPath         = "~/.config/swingmatch/config.toml"
	projectConfigName         = "swingmatch.toml"
	historyDatabaseName       = "history.db"
	defaultDataDir            = "~/.local/share/swingmatch"
	defaultLogDir             = "~/.local/share/swingmatch/logs"
	defaultReferenceDir       = "~/.local/share/swingmatch/references"
	defaultKeypointDir        = "~/.local/share/swingmatch/keypoints"
	defaultFrameCount         = 316
	defaultExtractorCommand   = "swingmatch-pose"
	defaultExtractorTimeout   = 600
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogRetentionDays   = 30
	envExtractorCommand       = "SWINGMATCH_EXTRACTOR"
	envLogLevel               = "SWINGMATCH_LOG_LEVEL"
	defaultSwingPlaneLimit    = 0.15
	defaultPositionLimit      = 0.03
	defaultFollowThroughLimit = 0.05
	defaultTempoLimit         = 0.02
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			ReferenceDir: defaultReferenceDir,
			KeypointDir:  defaultKeypointDir,
		},
		Comparison: Comparison{
			FrameCount: defaultFrameCount,
			Thresholds: Thresholds{
				SwingPlane:    defaultSwingPlaneLimit,
				Head:          defaultPositionLimit,
				FrontFoot:     defaultPositionLimit,
				BackFoot:      defaultPositionLimit,
				FollowThrough: defaultFollowThroughLimit,
				Tempo:         defaultTempoLimit,
			},
		},
		Extractor: Extractor{
			Command:        defaultExtractorCommand,
			TimeoutSeconds: defaultExtractorTimeout,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
