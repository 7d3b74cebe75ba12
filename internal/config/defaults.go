package config

const (
	defaultStagingDir     = "~/.local/share/subvoice/staging"
	defaultLogDir         = "~/.local/share/subvoice/logs"
	defaultRateWPM        = 200
	defaultSampleRate     = 48000
	defaultChannels       = 2
	defaultBitrate        = "192k"
	defaultMinClipBytes   = 2048
	defaultMinClipMillis  = 50
	defaultTrailingMillis = 500
	defaultOutputSuffix   = "_tts_audio"
	defaultNotifyTimeout  = 10
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Speech: Speech{
			RateWPM: defaultRateWPM,
		},
		Audio: Audio{
			SampleRate:            defaultSampleRate,
			Channels:              defaultChannels,
			Bitrate:               defaultBitrate,
			MinClipBytes:          defaultMinClipBytes,
			MinClipMillis:         defaultMinClipMillis,
			TrailingSilenceMillis: defaultTrailingMillis,
		},
		Output: Output{
			Suffix: defaultOutputSuffix,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
