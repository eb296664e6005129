package config

const (
	defaultConfigPath            = "~/.config/sublint/config.toml"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultProbeWidth            = 64
	defaultVideoTimeoutSeconds   = 30
	defaultSnapMaxDistance       = 2
	defaultSnapMinRGBDelta       = 25
	defaultSnapSampleWidth       = 4
	defaultSnapSampleHeight      = 3
	defaultDictionaryDir         = "/usr/share/hunspell"
	defaultGrammarBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultGrammarModel          = "google/gemini-3-flash-preview"
	defaultGrammarReferer        = "https://github.com/sublint/sublint"
	defaultGrammarTitle          = "sublint grammar check"
	defaultGrammarTimeoutSeconds = 30
	defaultFCListBinary          = "fc-list"
	defaultFontCacheTTLHours     = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir(),
		},
		Video: Video{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			ProbeWidth:     defaultProbeWidth,
			TimeoutSeconds: defaultVideoTimeoutSeconds,
		},
		Snap: Snap{
			MaxDistance:  defaultSnapMaxDistance,
			MinRGBDelta:  defaultSnapMinRGBDelta,
			SampleWidth:  defaultSnapSampleWidth,
			SampleHeight: defaultSnapSampleHeight,
			PersistCache: true,
		},
		Spelling: Spelling{
			DictionaryDir: defaultDictionaryDir,
		},
		Grammar: Grammar{
			BaseURL:        defaultGrammarBaseURL,
			Model:          defaultGrammarModel,
			Referer:        defaultGrammarReferer,
			Title:          defaultGrammarTitle,
			TimeoutSeconds: defaultGrammarTimeoutSeconds,
		},
		Fonts: Fonts{
			FCListBinary:  defaultFCListBinary,
			CacheTTLHours: defaultFontCacheTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
