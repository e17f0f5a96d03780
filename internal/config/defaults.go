package config

const (
	defaultDataDir   = "~/.local/share/partsplit"
	defaultLogDir    = "~/.local/share/partsplit/logs"
	defaultExportDir = "~/.local/share/partsplit/plans"

	defaultSimilarityThreshold = 0.75

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultLLMModel             = "gpt-4o-mini"
	defaultLLMTimeoutSeconds    = 30
	defaultLLMRequestsPerMinute = 30
	defaultLLMMinConfidence     = 0.8
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Matching: Matching{
			SimilarityThreshold: defaultSimilarityThreshold,
			CarryForwardLabels:  true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		LLM: LLM{
			Model:             defaultLLMModel,
			TimeoutSeconds:    defaultLLMTimeoutSeconds,
			RequestsPerMinute: defaultLLMRequestsPerMinute,
			MinConfidence:     defaultLLMMinConfidence,
		},
	}
}
