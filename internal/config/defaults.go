package config

const (
	defaultStashURL               = "http://localhost:9999/graphql"
	defaultStashEndpoint          = "https://stashdb.org/graphql"
	defaultRequestTimeout         = 15
	defaultDuplicateSuffix        = " ($index$)"
	defaultStateDir               = "~/.local/share/reshelf"
	defaultLogDir                 = "~/.local/share/reshelf/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultMaxDuplicateIterations = 1000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Stash: Stash{
			URL:             defaultStashURL,
			DefaultEndpoint: defaultStashEndpoint,
			RequestTimeout:  defaultRequestTimeout,
		},
		Templates: Templates{
			DuplicateSuffix: defaultDuplicateSuffix,
		},
		Rename: Rename{
			RenameRelatedFiles:     true,
			CollapseSpaces:         true,
			NormalizeUnicode:       true,
			MaxDuplicateIterations: defaultMaxDuplicateIterations,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
