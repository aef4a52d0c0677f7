package cmd

import (
	"github.com/spf13/viper"

	"github.com/wagiedev/linebridge"
)

// Config keys.
const (
	keyInterpreter = "interpreter"
	keyLogging     = "logging"
	keyDir         = "dir"
)

// SetDefaults registers default values for every config key.
func SetDefaults() {
	viper.SetDefault(keyInterpreter, linebridge.DefaultInterpreter)
	viper.SetDefault(keyLogging, true)
	viper.SetDefault(keyDir, "")
}

// RunConfig is the resolved configuration of the run command.
type RunConfig struct {
	Interpreter string
	Logging     bool
	Dir         string
}

// LoadRunConfig reads the run configuration from viper (flags, environment,
// config file, defaults, in that order of precedence).
func LoadRunConfig() RunConfig {
	return RunConfig{
		Interpreter: viper.GetString(keyInterpreter),
		Logging:     viper.GetBool(keyLogging),
		Dir:         viper.GetString(keyDir),
	}
}
