package domainfx

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/yurykabanov/logrot/internal/configfx"
	"github.com/yurykabanov/logrot/pkg/rotation"
)

const (
	ConfigPaths       = "paths"
	ConfigDefaults    = "defaults"
	ConfigSpecific    = "specific"
	ConfigSchedule    = "schedule"
	ConfigOutputQuiet = "output.quiet"
)

type SweepConfig struct {
	Paths    []string
	Schedule map[string]string
	Interval string
	Daemon   bool
	Quiet    bool
}

func SweepConfigProvider(v *viper.Viper) *SweepConfig {
	paths := append([]string{}, v.GetStringSlice(ConfigPaths)...)
	paths = append(paths, v.GetStringSlice(configfx.FlagPath)...)

	return &SweepConfig{
		Paths:    paths,
		Schedule: v.GetStringMapString(ConfigSchedule),
		Interval: v.GetString(configfx.FlagInterval),
		Daemon:   v.GetBool(configfx.FlagDaemon),
		Quiet:    v.GetBool(ConfigOutputQuiet),
	}
}

func LoadGlobalConfig(v *viper.Viper) (rotation.GlobalConfig, error) {
	var config rotation.GlobalConfig

	err := v.UnmarshalKey(ConfigDefaults, &config.Defaults)
	if err != nil {
		return config, errors.Wrap(err, "unable to load default rotation options")
	}

	err = v.UnmarshalKey(ConfigSpecific, &config.Specific)
	if err != nil {
		return config, errors.Wrap(err, "unable to load specific rotation options")
	}

	return config, nil
}

func Resolver(config rotation.GlobalConfig) (*rotation.Resolver, error) {
	return rotation.NewResolver(config)
}
