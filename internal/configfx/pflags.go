package configfx

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FlagConfig   = "config"
	FlagInterval = "interval"
	FlagDaemon   = "daemon"
	FlagPath     = "path"
)

func PFlags() (*pflag.FlagSet, error) {
	fs := NewFlagSet(os.Args[0])

	err := fs.Parse(os.Args[1:])
	if err != nil {
		return nil, err
	}

	return fs, nil
}

func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)

	fs.StringP(FlagConfig, "c", "", "Config file")
	fs.StringP(FlagInterval, "i", "", "Interval label of a one-shot sweep (e.g. 'hourly')")
	fs.BoolP(FlagDaemon, "d", false, "Run sweeps by schedule instead of a single sweep")
	fs.StringSliceP(FlagPath, "p", nil, "Directory to sweep in addition to configured paths")

	return fs
}

// ValidateFlags rejects flag combinations that cannot be served: a daemon
// takes its intervals from the schedule, not from the command line.
func ValidateFlags(v *viper.Viper) error {
	if v.GetBool(FlagDaemon) && v.GetString(FlagInterval) != "" {
		return errors.Errorf("--%s cannot be combined with --%s", FlagInterval, FlagDaemon)
	}

	return nil
}
