package configfx

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
paths:
  - /var/log/app
log:
  level: debug
schedule:
  hourly: "0 5 * * * *"
`

func TestViperProvider_ConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logrot.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(testConfig), 0644))

	fs := NewFlagSet("logrot")
	require.NoError(t, fs.Parse([]string{"-c", file, "-i", "hourly", "-p", "/srv/log"}))

	logger, _ := test.NewNullLogger()

	v, err := ViperProvider(logger, fs)
	require.NoError(t, err)

	assert.Equal(t, []string{"/var/log/app"}, v.GetStringSlice("paths"))
	assert.Equal(t, []string{"/srv/log"}, v.GetStringSlice(FlagPath))
	assert.Equal(t, "hourly", v.GetString(FlagInterval))
	assert.False(t, v.GetBool(FlagDaemon))
	assert.Equal(t, "debug", v.GetString("log.level"))
	assert.Equal(t, "text", v.GetString("log.format"))
	assert.Equal(t, "0 5 * * * *", v.GetStringMapString("schedule")["hourly"])
	assert.Equal(t, 10*time.Second, v.GetDuration("server.timeout.read"))
}

func TestViperProvider_MissingConfigFile(t *testing.T) {
	fs := NewFlagSet("logrot")
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))

	logger, _ := test.NewNullLogger()

	_, err := ViperProvider(logger, fs)

	assert.Error(t, err)
}

func TestValidateFlags(t *testing.T) {
	logger, _ := test.NewNullLogger()

	cases := map[string]bool{
		"-d":          true,
		"-i hourly":   true,
		"-d -i daily": false,
	}

	for args, valid := range cases {
		fs := NewFlagSet("logrot")
		require.NoError(t, fs.Parse(strings.Fields(args)))

		v, err := ViperProvider(logger, fs)
		require.NoError(t, err)

		err = ValidateFlags(v)
		if valid {
			assert.NoError(t, err, args)
		} else {
			assert.Error(t, err, args)
		}
	}
}
