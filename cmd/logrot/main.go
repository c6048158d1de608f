package main

import (
	"time"

	"go.uber.org/fx"

	"github.com/yurykabanov/logrot/internal/configfx"
	"github.com/yurykabanov/logrot/internal/domainfx"
	"github.com/yurykabanov/logrot/internal/loggerfx"
	"github.com/yurykabanov/logrot/internal/metricsfx"
	"github.com/yurykabanov/logrot/internal/sqlfx"
)

func main() {
	logger := loggerfx.Logger()

	app := fx.New(
		fx.StartTimeout(15*time.Second),
		fx.StopTimeout(15*time.Second),

		fx.Logger(logger),

		loggerfx.Module,
		configfx.Module,
		sqlfx.Module,
		metricsfx.Module,
		domainfx.Module,
	)

	app.Run()
}
