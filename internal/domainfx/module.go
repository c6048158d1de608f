package domainfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(SweepConfigProvider),
	fx.Provide(LoadGlobalConfig),
	fx.Provide(Resolver),
	fx.Provide(ProgressWriterProvider),
	fx.Provide(NewCron),
	fx.Provide(CommandRunner),
	fx.Provide(Rotator),
	fx.Provide(Walker),
	fx.Provide(CompressorRunner),
	fx.Provide(SweepService),
	fx.Provide(SweepManager),
	fx.Invoke(RunSweeps),
)
