package metricsfx

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrot/pkg/http/handler"
)

func SweepMetricHandler(
	logger *logrus.Logger,
	repository handler.SweepRepository,
) *handler.SweepMetricHandler {
	return handler.NewSweepMetricHandler(logger, repository)
}

func RegisterSweepMetricHandler(router *mux.Router, h *handler.SweepMetricHandler) {
	router.Handle("/metrics/sweeps", h).Methods("GET")
}
