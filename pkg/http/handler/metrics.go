package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrot/pkg/appcontext"
	"github.com/yurykabanov/logrot/pkg/domain"
)

type SweepRepository interface {
	FindLatestFinished(context.Context) ([]domain.Sweep, error)
}

type SweepMetricHandler struct {
	logger logrus.FieldLogger
	repo   SweepRepository
}

func NewSweepMetricHandler(logger logrus.FieldLogger, repo SweepRepository) *SweepMetricHandler {
	return &SweepMetricHandler{
		logger: logger,
		repo:   repo,
	}
}

type sweepMetricResponse struct {
	Interval       string `json:"interval"`
	Successful     bool   `json:"successful"`
	FilesChecked   int    `json:"files_checked"`
	FilesRotated   int    `json:"files_rotated"`
	FilesFailed    int    `json:"files_failed"`
	CompressorJobs int    `json:"compressor_jobs"`
	StartedAt      int64  `json:"started_at_mtime"`
	Duration       int64  `json:"duration_mtime"`
}

func (h *SweepMetricHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	logger := appcontext.LoggerFromContext(h.logger, ctx)

	sweeps, err := h.repo.FindLatestFinished(ctx)
	if err != nil {
		logger.WithError(err).Error("Unable to query latest sweeps")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	result := make([]sweepMetricResponse, 0, len(sweeps))

	for _, s := range sweeps {
		m := sweepMetricResponse{
			Interval:       s.Interval,
			Successful:     s.ExecStatus == domain.ExecStatusSuccess,
			FilesChecked:   s.FilesChecked,
			FilesRotated:   s.FilesRotated,
			FilesFailed:    s.FilesFailed,
			CompressorJobs: s.CompressorJobs,
			StartedAt:      s.StartedAt.UnixNano() / 1e6,
		}

		if s.FinishedAt != nil {
			m.Duration = s.FinishedAt.Sub(s.StartedAt).Nanoseconds() / 1e6
		}

		result = append(result, m)
	}

	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	err = enc.Encode(result)
	if err != nil {
		logger.WithError(err).Error("Unable to encode response")
	}
}
