package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yurykabanov/logrot/pkg/domain"
)

// region sweepRepositoryMock
type sweepRepositoryMock struct {
	mock.Mock
}

func (m *sweepRepositoryMock) FindLatestFinished(ctx context.Context) ([]domain.Sweep, error) {
	args := m.Called(ctx)

	if s := args.Get(0); s != nil {
		return s.([]domain.Sweep), args.Error(1)
	}

	return nil, args.Error(1)
}

// endregion

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = ioutil.Discard

	return logger
}

func TestSweepMetricHandler(t *testing.T) {
	startedAt := time.Date(2019, time.January, 10, 21, 30, 0, 0, time.UTC)
	finishedAt := startedAt.Add(1500 * time.Millisecond)

	repo := &sweepRepositoryMock{}
	repo.On("FindLatestFinished", mock.Anything).Return([]domain.Sweep{
		{
			Id:             1,
			Interval:       "hourly",
			ExecStatus:     domain.ExecStatusSuccess,
			FilesChecked:   10,
			FilesRotated:   4,
			CompressorJobs: 3,
			StartedAt:      startedAt,
			FinishedAt:     &finishedAt,
		},
	}, nil)

	h := NewSweepMetricHandler(discardLogger(), repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/sweeps", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)

	assert.Equal(t, "hourly", body[0]["interval"])
	assert.Equal(t, true, body[0]["successful"])
	assert.Equal(t, float64(4), body[0]["files_rotated"])
	assert.Equal(t, float64(startedAt.UnixNano()/1e6), body[0]["started_at_mtime"])
	assert.Equal(t, float64(1500), body[0]["duration_mtime"])
}

func TestSweepMetricHandler_Empty(t *testing.T) {
	repo := &sweepRepositoryMock{}
	repo.On("FindLatestFinished", mock.Anything).Return(nil, nil)

	rec := httptest.NewRecorder()
	NewSweepMetricHandler(discardLogger(), repo).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/sweeps", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestSweepMetricHandler_RepositoryError(t *testing.T) {
	repo := &sweepRepositoryMock{}
	repo.On("FindLatestFinished", mock.Anything).Return(nil, errors.New("database is locked"))

	rec := httptest.NewRecorder()
	NewSweepMetricHandler(discardLogger(), repo).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/sweeps", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
