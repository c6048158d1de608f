package sqlfx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurykabanov/logrot/pkg/domain"
	"github.com/yurykabanov/logrot/pkg/storage"
)

func TestOpenSqliteDatabase_Disabled(t *testing.T) {
	logger, _ := test.NewNullLogger()

	db, err := OpenSqliteDatabase(&SqliteConfig{}, logger)

	require.NoError(t, err)
	assert.Nil(t, db)

	repo, _ := SweepsRepository(db)
	assert.IsType(t, storage.DiscardSweepRepository{}, repo)
}

func TestOpenSqliteDatabase_Migrates(t *testing.T) {
	logger, _ := test.NewNullLogger()

	db, err := OpenSqliteDatabase(&SqliteConfig{
		DSN:            filepath.Join(t.TempDir(), "logrot.db"),
		DatabaseName:   "logrot",
		MigrationsPath: "file://../../migrations/",
	}, logger)
	require.NoError(t, err)
	defer db.Close()

	repo, metricsRepo := SweepsRepository(db)

	finishedAt := time.Now()
	_, err = repo.Create(context.Background(), domain.Sweep{
		Interval:   "daily",
		ExecStatus: domain.ExecStatusSuccess,
		StartedAt:  finishedAt.Add(-time.Second),
		FinishedAt: &finishedAt,
	})
	require.NoError(t, err)

	latest, err := metricsRepo.FindLatestFinished(context.Background())
	require.NoError(t, err)
	assert.Len(t, latest, 1)
}
