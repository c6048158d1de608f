package sqlfx

import (
	"github.com/jmoiron/sqlx"

	"github.com/yurykabanov/logrot/pkg/domain"
	"github.com/yurykabanov/logrot/pkg/http/handler"
	"github.com/yurykabanov/logrot/pkg/storage"
)

func SweepsRepository(db *sqlx.DB) (
	domain.SweepRepository,
	handler.SweepRepository,
) {
	if db == nil {
		repo := storage.DiscardSweepRepository{}
		return repo, repo
	}

	repo := storage.NewSweepRepository(db)

	return repo, repo
}
