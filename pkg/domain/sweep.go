package domain

import "time"

type execStatus int

const (
	// Sweep is created, directories are being processed
	ExecStatusStarted execStatus = iota + 1

	// Every configured directory was listed and compressors were run
	ExecStatusSuccess

	// At least one directory could not be listed or a file failed to rotate
	ExecStatusFailure
)

type Sweep struct {
	Id int64 `db:"id"`

	// interval label the sweep was triggered with (e.g. 'hourly')
	Interval string `db:"interval"`

	ExecStatus execStatus `db:"exec_status"`

	FilesChecked   int `db:"files_checked"`
	FilesRotated   int `db:"files_rotated"`
	FilesFailed    int `db:"files_failed"`
	CompressorJobs int `db:"compressor_jobs"`

	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
}
