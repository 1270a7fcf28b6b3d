package main

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/exam-schedule/internal/config"
	"github.com/rhyrak/exam-schedule/internal/csvio"
	"github.com/rhyrak/exam-schedule/internal/scheduler"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

// StatusPending marks a job whose solve goroutine has not finished yet. All
// other job statuses are the engine's terminal ones.
const StatusPending = "PENDING"

type job struct {
	ID        string
	Status    string
	Err       string
	Conflicts int
	Created   time.Time
}

type server struct {
	cfg     *config.Config
	log     *zap.Logger
	engine  *scheduler.Engine
	dataDir string

	mu   sync.Mutex
	jobs map[string]*job
}

func newServer(cfg *config.Config, log *zap.Logger) (*server, error) {
	dataDir := "db"
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &server{
		cfg:     cfg,
		log:     log,
		engine:  scheduler.NewEngine(cfg.Solver, log),
		dataDir: dataDir,
		jobs:    map[string]*job{},
	}, nil
}

func (s *server) jobDir(id string) string {
	return filepath.Join(s.dataDir, id)
}

// runJob solves one uploaded table set in the background and exports the
// result tables into the job's directory.
func (s *server) runJob(id string, paths csvio.Paths) {
	finish := func(status, errMsg string, conflicts int) {
		s.mu.Lock()
		if j, ok := s.jobs[id]; ok {
			j.Status = status
			j.Err = errMsg
			j.Conflicts = conflicts
		}
		s.mu.Unlock()
	}

	input, err := csvio.LoadInput(paths, s.cfg.Input.Delimiter)
	if err != nil {
		s.log.Warn("job input rejected", zap.String("job", id), zap.Error(err))
		finish(model.StatusError, err.Error(), 0)
		return
	}

	res := s.engine.Solve(input)
	if res.Status == model.StatusInfeasible || res.Status == model.StatusError {
		finish(res.Status, res.Err, 0)
		return
	}

	dir := s.jobDir(id)
	delim := s.cfg.Input.Delimiter
	if err := csvio.ExportSchedule(res.Records, filepath.Join(dir, "schedule.csv"), delim); err != nil {
		finish(model.StatusError, err.Error(), 0)
		return
	}
	if err := csvio.ExportStudentSchedule(res.StudentRecords, filepath.Join(dir, "students.csv"), delim); err != nil {
		finish(model.StatusError, err.Error(), 0)
		return
	}
	if err := csvio.ExportViolations(res.Violations, filepath.Join(dir, "violations.csv"), delim); err != nil {
		finish(model.StatusError, err.Error(), 0)
		return
	}
	finish(res.Status, "", len(res.Violations))
	s.log.Info("job finished",
		zap.String("job", id),
		zap.String("status", res.Status),
		zap.Duration("elapsed", res.Stats.Elapsed),
	)
}
