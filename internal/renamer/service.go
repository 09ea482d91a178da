package renamer

import (
	"database/sql"
	"fmt"
)

// Service is the orchestration layer the CLI calls through. It plans runs,
// executes them and records each execution in the run history.
type Service struct {
	fsmgr   FilesystemManager
	history History
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(fsmgr FilesystemManager, history History, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		fsmgr:   fsmgr,
		history: history,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// Plan computes the renames a run over root would make without applying them.
func (s *Service) Plan(root *Path, pipeline *Pipeline) (*Plan, error) {
	s.logger.Debug("planning", "root", root.String(), "rules", pipeline.Enabled())
	return NewPlanner(s.fsmgr, pipeline, s.logger).Plan(root)
}

// Run plans and executes a rename run over root and records it.
// The returned Run is populated even when the run fails.
func (s *Service) Run(root *Path, platform string, pipeline *Pipeline) (*Run, error) {
	run := &Run{
		ID:        s.idgen.New(),
		Root:      root.String(),
		Platform:  platform,
		StartedAt: s.clock.Now(),
		Status:    StatusRunning,
	}
	if err := s.history.CreateRun(run); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	s.logger.Info("run started", "run", run.ID, "root", run.Root, "platform", platform, "rules", pipeline.Enabled())

	applied, runErr := s.execute(root, pipeline)

	run.Renames = applied
	run.Status = StatusSuccess
	if runErr != nil {
		run.Status = StatusError
	}
	finished := s.clock.Now()
	run.FinishedAt = sql.NullTime{Time: finished, Valid: true}

	if err := s.history.FinishRun(run.ID, run.Status, run.Renames, finished); err != nil {
		if runErr == nil {
			return run, fmt.Errorf("finishing run: %w", err)
		}
		s.logger.Error("finishing run", "run", run.ID, "error", err)
	}

	if runErr != nil {
		s.logger.Error("run failed", "run", run.ID, "error", runErr)
		return run, runErr
	}
	s.logger.Info("run finished", "run", run.ID, "renames", applied)
	return run, nil
}

func (s *Service) execute(root *Path, pipeline *Pipeline) (int, error) {
	plan, err := s.Plan(root, pipeline)
	if err != nil {
		return 0, fmt.Errorf("planning: %w", err)
	}
	return NewExecutor(s.fsmgr, s.logger).Apply(plan)
}

// History returns the most recent runs, newest first.
func (s *Service) History(limit int) ([]*Run, error) {
	runs, err := s.history.ListRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}
