package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"vcr-go/internal/config"
	"vcr-go/internal/fs"
	"vcr-go/internal/history"
	"vcr-go/internal/renamer"
)

// Options control the ambient behavior of a VCRApp.
type Options struct {
	// Console receives a copy of every log line. Nil means the log file only.
	Console io.Writer
	// Verbose lowers the log level to debug, which includes planning decisions.
	Verbose bool
}

// VCRApp is the application layer between the CLI and renamer.Service.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and closes the history store on Close.
type VCRApp struct {
	cfg     *config.Config
	fsmgr   renamer.FilesystemManager
	history renamer.History
	service *renamer.Service
	runID   string
	logFile *os.File
}

// NewVCRApp creates a fully wired VCRApp from the given config.
// The caller must call Close when done.
func NewVCRApp(cfg *config.Config, opts Options) (*VCRApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Ignore)

	h, err := history.NewHistoryFromConfig(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	runID := renamer.UUIDGenerator{}.New()
	logger, logFile, err := newLogger(cfg.LogDir, runID, level, opts.Console)
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := renamer.NewService(fsmgr, h, &slogAdapter{l: logger}, renamer.RealClock{}, presetID(runID))

	return &VCRApp{
		cfg:     cfg,
		fsmgr:   fsmgr,
		history: h,
		service: svc,
		runID:   runID,
		logFile: logFile,
	}, nil
}

// presetID hands out the ID the app's log lines already carry.
type presetID string

func (p presetID) New() string { return string(p) }

// RunID returns the ID used for this invocation's log lines and run record.
func (a *VCRApp) RunID() string { return a.runID }

func (a *VCRApp) prepare(req *Request) (*renamer.Path, *renamer.Pipeline, error) {
	pipeline, err := req.Pipeline(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	root, err := a.fsmgr.Resolve(req.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving path: %w", err)
	}
	return root, pipeline, nil
}

// Plan returns the renames req would make without applying them.
func (a *VCRApp) Plan(req *Request) (*renamer.Plan, error) {
	root, pipeline, err := a.prepare(req)
	if err != nil {
		return nil, err
	}
	return a.service.Plan(root, pipeline)
}

// Run renames the course tree described by req and records the run.
func (a *VCRApp) Run(req *Request) (*renamer.Run, error) {
	root, pipeline, err := a.prepare(req)
	if err != nil {
		return nil, err
	}
	return a.service.Run(root, req.Platform, pipeline)
}

// History returns the most recent runs.
func (a *VCRApp) History(limit int) ([]*renamer.Run, error) {
	return a.service.History(limit)
}

// Close closes the history store and the log file.
func (a *VCRApp) Close() error {
	var firstErr error
	if err := a.history.Close(); err != nil {
		firstErr = fmt.Errorf("closing history: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}
