// Package modelstore manages the trained model artifact for serve mode: it
// loads the predictor from disk and, when watching is enabled, hot-reloads
// it whenever the artifact file changes.
package modelstore

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/molscreen/molscreen/internal/domain/qsar"
	"github.com/molscreen/molscreen/internal/infrastructure/logging"
	"github.com/molscreen/molscreen/internal/infrastructure/metrics"
	"github.com/molscreen/molscreen/pkg/errors"
)

// Store holds the currently loaded predictor.  Readers get the predictor
// lock-free; reloads swap the pointer atomically, so in-flight predictions
// keep the model they started with.
type Store struct {
	path    string
	logger  logging.Logger
	metrics *metrics.Metrics

	current atomic.Pointer[qsar.Predictor]

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a store for the artifact at path.  Nothing is loaded yet;
// call Load or Watch.  Metrics may be nil.
func New(path string, logger logging.Logger, m *metrics.Metrics) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Store{path: path, logger: logger, metrics: m}
}

// Path returns the artifact path the store reads from.
func (s *Store) Path() string {
	return s.path
}

// Predictor implements screening.PredictorProvider.
func (s *Store) Predictor() (*qsar.Predictor, error) {
	p := s.current.Load()
	if p == nil {
		return nil, errors.Newf(errors.CodeModelNotLoaded,
			"no trained solubility model available at %s; run `molscreen train` first", s.path)
	}
	return p, nil
}

// Load reads and validates the artifact, then swaps it in.  On error the
// previously loaded predictor, if any, stays active.
func (s *Store) Load() error {
	model, err := qsar.LoadModel(s.path)
	if err != nil {
		s.observeReload("error")
		return err
	}
	p, err := qsar.NewPredictor(model)
	if err != nil {
		s.observeReload("error")
		return err
	}
	s.current.Store(p)
	s.observeReload("ok")
	if s.metrics != nil {
		s.metrics.ModelLoaded.Set(1)
	}
	s.logger.Info("model loaded",
		logging.String("path", s.path),
		logging.Int("trees", len(model.Forest.Trees)),
		logging.Float64("test_r2", model.Metrics.TestR2),
	)
	return nil
}

// Watch starts watching the artifact's directory and reloads on changes to
// the artifact file.  The directory is watched rather than the file because
// Save replaces the file by rename, which drops a direct file watch.
func (s *Store) Watch() error {
	if s.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "create model watcher")
	}
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return errors.Wrap(err, errors.ErrCodeInternal, "watch model directory "+dir)
	}
	s.watcher = w
	s.done = make(chan struct{})
	go s.watchLoop()
	s.logger.Info("watching model artifact", logging.String("path", s.path))
	return nil
}

// Close stops the watcher, if any.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	<-s.done
	s.watcher = nil
	return err
}

func (s *Store) watchLoop() {
	defer close(s.done)
	target := filepath.Clean(s.path)
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Load(); err != nil {
				s.logger.Error("model reload failed, keeping previous model",
					logging.String("path", s.path),
					logging.Err(err),
				)
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("model watcher error", logging.Err(err))
		}
	}
}

func (s *Store) observeReload(status string) {
	if s.metrics != nil {
		s.metrics.ModelReloadsTotal.WithLabelValues(status).Inc()
	}
}
