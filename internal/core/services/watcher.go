package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driving"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Ensure FormWatcher implements the interface.
var _ driving.FormWatcher = (*FormWatcher)(nil)

// DefaultDebounce is the quiet period after a change before a form is reloaded.
const DefaultDebounce = 500 * time.Millisecond

// FormWatcher answers a form file again whenever it changes.
// Questions answered earlier in the session are not asked twice.
type FormWatcher struct {
	answers  driving.AnswerService
	source   driven.FormSource
	debounce time.Duration
}

// NewFormWatcher creates a watcher that reloads forms through source.
// A non-positive debounce uses DefaultDebounce.
func NewFormWatcher(answers driving.AnswerService, source driven.FormSource, debounce time.Duration) *FormWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FormWatcher{
		answers:  answers,
		source:   source,
		debounce: debounce,
	}
}

// Watch answers the form once, then again after every write.
// The parent directory is watched so editors that replace the file on save
// are still seen. Returns nil when ctx is cancelled.
func (w *FormWatcher) Watch(ctx context.Context, path string, opts driving.AnswerOptions) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	if opts.Processed == nil {
		opts.Processed = make(map[string]bool)
	}

	if err := w.pass(ctx, absPath, opts); err != nil {
		return cancelled(err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	logger.Info("Watching %s for new questions", absPath)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("Change detected: %s", event)
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			if err := w.pass(ctx, absPath, opts); err != nil {
				return cancelled(err)
			}
		}
	}
}

// pass reloads the form and answers any new questions.
// A form that fails to load is logged and retried on the next change,
// since editors often write files in several steps.
func (w *FormWatcher) pass(ctx context.Context, path string, opts driving.AnswerOptions) error {
	form, err := w.source.Load(ctx, path)
	if err != nil {
		logger.Warn("Reload %s: %v", path, err)
		return ctx.Err()
	}

	run, err := w.answers.AnswerForm(ctx, form, opts)
	if err != nil {
		return err
	}
	if len(run.Outcomes) > 0 {
		logger.Info("Answered %d new question(s) in %s", len(run.Outcomes), form.ID)
	}
	return nil
}

// cancelled maps context cancellation to a clean stop.
func cancelled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
