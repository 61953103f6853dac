package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/teranos/iconforge/errors"
	"github.com/teranos/iconforge/logger"
)

// BuildFunc observes each build made in watch mode
type BuildFunc func(*Result, error)

// Watch builds once, then rebuilds whenever an icon or sidecar in the source
// directory changes. Bursts of changes are debounced into one rebuild and
// rebuilds are rate limited. A failed rebuild is logged and watching goes
// on. Watch returns when ctx is cancelled.
func (p *Pipeline) Watch(ctx context.Context, onBuild BuildFunc) error {
	dir := p.cfg.SourceDir()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return errors.WithHint(
			errors.Wrapf(errors.ErrMissingInput, "cannot watch source directory %s: %v", dir, err),
			"create the source directory before starting watch mode")
	}

	debounce := time.Duration(p.cfg.Watch.DebounceMS) * time.Millisecond
	limiter := newLimiter(p.cfg.Watch.MaxRebuildsPerMinute)

	p.log.Infow("Watching source directory",
		logger.FieldDir, dir,
		"debounce_ms", p.cfg.Watch.DebounceMS,
		"max_rebuilds_per_minute", p.cfg.Watch.MaxRebuildsPerMinute)

	p.rebuild(ctx, limiter, onBuild)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			p.log.Infow("Stopped watching", logger.FieldDir, dir)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !p.relevant(event) {
				continue
			}
			p.log.Debugw("Source change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Stop()
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			p.rebuild(ctx, limiter, onBuild)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (p *Pipeline) rebuild(ctx context.Context, limiter *rate.Limiter, onBuild BuildFunc) {
	if err := limiter.Wait(ctx); err != nil {
		return
	}
	result, err := p.Build(ctx)
	if err != nil {
		p.log.Errorw("Rebuild failed",
			logger.FieldError, err,
			"hints", errors.FlattenHints(err))
	}
	if onBuild != nil {
		onBuild(result, err)
	}
}

// relevant reports whether event touches an icon or its sidecar
func (p *Pipeline) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if strings.HasSuffix(name, p.cfg.Synth.Extension) {
		return true
	}
	return p.cfg.Synth.Sidecars && strings.HasSuffix(name, ".json")
}

// newLimiter allows perMinute rebuilds a minute; 0 means unlimited
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)
}
