// Package rspinner renders an animated progress indicator on a terminal and
// replaces it with a final info, success, warning or error line.
//
//	sp := rspinner.New(rspinner.WithMessage("Fetching index"))
//	defer sp.Close()
//
//	// doing some work
//
//	if err := sp.Success("Index fetched"); err != nil {
//		// handle the error
//	}
package rspinner

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"k8s.io/apimachinery/pkg/util/duration"
)

type stopMode int

const (
	// render the requested terminal status
	stopRender stopMode = iota
	// keep the last frame visible on its own line
	stopFinish
	// exit without rendering, a new animation takes over the line
	stopSilent
)

// control is sent to the animation task to end it. Each task receives at most one.
type control struct {
	at      time.Time
	status  Status
	message string
	mode    stopMode
}

// Spinner owns a single background animation task and the message it shows.
// All methods are safe for concurrent use.
type Spinner struct {
	mu      sync.Mutex
	cfg     config
	w       *Writer
	message string
	task    *task
}

// New returns a new Spinner. Unless WithoutAutoStart is given the animation
// starts right away.
//
// Callers should always Close the spinner. A spinner dropped while animating
// is stopped by a finalizer, but the runtime does not promise when.
func New(opts ...Option) *Spinner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Spinner{
		cfg:     cfg,
		w:       cfg.writer(),
		message: cfg.message,
	}
	if cfg.autoStart {
		s.spawn()
	}

	// The task never references s, so an abandoned spinner stays collectable.
	runtime.SetFinalizer(s, (*Spinner).finalize)
	return s
}

// Start (re)starts the animation. A running animation is stopped without
// printing a final line and replaced. When message is given it becomes the
// stored message, even if empty.
//
// If the previous animation already died from a failed write, that error is
// returned, but the new animation is started anyway.
func (s *Spinner) Start(message ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, ok := explicit(message); ok {
		s.message = msg
	}

	err := s.halt(control{mode: stopSilent})
	s.spawn()
	return errors.Wrap(err, "while restarting spinner")
}

// Info stops the animation with an info line.
func (s *Spinner) Info(message ...string) error {
	return s.Stop(Info, message...)
}

// Success stops the animation with a success line.
func (s *Spinner) Success(message ...string) error {
	return s.Stop(Success, message...)
}

// Warning stops the animation with a warning line.
func (s *Spinner) Warning(message ...string) error {
	return s.Stop(Warning, message...)
}

// Error stops the animation with an error line.
func (s *Spinner) Error(message ...string) error {
	return s.Stop(Error, message...)
}

// Stop ends the animation and prints exactly one line with a given terminal
// status. Without message the stored message is used. It returns once the
// line is written and the animation task has exited. An idle spinner prints
// the line directly. An explicit empty message is printed as is.
func (s *Spinner) Stop(status Status, message ...string) error {
	if !status.Terminal() {
		return errors.Errorf("cannot stop spinner with non-terminal status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := explicit(message)
	if !ok {
		msg = s.message
	}

	if s.task == nil {
		return errors.Wrapf(s.w.Write("", msg, status), "while printing %s line", status)
	}

	err := s.halt(control{status: status, message: msg, mode: stopRender})
	return errors.Wrapf(err, "while stopping spinner with %s line", status)
}

// Close stops a running animation and joins its task. The last frame is left
// on its own line. Closing an idle spinner is a no-op.
func (s *Spinner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Wrap(s.halt(control{mode: stopFinish}), "while closing spinner")
}

// Active returns whether the animation task is running.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.task == nil {
		return false
	}
	select {
	case <-s.task.done:
		return false
	default:
		return true
	}
}

// Message returns the stored message.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.message
}

func (s *Spinner) finalize() {
	if err := s.Close(); err != nil {
		s.cfg.log.WithError(err).Error("Tearing down abandoned spinner failed")
	}
}

// spawn must be called with s.mu held and no task running.
func (s *Spinner) spawn() {
	t := &task{
		ctrl:     make(chan control, 1),
		done:     make(chan struct{}),
		pool:     pool.New().WithErrors(),
		w:        s.w,
		frames:   s.cfg.frames,
		interval: s.cfg.interval,
		message:  s.message,
		elapsed:  s.cfg.elapsed,
		started:  time.Now(),
		log:      s.cfg.log.WithField("message", s.message),
	}
	t.log.Debug("Starting spinner animation")
	t.pool.Go(t.run)
	s.task = t
}

// halt must be called with s.mu held. It sends c to the running task, if
// any, and waits until the task exits.
func (s *Spinner) halt(c control) error {
	t := s.task
	if t == nil {
		return nil
	}
	s.task = nil

	c.at = time.Now()
	// Buffered for exactly one message, never blocks even if the task already died.
	t.ctrl <- c
	err := t.pool.Wait()
	t.log.WithField("status", c.status.String()).Debug("Spinner animation stopped")
	return err
}

type task struct {
	ctrl chan control
	done chan struct{}
	pool *pool.ErrorPool

	w        *Writer
	frames   []string
	interval time.Duration
	message  string
	elapsed  bool
	started  time.Time
	log      logrus.FieldLogger
}

func (t *task) run() error {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	frame := t.frames[0]
	for i := 0; ; i = (i + 1) % len(t.frames) {
		select {
		case c := <-t.ctrl:
			return t.stop(c, frame)
		default:
		}

		frame = t.frames[i]
		if err := t.w.Write(frame, t.message, Loading); err != nil {
			t.log.WithError(err).Error("Rendering spinner frame failed, stopping animation")
			return err
		}

		select {
		case c := <-t.ctrl:
			return t.stop(c, frame)
		case <-ticker.C:
		}
	}
}

func (t *task) stop(c control, frame string) error {
	switch c.mode {
	case stopSilent:
		return nil
	case stopFinish:
		return t.w.Finish(frame, t.message)
	}

	msg := c.message
	if t.elapsed {
		msg = fmt.Sprintf("%s [took %s]", msg, duration.HumanDuration(c.at.Sub(t.started)))
	}
	return t.w.Write(frame, msg, c.status)
}

// explicit returns the first message, if one was passed.
func explicit(message []string) (string, bool) {
	if len(message) == 0 {
		return "", false
	}
	return message[0], true
}
