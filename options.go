package rspinner

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

const (
	// DefaultMessage is shown when no message is supplied at construction.
	DefaultMessage = "Loading..."
	// DefaultInterval is the time between two animation frames.
	DefaultInterval = 80 * time.Millisecond
)

// Frames is the default braille animation sequence.
var Frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type config struct {
	message   string
	stream    Stream
	out       io.Writer
	color     *bool
	interval  time.Duration
	frames    []string
	autoStart bool
	elapsed   bool
	log       logrus.FieldLogger
}

func defaultConfig() config {
	logger, _ := logtest.NewNullLogger()
	return config{
		message:   DefaultMessage,
		stream:    Stderr,
		interval:  DefaultInterval,
		frames:    Frames,
		autoStart: true,
		log:       logger,
	}
}

func (c config) writer() *Writer {
	var w *Writer
	if c.out != nil {
		w = NewWriterTo(c.out)
	} else {
		w = NewWriter(c.stream)
	}
	if c.color != nil {
		w.SetColor(*c.color)
	}
	return w
}

// Option allows Spinner customization.
type Option func(*config)

// WithMessage sets the initial message. Empty messages are ignored.
func WithMessage(msg string) Option {
	return func(c *config) {
		if msg != "" {
			c.message = msg
		}
	}
}

// WithStream selects the OS stream the spinner renders to.
func WithStream(s Stream) Option {
	return func(c *config) {
		c.stream = s
	}
}

// WithWriter renders to w instead of an OS stream.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

// WithColor forces colored output on or off regardless of terminal detection.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = &enabled
	}
}

// WithInterval sets the frame period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithFrames replaces the animation sequence. Empty sequences are ignored.
func WithFrames(frames []string) Option {
	return func(c *config) {
		if len(frames) > 0 {
			c.frames = frames
		}
	}
}

// WithoutAutoStart keeps a new spinner idle until Start is called.
func WithoutAutoStart() Option {
	return func(c *config) {
		c.autoStart = false
	}
}

// WithElapsed appends the animation duration to terminal lines.
func WithElapsed() Option {
	return func(c *config) {
		c.elapsed = true
	}
}

// WithLogger sets the logger used for task lifecycle and failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
