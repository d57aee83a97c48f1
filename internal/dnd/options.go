package dnd

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultIndentationWidth is the number of pixels (or cells) per nesting level
const DefaultIndentationWidth = 50

// Options configures the behaviour of a Controller.
type Options struct {
	// IndentationWidth is the horizontal distance that makes one nesting
	// level. Must be positive.
	IndentationWidth int

	// Collapsible allows items with children to show/hide them.
	Collapsible bool

	// Removable allows items to be removed.
	Removable bool

	// Indicator asks the renderer to draw an insertion line instead of a
	// ghost of the dragged item.
	Indicator bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		IndentationWidth: DefaultIndentationWidth,
	}
}

// Option customises a Controller at construction time.
type Option func(*Controller)

// WithLogger makes the controller log session transitions to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithAnnouncer sets the receiver of accessibility announcements.
func WithAnnouncer(a Announcer) Option {
	return func(c *Controller) {
		if a != nil {
			c.announcer = a
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
