package musiccoder

import (
	"io"
	"os"

	"github.com/cbegin/musiccoder-go/internal/executor"
)

// DefaultTapeSize is the tape length a fresh Interpreter allocates when
// WithTapeSize is never given, matching the reference runtime's fixed
// 30,000-cell tape.
const DefaultTapeSize = 30000

// Option configures an Interpreter at construction time.
type Option func(*config)

type config struct {
	tapeSize int
	stdin    io.Reader
	stdout   io.Writer
	tracer   executor.Tracer
}

func defaultConfig() config {
	return config{
		tapeSize: DefaultTapeSize,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
	}
}

// WithTapeSize overrides the tape's initial length. The tape still grows
// rightward past this size on demand; it never grows leftward.
func WithTapeSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tapeSize = n
		}
	}
}

// WithStdin overrides the reader legato notes consume from.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout overrides the writer staccato notes write to.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithTracer installs a Tracer invoked before every executed token. Used
// by --debug and --step in the CLI; nil (the default) disables tracing
// entirely, so a plain Run pays no observation overhead.
func WithTracer(t executor.Tracer) Option {
	return func(c *config) { c.tracer = t }
}
