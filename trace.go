package xpath

import (
	"io"
	"os"
	"sync/atomic"
)

// Evaluation tracing. At verbosity 2 and above the walker dumps the context
// entering and leaving every tree node. Tracing is observability only and
// never affects results.

var (
	traceLevel  atomic.Int32
	traceOutput io.Writer = os.Stderr
)

// SetTraceLevel sets the trace verbosity. 0 disables tracing.
func SetTraceLevel(level int) {
	traceLevel.Store(int32(level))
}

// TraceLevel returns the current trace verbosity.
func TraceLevel() int {
	return int(traceLevel.Load())
}

// SetTraceOutput redirects trace output, which defaults to stderr.
// Call before starting evaluations; the writer is not locked.
func SetTraceOutput(w io.Writer) {
	traceOutput = w
}

func tracing() bool {
	return traceLevel.Load() > 1
}

func trace(c *Context, direction string, kind Kind) {
	c.Format(traceOutput, direction+" "+kind.String())
}
