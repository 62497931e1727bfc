package hostruntime

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/snapfs/snapfs/environment"
)

// debugVariable is the environment variable consulted to decide whether hook
// invocations are traced to standard error.
const debugVariable = "SNAPFS_DEBUG"

// debugToken identifies this subsystem within debugVariable's value, which
// may list several subsystems.
const debugToken = "eavfs"

// tracer emits one-line diagnostic records for hook invocations when the
// debug variable names this subsystem. It is silent otherwise.
type tracer struct {
	enabled bool
	log     *logrus.Logger
}

// newTracer builds a tracer from the process's current environment.
func newTracer() *tracer {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.DebugLevel)

	value := environment.Current[debugVariable]
	enabled := false
	for _, token := range strings.Split(value, ",") {
		if strings.TrimSpace(token) == debugToken {
			enabled = true
			break
		}
	}

	return &tracer{enabled: enabled, log: log}
}

// hook logs one hook invocation, recording both the input path and its
// translated virtual-filesystem form.
func (t *tracer) hook(name, input, translated string) {
	if !t.enabled {
		return
	}
	t.log.WithFields(logrus.Fields{
		"hook":       name,
		"input":      input,
		"translated": translated,
	}).Debug("hook invocation")
}
