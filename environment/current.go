package environment

import (
	"os"

	"github.com/pkg/errors"
)

// Current holds the parsed form of the process's environment at startup. The
// debug-trace hook in hostruntime consults this to decide whether hook
// invocations should be logged to standard error.
var Current map[string]string

func init() {
	if current, err := Parse(os.Environ()); err != nil {
		panic(errors.Wrap(err, "unable to parse environment"))
	} else {
		Current = current
	}
}

// CopyCurrent returns an independent copy of Current, safe for a caller to
// mutate.
func CopyCurrent() map[string]string {
	result := make(map[string]string, len(Current))
	for k, v := range Current {
		result[k] = v
	}
	return result
}
