// Package callsite resolves the caller of a contract-checked API so panics can
// point at the offending line instead of the library internals.
package callsite

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Of describes the frame skip levels above its caller as "file.go:42 (pkg.Func)".
// Of(0) describes the function that called Of.
func Of(skip int) string {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown caller"
	}
	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
	}
	return fmt.Sprintf("%s:%d (%s)", filepath.Base(file), line, name)
}
