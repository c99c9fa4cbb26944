package pgquery

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/qjebbs/go-sqlf/v4/util"
)

// Debug enables debug mode: BuildQuery prints the interpolated query to
// stdout, and double-lock errors carry the site of the first lock.
func (b *QueryBuilder) Debug(name ...string) *QueryBuilder {
	b.debug = true
	if len(name) > 0 {
		b.debugName = strings.Replace(strings.Join(name, "_"), " ", "_", -1)
	}
	return b
}

// printIfDebug prints the interpolated query to stdout.
func (b *QueryBuilder) printIfDebug(query string, args []any) {
	if !b.debug {
		return
	}
	interpolated, err := util.Interpolate(query, args)
	if err != nil {
		if b.debugName == "" {
			fmt.Printf("debug: interpolating query: %s\n", err)
		} else {
			fmt.Printf("[%s] debug: interpolating query: %s\n", b.debugName, err)
		}
		return
	}
	if b.debugName == "" {
		fmt.Println(interpolated)
	} else {
		fmt.Printf("[%s] %s\n", b.debugName, interpolated)
	}
}

const pkgFuncPrefix = "github.com/Graphile/graphql-build."

// lockSite reports the first caller outside this package, the line that
// caused the phase to lock.
func lockSite() string {
	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, pkgFuncPrefix) {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if !more {
			return ""
		}
	}
}
