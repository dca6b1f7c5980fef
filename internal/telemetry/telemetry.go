// Package telemetry gives every colgraph component the same tag-prefixed
// log line mini-Spark writes by hand at each call site
// (log.Printf("[Registry] ...") in internal/master/registry.go,
// log.Printf("[Worker %s] ...") in internal/worker/api.go). colgraph has
// more call sites spread across more packages than the teacher's single
// master/worker pair, so the tag gets attached once, at construction,
// instead of repeated in every format string.
package telemetry

import "log"

// Logger prefixes every line with a component tag, e.g. "[optimize]".
type Logger struct {
	tag string
}

func New(tag string) Logger {
	return Logger{tag: "[" + tag + "] "}
}

func (l Logger) Infof(format string, args ...any) {
	log.Printf(l.tag+format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	log.Printf(l.tag+"WARN "+format, args...)
}
