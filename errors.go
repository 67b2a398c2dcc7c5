// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package rudd

import (
	"fmt"
	"log"
)

// Error returns the manager's accumulated error status, or the empty string
// if nothing went wrong yet.
func (k *kernel) Error() string {
	if k.err == nil {
		return ""
	}
	return k.err.Error()
}

// Errored reports whether the manager has recorded an error.
func (k *kernel) Errored() bool {
	return k.err != nil
}

// seterror records a logical precondition failure (bad variable, foreign
// node, destroyed manager, ...) and returns the error sentinel edge so the
// caller can propagate it straight out of whatever operation detected the
// problem. Successive errors are chained into a growing message, following
// the teacher's seterror (errors.go): we never drop the first failure by
// overwriting it with a later, possibly derived, one.
func (k *kernel) seterror(format string, a ...interface{}) edge {
	if k.err != nil {
		format = format + "; " + k.Error()
	}
	k.err = fmt.Errorf(format, a...)
	if debugEnabled {
		log.Println(k.err)
	}
	return edgeError
}
