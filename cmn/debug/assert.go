// Package debug provides lightweight invariant-checking helpers used
// throughout the control plane to guard conditions that must hold as long
// as the single-writer cluster-state queue is not violated.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package debug

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/glog"
)

func _panic(a ...interface{}) {
	msg := "DEBUG PANIC: "
	if len(a) > 0 {
		msg += fmt.Sprint(a...)
	}
	buffer := bytes.NewBuffer(make([]byte, 0, 256))
	fmt.Fprint(buffer, msg)
	for i := 2; i < 9; i++ {
		_, file, line, ok := runtime.Caller(i)
		if !ok || !strings.Contains(file, "idxmaster") {
			break
		}
		if buffer.Len() > len(msg) {
			buffer.WriteString(" <- ")
		}
		fmt.Fprintf(buffer, "%s:%d", filepath.Base(file), line)
	}
	glog.Errorf("%s", buffer.Bytes())
	glog.Flush()
	panic(msg)
}

// Assert panics (after logging) when cond is false. Reserved for invariants
// that can only be violated by a bug in the single-writer queue itself.
func Assert(cond bool, a ...interface{}) {
	if !cond {
		_panic(a...)
	}
}

// Assertf is Assert with a format string.
func Assertf(cond bool, f string, a ...interface{}) {
	if !cond {
		_panic(fmt.Sprintf(f, a...))
	}
}

// AssertNoErr panics when err is non-nil.
func AssertNoErr(err error) {
	if err != nil {
		_panic(err)
	}
}
