// Package cmn provides common types, configuration, and error taxonomy
// shared across the control plane: cluster defaults, the recognized
// settings keys, and the error kinds surfaced to CreateIndexListener.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

import (
	"math/rand"

	"github.com/teris-io/shortid"
	"go.uber.org/atomic"
)

// Alphabet for generating UUIDs, same family as the reference
// architecture's uuidABC (len > 0x3f, see GenTie).
const uuidABC = "-5nZJDft6LuzsjGNpPwY7rQa39vehq4i1cV2FROo8yHSlC0BUEdWbIxMmTgKXAk_"

var (
	sid  *shortid.Shortid
	rtie atomic.Int32
)

func init() {
	sid = shortid.MustNew(4 /*worker*/, uuidABC, 0)
}

// GenUUID generates a short, human-readable ID for a queue task, a
// create-index request, or a transaction — used wherever the coordinator
// needs to correlate a begin with its eventual commit/abort.
func GenUUID() string {
	var h, t string
	uuid := sid.MustGenerate()
	if !isAlpha(uuid[0]) {
		h = string(rune('A' + rand.Int()%26))
	}
	if c := uuid[len(uuid)-1]; c == '-' || c == '_' {
		t = string(rune('a' + rand.Int()%26))
	}
	return h + uuid + t
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// GenTie produces a short three-character disambiguator derived from a
// process-wide atomic counter, so consecutive calls return different values.
func GenTie() string {
	tie := rtie.Add(1)
	b0 := uuidABC[tie&0x3f]
	b1 := uuidABC[-tie&0x3f]
	b2 := uuidABC[(tie>>2)&0x3f]
	return string([]byte{b0, b1, b2})
}
