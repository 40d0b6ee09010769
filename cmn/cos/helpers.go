// Package cos ("common os") holds small, dependency-free helpers shared by
// every other package in the module — the same role `cmn/cos` plays in the
// reference architecture, split out of `cmn` so that low-level leaves don't
// import the higher-level config and error types.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cos

import "time"

// FormatTimestamp renders t the way the update queue's task log lines do,
// so ages are human-scannable in INFO/WARN/ERROR output.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("15:04:05.000")
}

// StringSet is a set of strings implemented as a map, matching the
// reference architecture's cos.StringSet.
type StringSet map[string]struct{}

func NewStringSet(keys ...string) StringSet {
	set := make(StringSet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (s StringSet) Contains(k string) bool { _, ok := s[k]; return ok }
func (s StringSet) Add(k string)           { s[k] = struct{}{} }
func (s StringSet) Delete(k string)        { delete(s, k) }
