package cmn

import (
	"fmt"
	"strconv"
	"time"
)

// Settings is an immutable mapping from dotted string keys to typed
// scalar values. It is always constructed by layering: request
// settings override cluster defaults. Values are stored as strings on the
// wire (matching the reference architecture's BucketPropsToUpdate string
// encoding for scalar overrides) and parsed on read.
type Settings map[string]string

// NewSettings copies kv into a fresh, independent Settings value.
func NewSettings(kv map[string]string) Settings {
	s := make(Settings, len(kv))
	for k, v := range kv {
		s[k] = v
	}
	return s
}

// Overlay returns a new Settings with override's keys taking precedence
// over s's — the general form of the reference architecture's
// BucketPropsToUpdate.Apply, generalized to arbitrary dotted keys rather
// than a fixed struct of known fields.
func (s Settings) Overlay(override Settings) Settings {
	out := make(Settings, len(s)+len(override))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func (s Settings) String(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

func (s Settings) Int(key string) (int64, bool, error) {
	v, ok := s[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("setting %q: invalid integer %q: %w", key, v, err)
	}
	return n, true, nil
}

func (s Settings) Bool(key string) (bool, bool, error) {
	v, ok := s[key]
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, true, fmt.Errorf("setting %q: invalid boolean %q: %w", key, v, err)
	}
	return b, true, nil
}

func (s Settings) Duration(key string) (time.Duration, bool, error) {
	v, ok := s[key]
	if !ok {
		return 0, false, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, true, fmt.Errorf("setting %q: invalid duration %q: %w", key, v, err)
	}
	return d, true, nil
}

// ByteSize reads a byte-size setting as a plain integer count of bytes.
// A suffixed value such as "10MB" is not parsed and returns an error.
// This core does not itself act on byte-size settings, only passes them
// through.
func (s Settings) ByteSize(key string) (int64, bool, error) {
	return s.Int(key)
}

// NumberOfShards resolves the recognized shard-count setting, defaulting
// to the cluster configuration when unset.
func (s Settings) NumberOfShards(cfg *ClusterConfig) (int64, error) {
	n, ok, err := s.Int(SettingNumberOfShards)
	if err != nil {
		return 0, err
	}
	if !ok {
		return cfg.NumberOfShards, nil
	}
	return n, nil
}

// NumberOfReplicas resolves the recognized replica-count setting the same
// way.
func (s Settings) NumberOfReplicas(cfg *ClusterConfig) (int64, error) {
	n, ok, err := s.Int(SettingNumberOfReplicas)
	if err != nil {
		return 0, err
	}
	if !ok {
		return cfg.NumberOfReplicas, nil
	}
	return n, nil
}
