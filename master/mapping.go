package master

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/coreindex/idxmaster/cluster"
)

// LoadMappings walks <root>/mappings in two layers: global defaults
// first, then the index's own override directory, merging into
// a single type -> source accumulator. Within one directory the first
// file read for a type name wins; a later directory's entry overrides an
// earlier directory's. The caller overlays the request's own mappings
// last (highest precedence) — this function only produces the two
// filesystem layers.
//
// Absence of <root>/mappings, or of either subdirectory, is not an
// error: it simply contributes nothing. A file that fails to read is
// skipped with a warning; it never fails the load.
func LoadMappings(root, indexName string) cluster.Mappings {
	acc := cluster.NewMappings()
	mergeDir(acc, filepath.Join(root, "mappings", "_default"))
	mergeDir(acc, filepath.Join(root, "mappings", indexName))
	return acc
}

// mergeDir reads every regular file directly under dir, deriving the
// type name from the basename with its extension stripped (a file with no
// extension, or with nothing before it, is skipped with a warning), and installs
// it into acc unless acc already holds that type from an earlier call
// within the SAME directory pass. Go's ReadDir already returns entries
// in name order, so "first read wins" within a directory is simply
// "first insert wins" here; across directories the caller relies on a
// type being overwritten by the later mergeDir call only if it was not
// already set by THIS call — tracked via seenHere.
func mergeDir(acc cluster.Mappings, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			glog.Warningf("mapping loader: cannot read directory %q: %v", dir, err)
		}
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	seenHere := cluster.NewMappings()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		typ := strings.TrimSuffix(name, ext)
		if ext == "" || typ == "" {
			glog.Warningf("mapping loader: %q has no extension or no usable type name, skipping", filepath.Join(dir, name))
			continue
		}
		if _, already := seenHere[typ]; already {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			glog.Warningf("mapping loader: failed to read %q: %v", filepath.Join(dir, name), err)
			continue
		}
		seenHere[typ] = string(data)
		acc[typ] = string(data)
	}
}
