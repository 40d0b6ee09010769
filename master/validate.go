package master

import (
	"strings"

	"github.com/coreindex/idxmaster/cmn"
)

// illegalFilesystemChars mirrors the reference architecture's refusal of
// path-hostile characters in a bucket/object name (cmn.Bck naming rules),
// generalized to index names.
const illegalFilesystemChars = `\/*?"<>|:`

// ValidateName applies the fixed-order name checks every candidate index
// name must pass. It does not know about existence or alias collision —
// those are coordinator pre-flight concerns layered around this pure
// predicate.
func ValidateName(name string) error {
	if name == "" {
		return cmn.NewErrInvalidIndexName(name, cmn.NameEmpty)
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return cmn.NewErrInvalidIndexName(name, cmn.NameWhitespaceForbidden)
	}
	if strings.Contains(name, ",") {
		return cmn.NewErrInvalidIndexName(name, cmn.NameCommaForbidden)
	}
	if strings.Contains(name, "#") {
		return cmn.NewErrInvalidIndexName(name, cmn.NameHashForbidden)
	}
	if strings.HasPrefix(name, "_") {
		return cmn.NewErrInvalidIndexName(name, cmn.NameLeadingUnderscoreForbidden)
	}
	if name != strings.ToLower(name) {
		return cmn.NewErrInvalidIndexName(name, cmn.NameMustBeLowercase)
	}
	if strings.ContainsAny(name, illegalFilesystemChars) {
		return cmn.NewErrInvalidIndexName(name, cmn.NameIllegalFilesystemChar)
	}
	return nil
}
