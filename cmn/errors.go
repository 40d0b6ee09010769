package cmn

import "fmt"

// NameErrorKind enumerates the fixed-order name-validation failures. The
// order in which these are checked (not the order they are declared
// here) is what the coordinator's pre-flight validation walks.
type NameErrorKind int

const (
	_ NameErrorKind = iota
	NameAlreadyExists
	NameEmpty
	NameWhitespaceForbidden
	NameCommaForbidden
	NameHashForbidden
	NameLeadingUnderscoreForbidden
	NameMustBeLowercase
	NameIllegalFilesystemChar
	NameCollidesWithAlias
)

func (k NameErrorKind) String() string {
	switch k {
	case NameAlreadyExists:
		return "already exists"
	case NameEmpty:
		return "must not be empty"
	case NameWhitespaceForbidden:
		return "must not contain whitespace"
	case NameCommaForbidden:
		return "must not contain a comma"
	case NameHashForbidden:
		return "must not contain '#'"
	case NameLeadingUnderscoreForbidden:
		return "must not begin with '_'"
	case NameMustBeLowercase:
		return "must be lowercase"
	case NameIllegalFilesystemChar:
		return "contains a filesystem-unsafe character"
	case NameCollidesWithAlias:
		return "alias collision"
	default:
		return "invalid index name"
	}
}

// ErrInvalidIndexName is returned by the name validator and carries
// the specific, deterministic reason a caller inspects.
type ErrInvalidIndexName struct {
	Name   string
	Reason NameErrorKind
}

func (e *ErrInvalidIndexName) Error() string {
	return fmt.Sprintf("index name %q is invalid: %s", e.Name, e.Reason)
}

func NewErrInvalidIndexName(name string, reason NameErrorKind) error {
	return &ErrInvalidIndexName{Name: name, Reason: reason}
}

// ErrIndexAlreadyExists is returned when the metadata or routing table
// already carries the requested name.
type ErrIndexAlreadyExists struct{ Name string }

func (e *ErrIndexAlreadyExists) Error() string {
	return fmt.Sprintf("index %q already exists", e.Name)
}

func NewErrIndexAlreadyExists(name string) error { return &ErrIndexAlreadyExists{Name: name} }

// ErrIndexDoesNotExist is returned by DestroyIndex and other operations
// that require the index to be present.
type ErrIndexDoesNotExist struct{ Name string }

func (e *ErrIndexDoesNotExist) Error() string { return fmt.Sprintf("index %q does not exist", e.Name) }

func NewErrIndexDoesNotExist(name string) error { return &ErrIndexDoesNotExist{Name: name} }

// ErrMapperParsing is returned when the external mapping parser rejects a
// type's source document. The coordinator deletes the partially-created
// local index before surfacing this.
type ErrMapperParsing struct {
	Type  string
	Cause error
}

func (e *ErrMapperParsing) Error() string {
	return fmt.Sprintf("failed to parse mapping for type %q: %v", e.Type, e.Cause)
}

func (e *ErrMapperParsing) Unwrap() error { return e.Cause }

func NewErrMapperParsing(typ string, cause error) error {
	return &ErrMapperParsing{Type: typ, Cause: cause}
}

// ErrIndexRejected is returned when a peer explicitly refuses an
// index-create commit (as opposed to merely timing out), triggering the
// coordinator's compensating rollback task.
type ErrIndexRejected struct {
	Name  string
	Cause error
}

func (e *ErrIndexRejected) Error() string {
	return fmt.Sprintf("index %q create rejected by peer: %v", e.Name, e.Cause)
}

func (e *ErrIndexRejected) Unwrap() error { return e.Cause }

func NewErrIndexRejected(name string, cause error) error {
	return &ErrIndexRejected{Name: name, Cause: cause}
}
