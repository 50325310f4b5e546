package core

import (
	"slices"
	"sort"
)

// VersionTable maps an API version identifier to the operations valid only
// under that version. Versions are compared for exact equality; there is no
// ordering between them.
//
// Operations absent from the table are version-neutral and always allowed.
// Only operations explicitly tagged with a different version than the
// configured one are rejected. Most endpoints are version-neutral and only a
// minority are version-specific, so the asymmetry is deliberate.
type VersionTable map[string][]Operation

// Check permits or rejects the operation under the configured version. It
// performs no I/O; its purpose is to fail fast before any network activity.
func (t VersionTable) Check(exchange string, op Operation, configured string) error {
	if len(t) == 0 {
		return nil
	}

	tagged := false
	for version, ops := range t {
		if !slices.Contains(ops, op) {
			continue
		}
		tagged = true
		if version == configured {
			return nil
		}
	}
	if !tagged {
		return nil
	}
	return NewUnsupportedError(exchange, op, configured, t.Supporting(op))
}

// Supporting returns the sorted list of versions under which the operation
// is explicitly valid.
func (t VersionTable) Supporting(op Operation) []string {
	var versions []string
	for version, ops := range t {
		if slices.Contains(ops, op) {
			versions = append(versions, version)
		}
	}
	sort.Strings(versions)
	return versions
}
