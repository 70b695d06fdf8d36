package shape

import (
	"path"
	"path/filepath"
	"strings"
)

// DefaultTableName is used when no other name can be resolved.
const DefaultTableName = "data"

// SingleTableName resolves the name of a SingleTable document.
//
// With UseFilenameAsTableName the source base name is used with its
// extension removed ("dir/test_guids.json" becomes "test_guids", a
// trailing ".xz" is removed first). Otherwise, or when the file name is
// empty after trimming, CustomTableName is used, then DefaultTableName.
func SingleTableName(opts Options) string {
	if opts.UseFilenameAsTableName {
		if name := baseName(opts.SourceName); name != "" {
			return name
		}
	}
	if name := strings.TrimSpace(opts.CustomTableName); name != "" {
		return name
	}
	return DefaultTableName
}

func baseName(source string) string {
	if source == "" {
		return ""
	}
	base := path.Base(filepath.ToSlash(source))
	if base == "." || base == "/" {
		return ""
	}
	if strings.HasSuffix(strings.ToLower(base), ".xz") {
		base = base[:len(base)-len(".xz")]
	}
	return strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
}

// foldName lowers ASCII letters only, matching how SQLite compares
// identifiers.
func foldName(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
