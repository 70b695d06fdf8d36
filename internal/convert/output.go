package convert

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/koustreak/json2sqlite/internal/filestore"
)

// OutputExt is appended to the source name, minus its extension.
const OutputExt = ".sqlite"

// OutputPath returns the database file written for loc. Local sources are
// converted next to the input ("dir/people.json" -> "dir/people.sqlite");
// object sources are written to outputDir under the key's base name. A
// trailing ".xz" is removed before the extension.
func OutputPath(loc filestore.Location, outputDir string) string {
	if loc.IsObject() {
		if outputDir == "" {
			outputDir = "."
		}
		return filepath.Join(outputDir, trimExt(path.Base(loc.Key))+OutputExt)
	}
	dir, file := filepath.Split(loc.Key)
	return dir + trimExt(file) + OutputExt
}

func trimExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".xz") {
		name = name[:len(name)-len(".xz")]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
