package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Tuning specs and script hooks ship embedded so the binary runs without
// a prefabs directory next to it. When one is present on disk it wins,
// which is what makes the fsnotify reload loop useful during tuning.

//go:embed *.yaml scripts/*.tengo
var assets embed.FS

const diskRoot = "prefabs"

// Load reads a spec file by name, disk copy first, embedded fallback.
func Load(name string) ([]byte, error) {
	return read(normalize(name, ""))
}

// LoadScript reads a tengo hook source. Script names in shift.yaml are
// bare filenames; qualified paths are accepted too.
func LoadScript(name string) ([]byte, error) {
	return read(normalize(name, "scripts"))
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(diskRoot, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return assets.ReadFile(rel)
}

// normalize strips a leading "prefabs/" and pins the file under subdir,
// so "on_calm.tengo", "scripts/on_calm.tengo" and
// "prefabs/scripts/on_calm.tengo" all resolve the same.
func normalize(name, subdir string) string {
	s := strings.TrimPrefix(filepath.ToSlash(name), diskRoot+"/")
	if subdir == "" {
		return s
	}
	return path.Join(subdir, strings.TrimPrefix(s, subdir+"/"))
}
