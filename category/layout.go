package category

import (
	"path"
	"strings"

	"github.com/signadot/respack/key"
)

// Layout maps the key of an entity of a category to its path in a tree and
// back.
type Layout interface {
	Path(folder string, k key.Key, ext string) string
	// Split returns the namespace and the remainder of p below folder.
	Split(folder, p string) (ns, rest string, ok bool)
}

// AssetsLayout places entities at assets/<namespace>/<folder>/<value><ext>.
type AssetsLayout struct{}

func (AssetsLayout) Path(folder string, k key.Key, ext string) string {
	return path.Join("assets", k.Namespace, folder, k.Value) + ext
}

func (AssetsLayout) Split(folder, p string) (string, string, bool) {
	rest, ok := strings.CutPrefix(p, "assets/")
	if !ok {
		return "", "", false
	}
	ns, rest, ok := strings.Cut(rest, "/")
	if !ok {
		return "", "", false
	}
	rest, ok = strings.CutPrefix(rest, folder+"/")
	return ns, rest, ok
}

// FolderLayout places entities at <folder>/<namespace>/<value><ext>.
type FolderLayout struct{}

func (FolderLayout) Path(folder string, k key.Key, ext string) string {
	return path.Join(folder, k.Namespace, k.Value) + ext
}

func (FolderLayout) Split(folder, p string) (string, string, bool) {
	rest, ok := strings.CutPrefix(p, folder+"/")
	if !ok {
		return "", "", false
	}
	return strings.Cut(rest, "/")
}
