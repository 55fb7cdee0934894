package mdreader

import (
	pathpkg "path"
	"strings"
)

// contentFilePathToPath returns the extensionless path of a content file, which names every file
// generated from it. For example, contentFilePathToPath("a/b.md") == "a/b".
func contentFilePathToPath(filePath string) string {
	filePath = strings.TrimPrefix(pathpkg.Clean("/"+filePath), "/")
	return strings.TrimSuffix(filePath, pathpkg.Ext(filePath))
}

// OutputPath returns the path, relative to the output directory, of the file with extension ext
// (such as ".html") generated from the document.
func (d *Document) OutputPath(ext string) string {
	return contentFilePathToPath(d.Path) + ext
}
