package mdreader

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// WalkFileSystem walks a file system in breadth-first, name-sorted order and calls walkFn for
// each regular file whose path passes filter. Paths have no leading slash. Directories whose
// names start with "." are skipped.
func WalkFileSystem(fs http.FileSystem, filter func(path string) bool, walkFn func(path string) error) error {
	root, err := fs.Open("/")
	if err != nil {
		return err
	}
	fi, err := root.Stat()
	root.Close()
	if err != nil {
		return err
	}

	type queueItem struct {
		path string
		fi   os.FileInfo
	}
	queue := []queueItem{{path: "/", fi: fi}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		switch {
		case item.fi.Mode().IsDir(): // dir
			if item.path != "/" && strings.HasPrefix(item.fi.Name(), ".") {
				continue // skip dot-dirs
			}
			entries, err := readDir(fs, item.path)
			if err != nil {
				return errors.WithMessage(err, fmt.Sprintf("read dir %s", item.path))
			}
			for _, e := range entries {
				queue = append(queue, queueItem{path: path.Join(item.path, e.Name()), fi: e})
			}
		case item.fi.Mode().IsRegular(): // file
			p := strings.TrimPrefix(item.path, "/")
			if filter != nil && !filter(p) {
				continue
			}
			if err := walkFn(p); err != nil {
				return errors.WithMessage(err, fmt.Sprintf("walk %s", item.path))
			}
		default:
			return fmt.Errorf("file %s has unsupported mode %o (symlinks and other special files are not supported)", item.path, item.fi.Mode())
		}
	}
	return nil
}

func readDir(fs http.FileSystem, path string) ([]os.FileInfo, error) {
	dir, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	entries, err := dir.Readdir(-1)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}
