package mdreader

import (
	"bytes"
	"io"
	"net/http"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ReadFile reads the file at path from fs. A leading UTF-8 byte order mark is removed and CRLF
// line endings are converted to LF.
func ReadFile(fs http.FileSystem, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")), nil
}
