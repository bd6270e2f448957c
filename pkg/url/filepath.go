package url

import (
	"errors"
	"strings"

	"github.com/shapestone/shape-url/internal/percent"
)

var (
	// ErrNotAbsolutePath is returned for file paths that do not start with '/'.
	ErrNotAbsolutePath = errors.New("file path is not absolute")
	// ErrNotFileURL is returned by ToFilePath for URLs that do not name a
	// local file.
	ErrNotFileURL = errors.New("not a local file URL")
)

// FromFilePath converts an absolute POSIX path to a file URL. Each path
// component is percent-encoded, including '%' itself.
func FromFilePath(path string) (*URL, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, newParseError(path, ErrNotAbsolutePath)
	}
	b := []byte("file://")
	for _, seg := range strings.Split(path[1:], "/") {
		b = append(b, '/')
		b = percent.AppendString(b, seg, &percent.PathSegment, false)
	}
	return Parse(string(b))
}

// FromDirectoryPath is FromFilePath with a trailing '/' guaranteed, so the
// URL can serve as a base for the directory's entries.
func FromDirectoryPath(path string) (*URL, error) {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return FromFilePath(path)
}

// ToFilePath converts a file URL with an empty host back to a POSIX path,
// percent-decoding each segment.
func (u *URL) ToFilePath() (string, error) {
	if u.Scheme() != "file" || u.hostKind != HostEmpty {
		return "", ErrNotFileURL
	}
	segments, _ := u.PathSegments()
	var b strings.Builder
	for _, seg := range segments {
		decoded := percent.Decode(seg)
		for _, c := range decoded {
			if c == 0 || c == '/' {
				return "", ErrNotFileURL
			}
		}
		b.WriteByte('/')
		b.Write(decoded)
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
