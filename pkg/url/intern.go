package url

// Map lookups keyed by string(b) do not allocate, so schemes seen on the
// hot path come back as shared constants.

var schemes = map[string]string{
	"http": "http", "https": "https", "ws": "ws", "wss": "wss",
	"ftp": "ftp", "file": "file",
	"about": "about", "blob": "blob", "data": "data", "javascript": "javascript",
	"mailto": "mailto", "tel": "tel", "urn": "urn",
	"git": "git", "ssh": "ssh", "sftp": "sftp",
}

// internScheme returns the shared string for a well-known scheme.
func internScheme(b []byte) string {
	if s, ok := schemes[string(b)]; ok {
		return s
	}
	return string(b)
}
