package lspclient

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ProjectRoot returns the absolute project root the session was opened
// against.
func (c *Client) ProjectRoot() string { return c.projectRoot }

// ToAbsolutePath resolves relativePath against the project root, leaving
// already-absolute paths untouched.
func (c *Client) ToAbsolutePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(c.projectRoot, relativePath)
}

// ToRelativePath makes absolutePath relative to the project root, falling
// back to the absolute form if that's not possible.
func (c *Client) ToRelativePath(absolutePath string) string {
	rel, err := filepath.Rel(c.projectRoot, absolutePath)
	if err != nil {
		return absolutePath
	}
	return rel
}

// FileURIFromPath converts a path (relative or absolute) to a file:// URI.
func (c *Client) FileURIFromPath(filePath string) string {
	u := &url.URL{Scheme: "file", Path: c.ToAbsolutePath(filePath)}
	return u.String()
}

// PathFromFileURI extracts the filesystem path from a file:// URI.
func PathFromFileURI(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	u, err := url.Parse(uri)
	if err != nil {
		return strings.TrimPrefix(uri, "file://")
	}
	return u.Path
}

// languageID returns the LSP languageId for path's extension.
func languageID(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c":
		return "c"
	default:
		return "cpp"
	}
}
