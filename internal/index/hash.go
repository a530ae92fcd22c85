package index

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// hashPathXXH64 implements the path-hash algorithm used by index format
// versions 12-18, producing the 16-hex-character digest that names
// {basename}.{hash}.idx files.
func hashPathXXH64(path string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(path))
}

// hashPathXXH3 implements the path-hash algorithm used by versions 19-20.
func hashPathXXH3(path string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(path))
}

// IndexFileName derives the {basename}.{hash}.idx filename for a source
// path under the given format version.
func IndexFileName(sourcePath string, version uint32) (string, error) {
	strat, err := strategyFor(version)
	if err != nil {
		return "", err
	}
	return basenameOf(sourcePath) + "." + strat.hashPath(sourcePath) + ".idx", nil
}

func basenameOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
