package rsync

import (
	"os"
	"strings"
)

// trimTrailingSeparator removes a single trailing path separator. The
// filesystem root is left untouched.
func trimTrailingSeparator(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, string(os.PathSeparator)) {
		return path[:len(path)-1]
	}
	return path
}

// relativeToOrigin turns a target pasted as an absolute path back into
// an origin-relative one. Targets already relative pass through.
func relativeToOrigin(target string, origin string) string {
	if origin == "" || !strings.HasPrefix(target, origin) {
		return target
	}
	rel := strings.TrimPrefix(target, origin)
	rel = strings.TrimPrefix(rel, string(os.PathSeparator))
	return strings.TrimSpace(rel)
}
