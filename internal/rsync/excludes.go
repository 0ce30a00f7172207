package rsync

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/sabhiram/go-gitignore"
)

// readExcludeFile loads extra exclude patterns, one per line. Blank
// lines and # comments are skipped; pattern order is preserved.
func readExcludeFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var patterns []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// matchesExclude reports whether a resolved target would itself be
// filtered by one of the exclude patterns handed to the delegate.
func matchesExclude(relativePath string, isDir bool, matcher *ignore.GitIgnore) bool {
	if matcher == nil {
		return false
	}
	p := filepath.ToSlash(relativePath)
	if isDir {
		p += "/"
	}
	return matcher.MatchesPath(p)
}
