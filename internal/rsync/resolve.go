package rsync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// ErrTargetNotFound marks a folder or file named on the command line
// that is missing under the origin.
var ErrTargetNotFound = errors.New("does not exist on origin")

const defaultRsyncPath = "rsync"

// Resolve validates the raw inputs and produces the Config every later
// stage works from. It fails on the first missing target, before any
// synchronization starts.
func Resolve(inputs Inputs, logger *zap.Logger) (Config, error) {
	cfg := Config{
		Origin:         trimTrailingSeparator(inputs.Origin),
		Dest:           trimTrailingSeparator(inputs.Dest),
		Delete:         inputs.Delete,
		Verbose:        inputs.Verbose,
		Progress:       inputs.Progress,
		Owner:          inputs.Owner,
		Group:          inputs.Group,
		Executability:  inputs.Executability,
		DryRun:         inputs.DryRun,
		DeleteExcluded: inputs.DeleteExcluded,
		Mirroring:      inputs.Mirroring,
		PrintCmdOnly:   inputs.PrintCmdOnly,
		RsyncPath:      inputs.RsyncPath,
	}
	if cfg.RsyncPath == "" {
		cfg.RsyncPath = defaultRsyncPath
	}

	cfg.Excludes = append(cfg.Excludes, inputs.Excludes...)
	if inputs.ExcludeFrom != "" {
		fromFile, err := readExcludeFile(inputs.ExcludeFrom)
		if err != nil {
			return Config{}, fmt.Errorf("read exclude file %s: %w", inputs.ExcludeFrom, err)
		}
		cfg.Excludes = append(cfg.Excludes, fromFile...)
	}

	matcher := ignore.CompileIgnoreLines(cfg.Excludes...)

	for _, folder := range inputs.Folders {
		rel := relativeToOrigin(trimTrailingSeparator(folder), cfg.Origin)
		joined := filepath.Join(cfg.Origin, rel)
		info, statErr := os.Stat(joined)
		if statErr != nil || !info.IsDir() {
			return Config{}, fmt.Errorf("folder %s %w", joined, ErrTargetNotFound)
		}
		warnIfExcluded(rel, true, matcher, logger)
		cfg.Folders = append(cfg.Folders, rel)
	}

	for _, file := range inputs.Files {
		rel := relativeToOrigin(trimTrailingSeparator(file), cfg.Origin)
		joined := filepath.Join(cfg.Origin, rel)
		info, statErr := os.Stat(joined)
		if statErr != nil || !info.Mode().IsRegular() {
			return Config{}, fmt.Errorf("file %s %w", joined, ErrTargetNotFound)
		}
		warnIfExcluded(rel, false, matcher, logger)
		cfg.Files = append(cfg.Files, rel)
	}

	if inputs.EnableAll {
		cfg.Delete = true
		cfg.Verbose = true
		cfg.Progress = true
		cfg.Owner = true
		cfg.Group = true
		cfg.Executability = true
		cfg.DeleteExcluded = true
	}
	if inputs.Mirroring {
		cfg.Delete = true
		cfg.Owner = true
		cfg.Group = true
		cfg.Executability = true
	}

	return cfg, nil
}

func warnIfExcluded(relativePath string, isDir bool, matcher *ignore.GitIgnore, logger *zap.Logger) {
	if logger == nil {
		return
	}
	if matchesExclude(relativePath, isDir, matcher) {
		logger.Warn("target matches an exclude pattern, rsync may skip its contents",
			zap.String("target", relativePath))
	}
}
