package rsync

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

var (
	statusText  = color.New(color.FgGreen, color.Bold)
	folderText  = color.New(color.FgBlue, color.Bold)
	fileText    = color.New(color.FgMagenta, color.Bold)
	commandText = color.New(color.FgCyan, color.Bold)
)

// Run synchronizes each resolved target in order, one delegate process
// at a time. A delegate that fails to start or exits non-zero aborts
// the remaining targets.
func Run(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	baseArgs := BuildBaseArgs(cfg)
	separator := string(os.PathSeparator)

	for _, folder := range cfg.Folders {
		destDir := filepath.Join(cfg.Dest, folder)
		args := appendPaths(baseArgs,
			filepath.Join(cfg.Origin, folder)+separator,
			destDir+separator,
		)
		printAction(out, folderText.Sprint(folder), cfg.RsyncPath, args)
		if cfg.PrintCmdOnly {
			continue
		}
		if err := ensureDir(destDir, logger); err != nil {
			return err
		}
		if err := runDelegate(ctx, cfg.RsyncPath, args, out, logger); err != nil {
			return fmt.Errorf("synchronize folder %s: %w", folder, err)
		}
	}

	for _, file := range cfg.Files {
		destFile := filepath.Join(cfg.Dest, file)
		args := appendPaths(baseArgs, filepath.Join(cfg.Origin, file), destFile)
		printAction(out, fileText.Sprint(file), cfg.RsyncPath, args)
		if cfg.PrintCmdOnly {
			continue
		}
		if err := ensureDir(filepath.Dir(destFile), logger); err != nil {
			return err
		}
		if err := runDelegate(ctx, cfg.RsyncPath, args, out, logger); err != nil {
			return fmt.Errorf("synchronize file %s: %w", file, err)
		}
	}

	if len(cfg.Folders) == 0 && len(cfg.Files) == 0 {
		args := appendPaths(baseArgs, cfg.Origin, cfg.Dest)
		target := fmt.Sprintf("%s %s %s",
			folderText.Sprint(cfg.Origin), statusText.Sprint("to"), folderText.Sprint(cfg.Dest))
		printAction(out, target, cfg.RsyncPath, args)
		if cfg.PrintCmdOnly {
			return nil
		}
		if err := runDelegate(ctx, cfg.RsyncPath, args, out, logger); err != nil {
			return fmt.Errorf("synchronize %s: %w", cfg.Origin, err)
		}
	}

	return nil
}

func appendPaths(baseArgs []string, source string, dest string) []string {
	args := make([]string, 0, len(baseArgs)+2)
	args = append(args, baseArgs...)
	return append(args, source, dest)
}

// ensureDir is idempotent: an already existing directory is success.
func ensureDir(dir string, logger *zap.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if logger != nil {
			logger.Error("create destination directory", zap.String("dir", dir), zap.Error(err))
		}
		return fmt.Errorf("create destination directory %s: %w", dir, err)
	}
	return nil
}

func printAction(out io.Writer, target string, program string, args []string) {
	fmt.Fprintf(out, "%s %s\n", statusText.Sprint("rsync is synchronizing"), target)
	fmt.Fprintf(out, "%s %s\n",
		commandText.Sprint("Command:"),
		commandText.Sprint(program+" "+strings.Join(args, " ")))
}

// runDelegate starts the external process and echoes its stdout line by
// line as it arrives, blocking until the process exits.
func runDelegate(ctx context.Context, program string, args []string, out io.Writer, logger *zap.Logger) error {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stderr = out

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", program, err)
	}
	if logger != nil {
		logger.Debug("delegate started", zap.String("program", program), zap.Strings("args", args))
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Fprintln(out, scanner.Text())
	}
	if scanErr := scanner.Err(); scanErr != nil {
		_ = cmd.Wait()
		return fmt.Errorf("read %s output: %w", program, scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s exited: %w", program, err)
	}
	return nil
}
