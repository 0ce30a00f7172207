package rsync

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func makeDir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
}

func TestResolveNormalizesOriginAndDest(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()
	sep := string(os.PathSeparator)

	cfg, err := Resolve(Inputs{Origin: origin + sep, Dest: dest + sep}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Origin != origin {
		t.Fatalf("origin = %q, want %q", cfg.Origin, origin)
	}
	if cfg.Dest != dest {
		t.Fatalf("dest = %q, want %q", cfg.Dest, dest)
	}
}

func TestResolveStripsOriginPrefixFromFolder(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()
	makeDir(t, filepath.Join(origin, "sub"))

	cfg, err := Resolve(Inputs{
		Origin:  origin,
		Dest:    dest,
		Folders: []string{origin + string(os.PathSeparator) + "sub"},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !reflect.DeepEqual(cfg.Folders, []string{"sub"}) {
		t.Fatalf("folders = %v, want [sub]", cfg.Folders)
	}
}

func TestResolveMissingFolderFails(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()

	_, err := Resolve(Inputs{
		Origin:  origin,
		Dest:    dest,
		Folders: []string{"missing"},
	}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing folder")
	}
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("err = %v, want ErrTargetNotFound", err)
	}
	if !strings.Contains(err.Error(), filepath.Join(origin, "missing")) {
		t.Fatalf("err %q does not name the missing path", err)
	}
}

func TestResolveMissingFileFails(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()

	_, err := Resolve(Inputs{
		Origin: origin,
		Dest:   dest,
		Files:  []string{"absent.txt"},
	}, zap.NewNop())
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("err = %v, want ErrTargetNotFound", err)
	}
}

func TestResolveDirectoryIsNotAFile(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()
	makeDir(t, filepath.Join(origin, "subdir"))

	_, err := Resolve(Inputs{
		Origin: origin,
		Dest:   dest,
		Files:  []string{"subdir"},
	}, zap.NewNop())
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("err = %v, want ErrTargetNotFound for directory named as file", err)
	}
}

func TestResolveFileTargets(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()
	writeFile(t, filepath.Join(origin, "notes", "readme.md"), "hello")

	cfg, err := Resolve(Inputs{
		Origin: origin,
		Dest:   dest,
		Files:  []string{filepath.Join("notes", "readme.md")},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !reflect.DeepEqual(cfg.Files, []string{filepath.Join("notes", "readme.md")}) {
		t.Fatalf("files = %v", cfg.Files)
	}
}

func TestResolveMirroringOverridesExplicitValues(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()

	cfg, err := Resolve(Inputs{
		Origin:    origin,
		Dest:      dest,
		Mirroring: true,
		Delete:    false,
		Owner:     false,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !cfg.Delete || !cfg.Owner || !cfg.Group || !cfg.Executability {
		t.Fatalf("mirroring expansion incomplete: %+v", cfg)
	}
	if cfg.Verbose || cfg.Progress || cfg.DryRun || cfg.DeleteExcluded {
		t.Fatalf("mirroring touched unrelated toggles: %+v", cfg)
	}
}

func TestResolveEnableAllExpansion(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()

	cfg, err := Resolve(Inputs{
		Origin:    origin,
		Dest:      dest,
		EnableAll: true,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !cfg.Delete || !cfg.Verbose || !cfg.Progress || !cfg.Owner ||
		!cfg.Group || !cfg.Executability || !cfg.DeleteExcluded {
		t.Fatalf("enable-all expansion incomplete: %+v", cfg)
	}
	if cfg.DryRun {
		t.Fatalf("enable-all must not force dry-run: %+v", cfg)
	}
}

func TestResolveExcludeFromAppendsAfterInlinePatterns(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()
	excludeFile := filepath.Join(t.TempDir(), "excludes.txt")
	writeFile(t, excludeFile, "# build output\n\ndist/\n*.log\n")

	cfg, err := Resolve(Inputs{
		Origin:      origin,
		Dest:        dest,
		Excludes:    []string{"*.tmp"},
		ExcludeFrom: excludeFile,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	expect := []string{"*.tmp", "dist/", "*.log"}
	if !reflect.DeepEqual(cfg.Excludes, expect) {
		t.Fatalf("excludes = %v, want %v", cfg.Excludes, expect)
	}
}

func TestResolveMissingExcludeFileFails(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()

	_, err := Resolve(Inputs{
		Origin:      origin,
		Dest:        dest,
		ExcludeFrom: filepath.Join(origin, "no-such-file"),
	}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for missing exclude file")
	}
}

func TestResolveDefaultsRsyncPath(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()

	cfg, err := Resolve(Inputs{Origin: origin, Dest: dest}, zap.NewNop())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.RsyncPath != "rsync" {
		t.Fatalf("rsync path = %q, want rsync", cfg.RsyncPath)
	}
}

func TestResolveNilLogger(t *testing.T) {
	origin := t.TempDir()
	dest := t.TempDir()
	makeDir(t, filepath.Join(origin, "node_modules"))

	if _, err := Resolve(Inputs{
		Origin:   origin,
		Dest:     dest,
		Folders:  []string{"node_modules"},
		Excludes: []string{"node_modules/"},
	}, nil); err != nil {
		t.Fatalf("resolve with nil logger: %v", err)
	}
}
