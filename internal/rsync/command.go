package rsync

// baseFlags is the invariant delegate flag set: recursive, update-only,
// copy symlinks, preserve hard links and modification times.
const baseFlags = "-rulHt"

// BuildBaseArgs turns a Config into the argv shared by every target:
// the base flag token, then one token per active boolean in a fixed
// order, then the exclude tokens in input order. Pure, no I/O.
func BuildBaseArgs(cfg Config) []string {
	args := []string{baseFlags}

	toggles := []struct {
		enabled bool
		token   string
	}{
		{cfg.Delete, "--delete"},
		{cfg.Verbose, "--verbose"},
		{cfg.Progress, "--progress"},
		{cfg.Owner, "--owner"},
		{cfg.Group, "--group"},
		{cfg.Executability, "--executability"},
		{cfg.DryRun, "--dry-run"},
		{cfg.DeleteExcluded, "--delete-excluded"},
	}
	for _, toggle := range toggles {
		if toggle.enabled {
			args = append(args, toggle.token)
		}
	}

	for _, pattern := range cfg.Excludes {
		args = append(args, "--exclude="+pattern)
	}

	return args
}
