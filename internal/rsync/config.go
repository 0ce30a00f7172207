package rsync

// Inputs carries the raw command-line values before validation.
type Inputs struct {
	Origin      string
	Dest        string
	Folders     []string
	Files       []string
	Excludes    []string
	ExcludeFrom string

	Delete         bool
	Verbose        bool
	Progress       bool
	Owner          bool
	Group          bool
	Executability  bool
	DryRun         bool
	DeleteExcluded bool
	Mirroring      bool
	EnableAll      bool
	PrintCmdOnly   bool

	RsyncPath string
}

// Config is a fully resolved, immutable description of one run. Folder
// and file targets are origin-relative and verified to exist; the
// boolean convenience flags (mirroring, enable-all) have already been
// expanded into the individual toggles.
type Config struct {
	Origin string
	Dest   string

	Folders  []string
	Files    []string
	Excludes []string

	Delete         bool
	Verbose        bool
	Progress       bool
	Owner          bool
	Group          bool
	Executability  bool
	DryRun         bool
	DeleteExcluded bool
	Mirroring      bool
	PrintCmdOnly   bool

	RsyncPath string
}
