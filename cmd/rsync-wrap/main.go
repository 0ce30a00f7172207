package main

import (
	"errors"
	"os"
	"strings"

	"github.com/MarkoPoloResearchLab/rsync_wrap/internal/logging"
	"github.com/MarkoPoloResearchLab/rsync_wrap/internal/rsync"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	logger  *zap.Logger
	rootCmd = &cobra.Command{
		Use:   "rsync-wrap",
		Short: "A simple interface to help to synchronize files and folders using rsync",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := rsync.Inputs{
				Origin:      viper.GetString("origin"),
				Dest:        viper.GetString("dest"),
				Folders:     viper.GetStringSlice("folders"),
				Files:       viper.GetStringSlice("files"),
				Excludes:    viper.GetStringSlice("exclude"),
				ExcludeFrom: viper.GetString("exclude-from"),

				Delete:         viper.GetBool("delete"),
				Verbose:        viper.GetBool("verbose"),
				Progress:       viper.GetBool("progress"),
				Owner:          viper.GetBool("owner"),
				Group:          viper.GetBool("group"),
				Executability:  viper.GetBool("executability"),
				DryRun:         viper.GetBool("dry-run"),
				DeleteExcluded: viper.GetBool("delete-excluded"),
				Mirroring:      viper.GetBool("mirroring"),
				EnableAll:      viper.GetBool("enable-all"),
				PrintCmdOnly:   viper.GetBool("print-cmd-only"),

				RsyncPath: viper.GetString("rsync-path"),
			}

			if inputs.Origin == "" || inputs.Dest == "" {
				err := errors.New("--origin and --dest are required")
				logger.Error("missing required flags", zap.Error(err))
				return err
			}

			cfg, err := rsync.Resolve(inputs, logger)
			if err != nil {
				logger.Error("resolve configuration", zap.Error(err))
				return err
			}

			if err := rsync.Run(cmd.Context(), cfg, os.Stdout, logger); err != nil {
				logger.Error("synchronization failed", zap.Error(err))
				return err
			}

			return nil
		},
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.String("origin", "", "where folders/files come from")
	flags.String("dest", "", "where folders/files go to")
	flags.StringSlice("folders", nil, "folders to synchronize their contents")
	flags.StringSlice("files", nil, "files to be synchronized")
	flags.StringSlice("exclude", nil, "patterns to be ignored")
	flags.String("exclude-from", "", "file with extra exclude patterns, one per line")

	flags.Bool("delete", false, "delete extraneous files from destination dirs")
	flags.Bool("verbose", false, "increase verbosity")
	flags.Bool("progress", false, "show progress during transfer")
	flags.Bool("owner", false, "preserve owners")
	flags.Bool("group", false, "preserve groups")
	flags.Bool("executability", false, "preserve executability")
	flags.Bool("dry-run", false, "perform a trial run with no changes made")
	flags.Bool("delete-excluded", false, "delete excluded files from destination folders")
	flags.Bool("mirroring", false, "enable delete, owner, group, and executability options")
	flags.Bool("enable-all", false, "enable delete, verbose, progress, owner, group, executability, and delete-excluded options")
	flags.Bool("print-cmd-only", false, "print the rsync commands without executing them")

	flags.String("rsync-path", "", "rsync binary to invoke")
	flags.String("log-level", "info", "log level")

	viper.SetEnvPrefix("RSYNC_WRAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	bindFlags()

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.NewLogger()
		if err != nil {
			return err
		}
		return nil
	}
}

func bindFlags() {
	flags := rootCmd.Flags()
	for _, name := range []string{
		"origin", "dest", "folders", "files", "exclude", "exclude-from",
		"delete", "verbose", "progress", "owner", "group", "executability",
		"dry-run", "delete-excluded", "mirroring", "enable-all",
		"print-cmd-only", "rsync-path", "log-level",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
			_ = logger.Sync()
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
	if logger != nil {
		_ = logger.Sync()
	}
}
