package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rohankatakam/git-hours/internal/config"
	"github.com/rohankatakam/git-hours/internal/errors"
	"github.com/rohankatakam/git-hours/internal/logging"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	exitOK    = 0
	exitFatal = 1 // critical errors: shallow clone, unreadable repository, invalid configuration
	exitError = 2 // everything else, e.g. usage errors
)

func main() {
	color.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))
	os.Exit((&app{}).execute(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries the state shared by the root command and its subcommands for one run
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *logging.Logger
	log    *logrus.Entry
}

// execute runs the command line and returns the process exit code
func (a *app) execute(args []string, stdout, stderr io.Writer) int {
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil && a.log != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"error_type": errors.GetType(err).String(),
			"severity":   errors.GetSeverity(err).String(),
		}).Debug("Run failed")
	}
	if a.logger != nil {
		a.logger.Close()
	}

	if err == nil {
		return exitOK
	}

	reportError(stderr, err, a.verbose)
	if errors.IsFatal(err) {
		return exitFatal
	}
	return exitError
}

// reportError prints the red "Error:" line, the structured detail under --verbose and a
// hint for configuration problems
func reportError(w io.Writer, err error, verbose bool) {
	color.New(color.FgRed, color.Bold).Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	var e *errors.Error
	if verbose && stderrors.As(err, &e) {
		fmt.Fprint(w, e.DetailedString())
	}

	if errors.IsType(err, errors.ErrorTypeConfig) || errors.IsType(err, errors.ErrorTypeValidation) {
		fmt.Fprintln(w, "Run `git-hours config show` to inspect the effective configuration.")
	}
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-hours",
		Short: "Estimate the hours each author spent on a git repository",
		Long: `git-hours walks every commit reachable from the repository's branches, groups
the commit times by author email and turns them into an hour estimate using a
coding-session heuristic: commits closer together than --max-commit-diff belong
to one session, and every new session is credited --first-commit-add minutes.`,
		Version:           Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runEstimate,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: .git-hours/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.IntP("max-commit-diff", "d", 120, "maximum minutes between two commits of one session")
	flags.IntP("first-commit-add", "f", 120, "minutes credited for the first commit of a session")
	flags.BoolP("merge-commits", "m", true, "count merge commits")
	flags.StringP("branch", "b", "", "branch name or glob to analyze (default: all branches)")
	flags.StringP("path", "p", ".", "path inside the repository to analyze")
	flags.StringP("format", "o", "text", "output format: text, json or yaml")
	flags.String("sort", "hours", "report order: hours or commits")

	rootCmd.SetVersionTemplate(`git-hours {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// setup loads and validates the configuration and starts the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	result := cfg.Validate()
	if err := result.Err(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		JSONFormat: cfg.Log.Format == "json",
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
	}, cmd.ErrOrStderr())
	if err != nil {
		return errors.FileSystemError(err, "failed to start logging")
	}

	a.cfg = cfg
	a.logger = logger
	a.log = logger.Run()

	if path := logger.FilePath(); path != "" {
		a.log.WithField("log_file", path).Debug("Logging to file")
	}
	for _, warning := range result.Warnings {
		a.log.Warn(warning)
	}
	return nil
}
