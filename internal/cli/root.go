// Package cli implements the randomizer command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/randomizer/internal/logging"
	"github.com/mesh-intelligence/randomizer/internal/paths"
	"github.com/mesh-intelligence/randomizer/internal/pool"
	"github.com/mesh-intelligence/randomizer/internal/printer"
	"github.com/mesh-intelligence/randomizer/internal/store"
	"github.com/mesh-intelligence/randomizer/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// annotationTolerateLoad marks commands that still run when stored tables
// cannot be loaded. The pool starts empty for them.
const annotationTolerateLoad = "tolerate-load-error"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logLevel  string
	envFile   string
	jsonMode  bool
}

// session is the state the bootstrap builds for a single command run.
type session struct {
	flags rootFlags

	configDir string
	// configured holds values read from config.yaml, before flags apply.
	configured configFile
	cfg        types.Config

	log  *logrus.Logger
	pool *pool.Pool
	out  *printer.Printer
}

// NewRootCmd creates the top-level "randomizer" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	s := &session{}
	root := &cobra.Command{
		Use:   "randomizer",
		Short: "Draw random entries from named tables",
		Long: "Randomizer keeps named tables of text entries and draws random\n" +
			"selections from them, per table or from a unified pool.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  s.bootstrap,
		PersistentPostRunE: s.finish,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&s.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&s.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	pf.StringVar(&s.flags.backend, "backend", "", "storage backend: jsonl, sqlite, yaml or memory")
	pf.StringVar(&s.flags.logLevel, "log-level", "", "log level (default: warn)")
	pf.StringVar(&s.flags.envFile, "env-file", ".env", "environment file loaded before configuration")
	pf.BoolVar(&s.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newAddCmd(s))
	root.AddCommand(newShowCmd(s))
	root.AddCommand(newListCmd(s))
	root.AddCommand(newDeleteCmd(s))
	root.AddCommand(newClearCmd(s))
	root.AddCommand(newDrawCmd(s))

	return root
}

// Execute runs the root command against the process streams and exits with
// the matching code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run executes one command line and returns its exit code. Errors are
// printed to errOut.
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		printer.New(out, errOut).Error(err.Error(), "", suggestionsFor(err))
	}
	return exitCode(err)
}

// bootstrap resolves configuration, opens the store and loads the pool.
func (s *session) bootstrap(cmd *cobra.Command, _ []string) error {
	s.out = printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	if err := loadEnvFile(s.flags.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	s.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return systemError(err)
	}
	s.configured = configFile{
		Backend:  v.GetString(cfgKeyBackend),
		DataDir:  v.GetString(cfgKeyDataDir),
		LogLevel: v.GetString(cfgKeyLogLevel),
	}

	s.log = logging.New(logging.ResolveLevel(s.flags.logLevel, s.configured.LogLevel), cmd.ErrOrStderr())

	backend := s.flags.backend
	if backend == "" {
		backend = s.configured.Backend
	}
	dataDir, err := paths.ResolveDataDir(s.flags.dataDir, s.configured.DataDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve data dir: %w", err))
	}
	s.cfg = types.Config{Backend: backend, DataDir: dataDir}
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("backend %q: %w", backend, err)
	}

	st, err := store.Open(s.cfg)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"backend": backend,
		"path":    st.Location(),
	}).Debug("store opened")

	s.pool = pool.New(st, s.log.WithField("backend", backend))
	if _, err := s.pool.Load(); err != nil {
		if cmd.Annotations[annotationTolerateLoad] == "" {
			return err
		}
		s.out.Warning("ignoring unreadable tables: %v", err)
	}
	return nil
}

// finish saves tables a command left unsaved.
func (s *session) finish(_ *cobra.Command, _ []string) error {
	if s.pool == nil || !s.pool.Dirty() {
		return nil
	}
	return s.pool.Save()
}

// sysError marks failures that are not caused by user input.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func systemError(err error) error {
	return &sysError{err: err}
}

// exitCode maps an error to the process exit code. Persistence and system
// failures exit with 2; everything else the user can fix exits with 1.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) || errors.Is(err, types.ErrPersistence) {
		return exitSysError
	}
	return exitUserError
}

// suggestionsFor returns follow-up hints for common user errors.
func suggestionsFor(err error) []string {
	switch {
	case types.IsNotFound(err):
		return []string{"Run 'randomizer list' to see the stored tables."}
	case errors.Is(err, types.ErrCountExceedsTable), errors.Is(err, types.ErrCountExceedsPool):
		return []string{"Lower the count, or append ':repeat' to the --table value to allow repeats."}
	case errors.Is(err, types.ErrCorruptData), errors.Is(err, types.ErrUnsupportedVersion):
		return []string{"Restore the data file from a backup, or run 'randomizer clear --yes' to start over."}
	case errors.Is(err, types.ErrBackendUnknown), errors.Is(err, types.ErrBackendEmpty):
		return []string{fmt.Sprintf("Use one of: %v.", types.Backends())}
	}
	return nil
}
