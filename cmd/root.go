package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ittoolkit/itk/internal/actionlog"
	"github.com/ittoolkit/itk/internal/config"
	"github.com/ittoolkit/itk/internal/logging"
	"github.com/ittoolkit/itk/internal/privilege"
	"github.com/ittoolkit/itk/internal/runner"
	"github.com/ittoolkit/itk/internal/scanlock"
	"github.com/ittoolkit/itk/internal/toolkit"
	"github.com/ittoolkit/itk/internal/version"
	"github.com/ittoolkit/itk/tui"
	helpmenus "github.com/ittoolkit/itk/tui/help-menus"
)

var log = logging.L("cmd")

// annotationAdmin marks commands that change system state and therefore
// need an elevated process.
const annotationAdmin = "itk/admin"

var (
	cfgFile  string
	logFile  string
	dryRun   bool
	debugLog bool
)

// session is what PersistentPreRunE builds for the command being run.
type session struct {
	cfg  *config.Config
	tk   *toolkit.Toolkit
	diag io.Closer
}

var current *session

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itk",
	Short: "Windows IT toolkit",
	Long: "itk bundles the everyday Windows fixes of a helpdesk technician: network resets,\n" +
		"Remote Desktop, account queries, image health scans and clock changes.\n" +
		"Run it without arguments for the interactive toolkit.",
	Version:       version.BuildVersion,
	SilenceErrors: true,
	SilenceUsage:  true,
	Annotations:   map[string]string{annotationAdmin: "true"},
	RunE:          runApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	WrapCommandWithSentry(rootCmd)

	c, err := rootCmd.ExecuteContextC(ctx)
	closeSession()
	if err != nil {
		if c != nil {
			CaptureCommandError(c, err)
		}
		PrintError(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	tui.InitCommonStyles(os.Stdout)

	rootCmd.PersistentPreRunE = setup

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderRootHelp(cmd)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is "+config.Dir()+"/itk.yaml)")
	pf.StringVar(&logFile, "log-file", "", "action log path (default is "+actionlog.DefaultPath()+")")
	pf.BoolVar(&dryRun, "dry-run", false, "print commands instead of running them")
	pf.BoolVar(&debugLog, "debug", false, "write debug diagnostics to stderr")

	rootCmd.AddCommand(newCompletionCmd())
}

func newCompletionCmd() *cobra.Command {
	completionCmd := &cobra.Command{
		Use:   "completion [shell]",
		Short: "Generate the autocompletion script for itk for the specified shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
		},
	}
	completionCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpmenus.RenderCommandHelp(cmd,
			helpmenus.Example{Comment: "Load completions into the current PowerShell session", Command: "itk completion powershell | Out-String | Invoke-Expression"},
			helpmenus.Example{Comment: "Load completions for bash", Command: "source <(itk completion bash)"},
		)
	})

	shells := []struct {
		name string
		gen  func(w io.Writer) error
	}{
		{"bash", func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) }},
		{"zsh", rootCmd.GenZshCompletion},
		{"fish", func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) }},
		{"powershell", rootCmd.GenPowerShellCompletionWithDesc},
	}
	for _, sh := range shells {
		completionCmd.AddCommand(&cobra.Command{
			Use:   sh.name,
			Short: "Generate the autocompletion script for " + sh.name,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sh.gen(cmd.OutOrStdout())
			},
		})
	}
	return completionCmd
}

// setup loads configuration, starts diagnostic logging and builds the
// toolkit. Commands annotated as mutating also get the admin check.
func setup(cmd *cobra.Command, args []string) error {
	closeSession()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	s := &session{cfg: cfg}
	s.diag = initDiagnostics(cmd, cfg)
	current = s

	log.Debug("starting", "command", cmd.CommandPath(), "version", version.BuildVersion, "dry_run", dryRun)

	if needsAdmin(cmd) && cfg.RequireAdmin && !dryRun {
		if err := privilege.Require(); err != nil {
			return err
		}
	}

	s.tk = newToolkit(cfg)
	return nil
}

// initDiagnostics routes slog output to the rotating diagnostics file. The
// interactive toolkit never logs to the terminal it draws on.
func initDiagnostics(cmd *cobra.Command, cfg *config.Config) io.Closer {
	level := cfg.DiagLogLevel
	if debugLog {
		level = "debug"
	}

	var out io.Writer = io.Discard
	var closer io.Closer
	rw, err := logging.NewRotatingWriter(cfg.DiagLogFile, 10<<20, 3)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatWarningSimple(fmt.Sprintf("diagnostic log unavailable: %v", err)))
	} else {
		out, closer = rw, rw
	}

	if debugLog && cmd != rootCmd {
		out = io.MultiWriter(out, cmd.ErrOrStderr())
	}

	logging.Init(cfg.DiagLogFormat, level, out)
	return closer
}

func newToolkit(cfg *config.Config) *toolkit.Toolkit {
	path := cfg.LogFile
	if path == "" {
		path = actionlog.DefaultPath()
	}

	opts := []toolkit.Option{
		toolkit.WithCommandTimeout(cfg.CommandTimeout()),
		toolkit.WithHealthStepTimeout(cfg.HealthStepTimeout()),
		toolkit.WithScanLock(filepath.Join(filepath.Dir(path), scanlock.FileName)),
	}

	var exec runner.Executor = runner.NewExec()
	if dryRun {
		exec = runner.NewDryRun()
		opts = append(opts, toolkit.WithRegistry(toolkit.NewDryRunRegistry()))
	}

	return toolkit.New(exec, actionlog.New(path), opts...)
}

func needsAdmin(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationAdmin] == "true"
}

func closeSession() {
	if current != nil && current.diag != nil {
		_ = current.diag.Close()
	}
	current = nil
}

func runApp(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	updates := current.tk.Log().Watch(ctx, current.cfg.LogRefreshInterval())
	return tui.RunApp(ctx, current.tk, updates)
}
