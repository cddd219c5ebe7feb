package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/swangridgo/internal/app"
	"github.com/specialistvlad/swangridgo/internal/schema"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/spf13/cobra"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	CodeFailure = 1
	CodeUsage   = 2
)

// usageError marks flag and argument mistakes.
func usageError(err error) error {
	return &ExitError{Code: CodeUsage, Message: err.Error()}
}

// flags are shared by every command.
type flags struct {
	stagingDir string
	outName    string
	start      string
	end        string
	interval   string
	logFormat  string
	logLevel   string
}

func (f *flags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&f.stagingDir, "staging-dir", ".", "Directory the control file is written to.")
	fs.StringVar(&f.outName, "out-name", app.DefaultOutputName, "File name of the control file.")
	fs.StringVar(&f.start, "start", "", "Run period start, e.g. 2020-01-01T00:00:00Z.")
	fs.StringVar(&f.end, "end", "", "Run period end.")
	fs.StringVar(&f.interval, "interval", "", "Run period step, e.g. 1h or PT30M.")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
}

// period returns the run period when all three flags are set. Setting only
// some of them is a usage error.
func (f *flags) period() (*subcomponent.Period, error) {
	set := 0
	for _, v := range []string{f.start, f.end, f.interval} {
		if v != "" {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 3:
	default:
		return nil, errors.New("--start, --end and --interval must be given together")
	}

	start, err := subcomponent.ParseTime(f.start)
	if err != nil {
		return nil, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := subcomponent.ParseTime(f.end)
	if err != nil {
		return nil, fmt.Errorf("invalid --end: %w", err)
	}
	interval, err := subcomponent.ParseDuration(f.interval)
	if err != nil {
		return nil, fmt.Errorf("invalid --interval: %w", err)
	}
	return &subcomponent.Period{Start: start, End: end, Interval: interval}, nil
}

func (f *flags) config(input string) (*app.Config, error) {
	period, err := f.period()
	if err != nil {
		return nil, err
	}
	return app.NewConfig(app.Config{
		InputPath:  input,
		StagingDir: f.stagingDir,
		OutputName: f.outName,
		LogFormat:  strings.ToLower(f.logFormat),
		LogLevel:   strings.ToLower(f.logLevel),
		Period:     period,
	})
}

// NewCommand builds the root command. Command output goes to out and logs
// to logW.
func NewCommand(out, logW io.Writer) *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:   "swangrid",
		Short: "Render SWAN control files from HCL or YAML descriptions.",
		Long: `swangrid validates a wave model configuration written in HCL or YAML
and renders it as a SWAN INPUT file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })
	f.register(root)

	root.AddCommand(&cobra.Command{
		Use:   "render INPUT_PATH",
		Short: "Validate the input and write the control file into the staging directory.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(&f, args[0], logW)
			if err != nil {
				return err
			}
			path, err := a.Run(cmd.Context())
			if err != nil {
				return fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "validate INPUT_PATH",
		Short: "Validate the input without writing anything.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(&f, args[0], logW)
			if err != nil {
				return err
			}
			if err := a.Validate(cmd.Context()); err != nil {
				return fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	})
	return root
}

func newApp(f *flags, input string, logW io.Writer) (*app.App, error) {
	cfg, err := f.config(input)
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(logW, cfg), nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// fail maps a run error to its exit code: an invalid configuration is the
// caller's mistake, anything else is a failure.
func fail(err error) error {
	if errors.Is(err, schema.ErrSchema) {
		return &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	return &ExitError{Code: CodeFailure, Message: err.Error()}
}

// Execute runs the command line in args.
func Execute(ctx context.Context, args []string, out, logW io.Writer) error {
	cmd := NewCommand(out, logW)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// Unknown commands and similar come straight from cobra.
		return usageError(err)
	}
	return err
}
