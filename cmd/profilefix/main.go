package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"profilefix/internal/config"
	"profilefix/internal/persistence/profilefile"
	"profilefix/internal/persistence/report"
	"profilefix/internal/repair"
)

// errStrict is returned by check --strict when the profile needs work.
var errStrict = errors.New("profile needs repair")

type app struct {
	settings config.Settings
	logger   *zap.Logger

	outPath string
	outDir  string
	report  string
	strict  bool
}

func main() {
	root, err := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := root.Execute(); err != nil {
		if errors.Is(err, errStrict) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) (*cobra.Command, error) {
	settings, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}
	a := &app{settings: settings, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "profilefix",
		Short: "Repair known corruption in game server profiles",
		Long: `profilefix loads a profile (plain or zstd-compressed JSON), runs the ordered
set of fixers over it and writes the corrected document with a change report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zapcore.InfoLevel
			if a.settings.Verbose {
				level = zapcore.DebugLevel
			}
			core := zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(cmd.ErrOrStderr()),
				level,
			)
			a.logger = zap.New(core)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVar(&a.settings.RemoveDuplicates, "remove-duplicates", a.settings.RemoveDuplicates, "remove inventory items with repeated ids")
	pf.StringVar(&a.settings.TuningPath, "config", a.settings.TuningPath, "tuning YAML overriding the built-in game data")
	pf.BoolVarP(&a.settings.Verbose, "verbose", "v", a.settings.Verbose, "debug logging")
	pf.StringVar(&a.report, "report", "", "write the change report as JSONL (.zst compresses)")

	repairCmd := &cobra.Command{
		Use:   "repair <profile>",
		Short: "Fix a profile and write the corrected document",
		Long: `Fix a profile and write it under its original file name in --out-dir,
or to --out. Use "-" to read from stdin or write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runRepair,
	}
	repairCmd.Flags().StringVarP(&a.outPath, "out", "o", "", "output path (default <out-dir>/<input name>)")
	repairCmd.Flags().StringVar(&a.outDir, "out-dir", "fixed", "directory for the corrected profile")

	checkCmd := &cobra.Command{
		Use:   "check <profile>",
		Short: "Report what repair would change without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runCheck,
	}
	checkCmd.Flags().BoolVar(&a.strict, "strict", false, "exit with status 1 when anything would change or needs attention")

	root.AddCommand(repairCmd, checkCmd)
	return root, nil
}

func (a *app) pipeline() (*repair.Pipeline, error) {
	tuning, err := config.Load(a.settings.TuningPath)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}
	return repair.New(tuning, repair.WithLogger(a.logger))
}

func (a *app) load(cmd *cobra.Command, arg string) (profilefile.File, error) {
	if arg == "-" {
		return profilefile.ReadFrom("profile.json", cmd.InOrStdin())
	}
	return profilefile.Read(arg)
}

func (a *app) process(cmd *cobra.Command, arg string) (profilefile.File, repair.Outcome, error) {
	pl, err := a.pipeline()
	if err != nil {
		return profilefile.File{}, repair.Outcome{}, err
	}
	in, err := a.load(cmd, arg)
	if err != nil {
		return profilefile.File{}, repair.Outcome{}, fmt.Errorf("read profile: %w", err)
	}
	out, err := pl.Repair(in.Data, repair.Options{RemoveDuplicates: a.settings.RemoveDuplicates})
	if err != nil {
		return in, repair.Outcome{}, fmt.Errorf("repair %s: %w", in.Name, err)
	}
	a.logger.Info("pass complete",
		zap.String("file", in.Name),
		zap.Int("entries", len(out.Log)),
		zap.Bool("modified", out.Modified),
		zap.Bool("skipped", out.Skipped),
	)
	if a.report != "" {
		if err := report.WriteEntries(a.report, in.Name, out.Log); err != nil {
			return in, out, fmt.Errorf("write report: %w", err)
		}
	}
	return in, out, nil
}

func (a *app) runRepair(cmd *cobra.Command, args []string) error {
	in, out, err := a.process(cmd, args[0])
	if err != nil {
		return err
	}

	dest := a.outPath
	if dest == "" {
		dest = filepath.Join(a.outDir, in.Name)
	}
	logTo := cmd.OutOrStdout()
	if dest == "-" {
		logTo = cmd.ErrOrStderr()
	}
	printLog(logTo, out.Log)

	if out.Skipped {
		return nil
	}
	if dest == "-" {
		return profilefile.WriteTo(cmd.OutOrStdout(), out.Output, in.Compressed)
	}
	if err := profilefile.Write(dest, out.Output, in.Compressed); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	a.logger.Info("profile written", zap.String("path", dest), zap.Bool("compressed", in.Compressed))
	return nil
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	_, out, err := a.process(cmd, args[0])
	if err != nil {
		return err
	}
	printLog(cmd.OutOrStdout(), out.Log)
	if a.strict && out.Modified {
		return errStrict
	}
	return nil
}

func printLog(w io.Writer, entries []repair.Entry) {
	for _, e := range entries {
		tag := "fixed"
		switch e.Kind {
		case repair.KindFailure:
			tag = "failed"
		case repair.KindInfo:
			tag = "info"
		}
		fmt.Fprintf(w, "[%s] %s\n", tag, e.Message)
	}
}
