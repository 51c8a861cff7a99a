// Package main provides the CLI entry point for glance.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mward/glance"
	"github.com/mward/glance/internal/config"
	"github.com/mward/glance/internal/imgload"
	"github.com/mward/glance/internal/logging"
)

const appVersion = "0.1.0"

type cliArgs struct {
	loop        bool
	readahead   int
	stepTime    int
	memLimit    int
	timeout     int
	aspect      bool
	serverSize  bool
	blockInput  bool
	noSysflt    bool
	displayPath string
	verbose     bool
	silent      bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var ca cliArgs

	cmd := &cobra.Command{
		Use:   "glance [flags] file1 .. filen",
		Short: "View a playlist of images with bounded prefetch",
		Long: `Glance steps through a playlist of images, decoding each one in a
sandboxed worker process. At most --readahead entries are decoded ahead
of the cursor, and workers that outlive --timeout are killed so a
hostile file never stalls the playlist. Use "-" as a filename to read
one image from standard input.`,
		Version: appVersion,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runView(ca, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&ca.loop, "loop", "l", false, "loop playlist instead of stopping at the end")
	f.IntVarP(&ca.readahead, "readahead", "r", config.DefaultReadahead, "number of entries to decode ahead of the cursor")
	f.IntVarP(&ca.stepTime, "step-time", "t", 0, "auto-step interval in seconds, 0 disables")
	f.IntVarP(&ca.memLimit, "limit-mem", "m", config.DefaultMemLimitMB, "per-worker decode memory limit in MB")
	f.IntVarP(&ca.timeout, "timeout", "T", 0, "kill decode workers after this many seconds, 0 disables")
	f.BoolVarP(&ca.aspect, "aspect", "a", false, "preserve source aspect ratio when scaling")
	f.BoolVarP(&ca.serverSize, "server-size", "S", false, "keep the server-suggested output size")
	f.BoolVarP(&ca.blockInput, "block-input", "b", false, "ignore all input events")
	f.BoolVarP(&ca.noSysflt, "no-sysflt", "X", false, "disable decode worker resource limits")
	f.StringVarP(&ca.displayPath, "display", "d", "", "display connection path override")
	f.BoolVarP(&ca.verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&ca.silent, "silent", false, "suppress session progress output")

	cmd.AddCommand(workerCmd())
	return cmd
}

func runView(ca cliArgs, names []string) error {
	level := slog.LevelWarn
	if ca.verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, os.Stderr)

	opts := []glance.Option{
		glance.WithReadahead(ca.readahead),
		glance.WithMemLimit(ca.memLimit),
		glance.WithStepTime(ca.stepTime),
		glance.WithWorkerTimeout(ca.timeout),
		glance.WithDisplayPath(ca.displayPath),
	}
	if ca.loop {
		opts = append(opts, glance.WithLoop())
	}
	if ca.aspect {
		opts = append(opts, glance.WithAspect())
	}
	if ca.serverSize {
		opts = append(opts, glance.WithServerSize())
	}
	if ca.blockInput {
		opts = append(opts, glance.WithBlockInput())
	}
	if ca.noSysflt {
		opts = append(opts, glance.WithoutSandbox())
	}

	viewer, err := glance.New(opts...)
	if err != nil {
		return err
	}

	var rep glance.Reporter
	if !ca.silent {
		rep = glance.NewTerminalReporter()
	}
	return viewer.View(rep, names...)
}

// workerCmd is the hidden decode child. The viewer re-executes its own
// binary with this subcommand, one worker per playlist entry.
func workerCmd() *cobra.Command {
	var limitMB int
	var noSysflt bool

	cmd := &cobra.Command{
		Use:    imgload.WorkerCommand + " [flags] name",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return imgload.WorkerMain(args[0], limitMB, !noSysflt, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().IntVar(&limitMB, "limit-mem", config.DefaultMemLimitMB, "decode memory limit in MB")
	cmd.Flags().BoolVar(&noSysflt, "no-sysflt", false, "disable worker resource limits")
	return cmd
}
