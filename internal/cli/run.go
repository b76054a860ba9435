package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cpusched/internal/config"
	"cpusched/internal/logging"
	"cpusched/internal/report"
	"cpusched/internal/sched"
	"cpusched/internal/workload"
)

const (
	defaultInput  = "input.data"
	defaultOutput = "output.data"
)

func newRunCmd() *cobra.Command {
	var (
		flagPolicy    string
		flagPreempt   bool
		flagNoPreempt bool
		flagQuantum   int
		flagInput     string
		flagOutput    string
		flagFormat    string
		flagTickMS    int
		flagSummary   bool
		flagGantt     bool
	)

	cmd := &cobra.Command{
		Use:   "run [sjf|ph|pl|rr]",
		Short: "Simulate a workload and write its timeline",
		Long: "Simulate the processes in the input file under one policy.\n" +
			"The policy may be given as the first argument or with --policy.\n" +
			"Preemption and quantum default to the input file's header.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if len(args) == 1 {
				settings.Policy = args[0]
			} else if flags.Changed("policy") {
				settings.Policy = flagPolicy
			}
			if flagPreempt && flagNoPreempt {
				return &sched.ConfigurationError{Field: "preemptive", Value: "-P -p", Reason: "cannot force both on and off"}
			}
			switch {
			case flagPreempt:
				on := true
				settings.Preemptive = &on
			case flagNoPreempt:
				off := false
				settings.Preemptive = &off
			}
			if flags.Changed("quantum") {
				q := flagQuantum
				settings.Quantum = &q
			}
			if flags.Changed("input") {
				settings.Input = flagInput
			}
			if flags.Changed("output") {
				settings.Output = flagOutput
			}
			if flags.Changed("format") {
				settings.Format = flagFormat
			}
			if flags.Changed("tick-ms") {
				settings.TickMS = flagTickMS
			}
			if flags.Changed("summary") {
				settings.Summary = flagSummary
			}
			if flags.Changed("gantt") {
				settings.Gantt = flagGantt
			}
			return runSimulation(cmd, settings)
		},
	}

	cmd.Flags().StringVar(&flagPolicy, "policy", "sjf", "Scheduling policy (sjf, ph, pl, rr)")
	cmd.Flags().BoolVarP(&flagPreempt, "preemptive", "P", false, "Force preemptive mode")
	cmd.Flags().BoolVarP(&flagNoPreempt, "no-preempt", "p", false, "Force non-preemptive mode")
	cmd.Flags().IntVar(&flagQuantum, "quantum", 1, "Round-robin time quantum (overrides the input header)")
	cmd.Flags().StringVarP(&flagInput, "input", "i", defaultInput, "Input workload (.data or .yaml)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Timeline output file (default derived from input)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Timeline format (text, csv)")
	cmd.Flags().IntVar(&flagTickMS, "tick-ms", 0, "Wall-clock milliseconds per simulated tick (0 = unpaced)")
	cmd.Flags().BoolVar(&flagSummary, "summary", true, "Print the per-process summary table")
	cmd.Flags().BoolVar(&flagGantt, "gantt", false, "Print a Gantt chart")

	return cmd
}

func runSimulation(cmd *cobra.Command, f config.File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	policy, _ := sched.ParsePolicy(f.Policy)
	format, err := report.ParseFormat(f.Format)
	if err != nil {
		return err
	}

	wl, err := workload.Load(f.Input)
	if err != nil {
		return err
	}

	cfg := sched.Config{
		Policy:     policy,
		Preemptive: wl.Preemptive,
		Quantum:    wl.Quantum,
		TickMS:     f.TickMS,
	}
	if f.Preemptive != nil {
		cfg.Preemptive = *f.Preemptive
	}
	if f.Quantum != nil {
		cfg.Quantum = *f.Quantum
	}

	log := logger.With("input", f.Input)
	engine, err := sched.New(wl.Processes, cfg, log)
	if err != nil {
		return err
	}
	eff := engine.Config()
	log.Info("scheduler constructed",
		"policy", eff.Policy.String(),
		"preemptive", eff.Preemptive,
		"quantum", eff.Quantum,
		"processes", len(wl.Processes))

	res, err := engine.Run(cmd.Context())
	if err != nil {
		log.Error("simulation aborted", logging.ErrAttr(err))
		return err
	}

	out := f.Output
	if out == "" {
		out = outputPath(f.Input, format)
	}
	if err := writeTimelineFile(out, res.Events, format); err != nil {
		return err
	}
	log.Info("timeline written", "path", out, "format", string(format))

	if f.Quiet {
		return nil
	}
	stdout := cmd.OutOrStdout()
	if f.Gantt {
		report.WriteGantt(stdout, res.Events)
	}
	if f.Summary {
		report.WriteSummary(stdout, res)
	}
	return nil
}

// outputPath derives "<name>_out.<ext>" from the input name; the default
// input maps to the default output. YAML inputs get a .data timeline and CSV
// timelines always end in .csv.
func outputPath(input string, format report.Format) string {
	if input == defaultInput && format == report.FormatText {
		return defaultOutput
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	switch {
	case format == report.FormatCSV:
		ext = ".csv"
	case strings.EqualFold(ext, ".yml"), strings.EqualFold(ext, ".yaml"):
		ext = ".data"
	}
	return base + "_out" + ext
}

func writeTimelineFile(path string, events []sched.Event, format report.Format) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating timeline: %w", err)
	}
	if err := report.WriteTimeline(fh, events, format); err != nil {
		fh.Close()
		return fmt.Errorf("writing timeline: %w", err)
	}
	return fh.Close()
}
