package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"
	"github.com/syifan/goseth"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/stepsim/examples/ballistics"
	"github.com/sarchlab/stepsim/sim"
	"github.com/sarchlab/stepsim/simulation"
	"github.com/sarchlab/stepsim/world"
)

const (
	envRecord  = "STEPSIM_RECORD"
	envVerbose = "STEPSIM_VERBOSE"
)

type runOptions struct {
	scenario string
	until    int64
	record   string
	verbose  bool
	dump     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a ballistics scenario.",
	Long: "`run --scenario file.yaml` loads the bodies and events of a " +
		"scenario and simulates it until the scenario's end time.",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOptions{}
		opts.scenario, _ = cmd.Flags().GetString("scenario")
		opts.until, _ = cmd.Flags().GetInt64("until")
		opts.record, _ = cmd.Flags().GetString("record")
		opts.verbose, _ = cmd.Flags().GetBool("verbose")
		opts.dump, _ = cmd.Flags().GetBool("dump")
		applyEnvDefaults(cmd, &opts)

		err := runScenario(opts, os.Stdout, os.Stderr)
		if err != nil {
			atexit.Fatalf("Error: %v", err)
		}

		atexit.Exit(0)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("scenario", "", "Scenario file in YAML")
	runCmd.Flags().Int64("until", -1,
		"Time to simulate to, in ms. Defaults to the scenario's end time")
	runCmd.Flags().String("record", "",
		"Record the executed steps into <record>.sqlite3")
	runCmd.Flags().Bool("verbose", false, "Print every executed step")
	runCmd.Flags().Bool("dump", false, "Print the final state of every body")
	_ = runCmd.MarkFlagRequired("scenario")
}

func applyEnvDefaults(cmd *cobra.Command, opts *runOptions) {
	if !cmd.Flags().Changed("record") {
		opts.record = os.Getenv(envRecord)
	}

	if !cmd.Flags().Changed("verbose") {
		v, err := strconv.ParseBool(os.Getenv(envVerbose))
		if err == nil {
			opts.verbose = v
		}
	}
}

func runScenario(opts runOptions, out io.Writer, logOut io.Writer) error {
	f, err := os.Open(opts.scenario)
	if err != nil {
		return err
	}
	defer f.Close()

	scenario, err := ballistics.LoadScenario(f)
	if err != nil {
		return err
	}

	w := world.New()
	scenario.Populate(w)

	builder := simulation.MakeBuilder().WithWorld(w)
	if opts.record == "" {
		builder = builder.WithoutRecording()
	} else {
		builder = builder.WithOutputFileName(opts.record)
	}

	if opts.verbose {
		builder = builder.WithLogger(log.New(logOut, "", 0))
	}

	s := builder.Build()

	until := scenario.Until
	if opts.until >= 0 {
		until = sim.VTime(opts.until)
	}

	runErr := s.RunTo(until)

	termErr := s.Terminate()
	if runErr != nil {
		return runErr
	}

	if termErr != nil {
		return termErr
	}

	printSummary(out, s)

	if opts.dump {
		return dumpBodies(out, w)
	}

	return nil
}

func printSummary(out io.Writer, s *simulation.Simulation) {
	now, _ := s.Now()
	counts := s.StepCounts()

	fmt.Fprintf(out, "simulation %s\n", s.ID())
	fmt.Fprintf(out, "time: %d ms\n", now)
	fmt.Fprintf(out, "integrate steps: %d (%.3fs)\n",
		counts.IntegrateSteps(), s.IntegratedTime().TotalSeconds())
	fmt.Fprintf(out, "events fired: %d\n", counts.EventSteps())
	for _, name := range counts.EventTypeNames() {
		fmt.Fprintf(out, "  %s: %d\n", name, counts.EventCount(name))
	}
	fmt.Fprintf(out, "entities: %d\n", s.World().NumEntities())

	rss, err := residentMemory()
	if err == nil {
		fmt.Fprintf(out, "memory: %s\n", humanize.Bytes(rss))
	}
}

func residentMemory() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}

	return mem.RSS, nil
}

func dumpBodies(out io.Writer, w *world.World) error {
	for _, id := range w.EntityIDs() {
		entity, _ := w.Entity(id)

		fmt.Fprintf(out, "%s: ", id)

		serializer := goseth.NewSerializer()
		serializer.SetRoot(entity)
		serializer.SetMaxDepth(1)

		err := serializer.Serialize(out)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
	}

	return nil
}
