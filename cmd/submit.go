package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jondeuce/arctools/internal/config"
	"github.com/jondeuce/arctools/internal/julia"
	"github.com/jondeuce/arctools/internal/scheduler"
	"github.com/jondeuce/arctools/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	specWalltime   string
	specSelect     int
	specNcpus      int
	specNgpus      int
	specMpiprocs   int
	specOmpthreads int
	specMemGB      int
	specGpuMemGB   int

	specAccount     string
	specName        string
	specModules     []string
	specInteractive bool
	specX11         bool

	specThreads int
	specBinDir  string
	specProject string
	specEnv     []string
	specSecrets []string
	specFlags   []string
)

var submitCmd = &cobra.Command{
	Use:   "submit <script.jl> [-- <args>...]",
	Short: "Generate a PBS job script for a Julia program and submit it with qsub",
	Long: `Generate a PBS job script for a Julia program and submit it with qsub.

The script is written to <project>/pbs/<name>_job.pbs with stdout/stderr logs
and a redacted environment snapshot alongside it. Resource flags left unset
are omitted from the generated resource list.`,
	Example: `  arctools submit --walltime 00:30:00 --select 1 --ncpus 4 run.jl
  arctools submit --account st-alloc-1 --module gcc --module openmpi run.jl -- input.mat
  arctools submit --env API_TOKEN=... --secret API_TOKEN run.jl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	addSpecFlags(submitCmd)
}

// addSpecFlags registers the shared job/invocation flag set. The submit and
// script commands share the same backing variables; only one of them runs
// per invocation.
func addSpecFlags(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVar(&specWalltime, "walltime", "", "Walltime as HH:MM:SS (defaults to the configured walltime)")
	fs.IntVar(&specSelect, "select", 0, "Number of chunks (nodes)")
	fs.IntVar(&specNcpus, "ncpus", 0, "CPUs per chunk")
	fs.IntVar(&specNgpus, "ngpus", 0, "GPUs per chunk")
	fs.IntVar(&specMpiprocs, "mpiprocs", 0, "MPI ranks per chunk")
	fs.IntVar(&specOmpthreads, "ompthreads", 0, "OpenMP threads per rank (defaults to ncpus)")
	fs.IntVar(&specMemGB, "mem", 0, "Memory per chunk in GB")
	fs.IntVar(&specGpuMemGB, "gpu-mem", 0, "GPU memory in GB")

	fs.StringVar(&specAccount, "account", "", "Allocation code (defaults to the configured account)")
	fs.StringVar(&specName, "name", "", "Job name (defaults to the script basename)")
	fs.StringSliceVar(&specModules, "module", nil, "Environment module to load, repeatable, order preserved")
	fs.BoolVar(&specInteractive, "interactive", false, "Request an interactive job")
	fs.BoolVar(&specX11, "x11", false, "Enable X11 forwarding (defaults to the interactive setting)")

	fs.IntVar(&specThreads, "threads", 1, "Julia worker thread count")
	fs.StringVar(&specBinDir, "bin-dir", "", "Julia bin directory (defaults to resolving julia from config or PATH)")
	fs.StringVar(&specProject, "project", "", "Project (working) directory (defaults to the script's directory)")
	fs.StringArrayVar(&specEnv, "env", nil, "Environment variable as KEY=VALUE, repeatable, order preserved")
	fs.StringArrayVar(&specSecrets, "secret", nil, "Env var name to redact from the logged snapshot, repeatable")
	fs.StringArrayVar(&specFlags, "flag", nil, "Extra julia flag as name or name=value, repeatable")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	scriptPath, err := generateFromFlags(cmd, args)
	if err != nil {
		return err
	}

	sub := scheduler.ActiveSubmitter()
	if sub == nil || !config.Global.SubmitJob {
		utils.PrintMessage("Job script written to %s", utils.StylePath(scriptPath))
		utils.PrintHint("Submit it with: %s", utils.StyleCommand("qsub "+scriptPath))
		return nil
	}

	jobID, err := sub.Submit(scriptPath)
	if err != nil {
		return err
	}
	utils.PrintSuccess("Submitted job %s with ID %s", utils.StyleName(specName), utils.StyleNumber(jobID))
	return nil
}

// generateFromFlags builds the JobSpec and Invocation from the shared flag
// set and writes the job script. Returns the script path.
func generateFromFlags(cmd *cobra.Command, args []string) (string, error) {
	job, inv, err := buildSpecs(cmd, args)
	if err != nil {
		return "", err
	}
	return scheduler.Generate(job, inv)
}

// buildSpecs assembles a JobSpec and Invocation from the shared flag set.
// args[0] is the entry script; the rest are positional args for it.
func buildSpecs(cmd *cobra.Command, args []string) (*scheduler.JobSpec, *julia.Invocation, error) {
	fs := cmd.Flags()
	script := args[0]

	project := specProject
	if project == "" {
		abs, err := filepath.Abs(filepath.Dir(script))
		if err != nil {
			return nil, nil, err
		}
		project = abs
	}

	binDir := specBinDir
	if binDir == "" {
		resolver := &julia.ExecResolver{Binary: config.Global.JuliaBin}
		dir, err := resolver.Resolve()
		if err != nil {
			return nil, nil, err
		}
		binDir = dir
	}

	inv := &julia.Invocation{
		BinDir:  binDir,
		Threads: specThreads,
		Project: project,
		Script:  script,
		Args:    args[1:],
		Secrets: specSecrets,
	}
	env, err := parseVarEntries(specEnv, true)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range env {
		inv.Env.Set(e.Name, e.Value)
	}
	flags, err := parseVarEntries(specFlags, false)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range flags {
		if f.HasValue {
			inv.Flags.Set(f.Name, f.Value)
		} else {
			inv.Flags.SetSwitch(f.Name)
		}
	}

	job := scheduler.NewJobSpec(buildResourceSpec(fs), jobModules(), jobAccount(), jobName(script))
	job.Interactive = specInteractive
	job.X11Forwarding = specX11
	if !fs.Changed("x11") {
		job.X11Forwarding = specInteractive
	}
	return job, inv, nil
}

// buildResourceSpec maps resource flags to a ResourceSpec. Only flags the
// caller actually passed become set fields; relying on Changed keeps an
// explicit `--ompthreads 0` distinct from an unset one.
func buildResourceSpec(fs *pflag.FlagSet) *scheduler.ResourceSpec {
	intIf := func(name string, v int) *int {
		if fs.Changed(name) {
			return scheduler.Int(v)
		}
		return nil
	}

	walltime := specWalltime
	if walltime == "" {
		walltime = config.Global.Walltime
	}

	return &scheduler.ResourceSpec{
		Walltime:   walltime,
		Select:     intIf("select", specSelect),
		Ncpus:      intIf("ncpus", specNcpus),
		Ngpus:      intIf("ngpus", specNgpus),
		Mpiprocs:   intIf("mpiprocs", specMpiprocs),
		Ompthreads: intIf("ompthreads", specOmpthreads),
		MemGB:      intIf("mem", specMemGB),
		GpuMemGB:   intIf("gpu-mem", specGpuMemGB),
	}
}

func jobAccount() string {
	if specAccount != "" {
		return specAccount
	}
	return config.Global.Account
}

func jobModules() []string {
	if len(specModules) > 0 {
		return specModules
	}
	return config.Global.Modules
}

func jobName(script string) string {
	if specName != "" {
		return specName
	}
	base := filepath.Base(script)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseVarEntries splits KEY=VALUE entries. When requireValue is false a
// bare entry becomes a switch; anything after the first '=' is the value.
func parseVarEntries(entries []string, requireValue bool) ([]julia.Var, error) {
	vars := make([]julia.Var, 0, len(entries))
	for _, entry := range entries {
		name, value, found := strings.Cut(entry, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid entry %q: empty name", entry)
		}
		if !found {
			if requireValue {
				return nil, fmt.Errorf("invalid entry %q: expected KEY=VALUE", entry)
			}
			vars = append(vars, julia.Var{Name: name})
			continue
		}
		vars = append(vars, julia.Var{Name: name, Value: value, HasValue: true})
	}
	return vars, nil
}
