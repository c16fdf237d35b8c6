package scheduler

import (
	"fmt"
	"io"
)

// Interactive queue names on the target cluster. The GPU queue is selected
// when the job requests GPUs, the CPU queue otherwise.
const (
	QueueInteractiveGpu = "interactive_gpu"
	QueueInteractiveCpu = "interactive_cpu"
)

// JobSpec combines a ResourceSpec with scheduler-level job metadata.
// Stdout/Stderr may be left empty; the generator fills them from the job
// path convention before rendering.
type JobSpec struct {
	Resources *ResourceSpec
	Modules   []string // Environment modules, loaded in order
	Account   string   // Allocation code (#PBS -A)
	JobName   string   // Job name (#PBS -N)
	Stdout    string   // Stdout log path, empty = not yet assigned
	Stderr    string   // Stderr log path, empty = not yet assigned

	Interactive   bool
	X11Forwarding bool
}

// NewJobSpec builds a batch JobSpec. X11 forwarding defaults to the
// interactive setting, which is false here; interactive jobs go through
// NewInteractiveJobSpec or set the fields directly.
func NewJobSpec(resources *ResourceSpec, modules []string, account, jobName string) *JobSpec {
	return &JobSpec{
		Resources: resources,
		Modules:   modules,
		Account:   account,
		JobName:   jobName,
	}
}

// NewInteractiveJobSpec builds an interactive JobSpec with X11 forwarding
// enabled, matching the X11-defaults-to-interactive contract.
func NewInteractiveJobSpec(resources *ResourceSpec, modules []string, account, jobName string) *JobSpec {
	job := NewJobSpec(resources, modules, account, jobName)
	job.Interactive = true
	job.X11Forwarding = true
	return job
}

// Validate checks construction-time contracts before any rendering or
// filesystem mutation.
func (j *JobSpec) Validate() error {
	if j.Resources == nil {
		return ErrNoResources
	}
	if j.X11Forwarding && !j.Interactive {
		return ErrX11NeedsInteractive
	}
	return nil
}

// WriteHeader renders the shebang, the #PBS directive block, and the module
// load lines to w. Directive order matters to the scheduler and module order
// matters to module dependency resolution; both are preserved exactly.
// Empty log paths produce no -o/-e directive.
func (j *JobSpec) WriteHeader(w io.Writer) error {
	list, err := j.Resources.ResourceList()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "#!/bin/bash")
	fmt.Fprintf(w, "#PBS -l %s\n", list)
	fmt.Fprintf(w, "#PBS -A %s\n", j.Account)
	fmt.Fprintf(w, "#PBS -N %s\n", j.JobName)
	if j.Stdout != "" {
		fmt.Fprintf(w, "#PBS -o %s\n", j.Stdout)
	}
	if j.Stderr != "" {
		fmt.Fprintf(w, "#PBS -e %s\n", j.Stderr)
	}
	fmt.Fprintln(w, "#PBS -j oe")

	if j.Interactive {
		fmt.Fprintln(w, "#PBS -I")
		queue := QueueInteractiveCpu
		if j.Resources.Ngpus != nil {
			queue = QueueInteractiveGpu
		}
		fmt.Fprintf(w, "#PBS -q %s\n", queue)
	}
	if j.X11Forwarding {
		fmt.Fprintln(w, "#PBS -X")
	}

	for _, mod := range j.Modules {
		fmt.Fprintf(w, "module load %s\n", mod)
	}

	return nil
}
