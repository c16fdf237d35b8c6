// Package scheduler generates PBS job scripts and submits them via qsub.
package scheduler

import (
	"strconv"
	"strings"
)

// ResourceSpec describes the compute resources requested for a job.
// A nil pointer field (or empty Walltime) means the field is unset and is
// omitted from the rendered resource list.
type ResourceSpec struct {
	Walltime   string // HH:MM:SS, empty means unset
	Select     *int   // Number of chunks (nodes)
	Ncpus      *int   // CPUs per chunk
	Ngpus      *int   // GPUs per chunk
	Mpiprocs   *int   // MPI ranks per chunk
	Ompthreads *int   // OpenMP threads per rank
	MemGB      *int   // Memory per chunk in GB
	GpuMemGB   *int   // GPU memory in GB
}

// Int returns a pointer to v, for filling optional ResourceSpec fields.
func Int(v int) *int {
	return &v
}

// Normalize resolves computed defaults once: ompthreads falls back to ncpus
// when ncpus is set and ompthreads is not. Mutating Ncpus afterwards does not
// recompute Ompthreads.
func (r *ResourceSpec) Normalize() {
	if r.Ncpus != nil && r.Ompthreads == nil {
		r.Ompthreads = Int(*r.Ncpus)
	}
}

// ResourceList renders the spec as a single `#PBS -l` value.
//
// The field order is scheduler-mandated and significant:
// walltime, select, ncpus, ngpus, mpiprocs, ompthreads, mem, gpu_mem.
// walltime is separated from the chunk spec by ",", all chunk fields by ":",
// and mem/gpu_mem carry a "gb" unit. The trailing separator is stripped.
//
// A spec with no fields set is a contract violation (ErrEmptyResourceList),
// never an empty string.
func (r *ResourceSpec) ResourceList() (string, error) {
	type field struct {
		name  string
		value string
		unit  string
		sep   string
	}

	fields := make([]field, 0, 8)
	if r.Walltime != "" {
		fields = append(fields, field{"walltime", r.Walltime, "", ","})
	}
	addInt := func(name string, v *int, unit string) {
		if v != nil {
			fields = append(fields, field{name, strconv.Itoa(*v), unit, ":"})
		}
	}
	addInt("select", r.Select, "")
	addInt("ncpus", r.Ncpus, "")
	addInt("ngpus", r.Ngpus, "")
	addInt("mpiprocs", r.Mpiprocs, "")
	addInt("ompthreads", r.Ompthreads, "")
	addInt("mem", r.MemGB, "gb")
	addInt("gpu_mem", r.GpuMemGB, "gb")

	if len(fields) == 0 {
		return "", ErrEmptyResourceList
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.name)
		b.WriteString("=")
		b.WriteString(f.value)
		b.WriteString(f.unit)
		b.WriteString(f.sep)
	}

	list := b.String()
	return list[:len(list)-1], nil
}
