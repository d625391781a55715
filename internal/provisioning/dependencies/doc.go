// Package dependencies probes the external executables the pipeline needs.
// A missing tool is reported as a warning with an install hint and never
// stops the run.
package dependencies
