// Package directories ensures the bootstrap's working directories exist.
//
// [Ensure] is idempotent and independent of input order: absent paths are
// created with their parents, existing directories are left untouched, and
// anything else at a required path aborts the run.
package directories
