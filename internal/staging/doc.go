// Package staging manages the per-run scratch workspace: a flock-guarded
// work directory with a unique session subdirectory for rendered frames
// and the intermediate output file.
package staging
