// Package workers determines worker pool sizes in containerized
// environments.
//
// GOMAXPROCS reflects cgroup CPU limits on Go 1.19+, while
// runtime.NumCPU still reports host CPUs; sizing pools from
// GOMAXPROCS avoids oversubscribing a limited container. Operators
// can override the computed count with the TRANSCODE_WORKERS
// environment variable.
package workers
