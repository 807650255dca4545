// Package task provides in-memory background task processing: a typed
// task abstraction, a worker-pool runner, and the daily engagement
// check scheduling built on top of them.
package task
