package main

// Notifier publishes the outcome of an upload run. runErr is nil for a
// successful run; report is never nil.
type Notifier interface {
	NotifyRunResults(report *RunReport, runErr error) error
}
