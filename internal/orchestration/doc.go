// Package orchestration runs one or more calculators concurrently on the same
// request, collects their results and cross-checks them. Display is
// delegated to the ProgressReporter and ResultPresenter interfaces.
package orchestration
