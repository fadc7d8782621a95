// Package orchestrator owns one registration form session from page load to
// unload: it binds the field controller, gates submissions on full validity,
// dispatches the submission client and hands results to the presenter.
package orchestrator
