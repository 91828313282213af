// Package cli implements the command-line interface for daily60s.
//
// The cli package provides the Cobra-based CLI: send runs the full fetch,
// build and deliver pipeline against the WeCom webhook, preview prints the
// rendered messages as text or JSON, and config init writes a starter
// configuration file. It loads the configuration once, sets up the logger
// and hands both to the runner.
package cli
