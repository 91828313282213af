// Package notifier delivers rendered messages to their destinations.
//
// The WeCom webhook is the primary channel. A dry-run notifier prints what
// would be sent, and an optional Twitter notifier posts a short summary of
// each message. Multi chains several notifiers for one run.
package notifier
