// Package cli is the FollowUpDesk command-line client.
//
// Every command runs against a freshly built App: configuration from
// defaults, an optional config file and flags, the session kept in a local
// SQLite file (or in memory with --ephemeral), and the record, remark and
// auth services on top of the API client.
//
//	followupdesk login -e admin@example.org
//	followupdesk records list --expected yes --from 2024-01-01
//	followupdesk remarks add 12 "called, promised to pay Friday"
//	followupdesk records download --s3
//
// The repl command reads the same command lines interactively. When a token
// refresh fails the stored session is dropped and the user is asked to log in
// again.
package cli
