// Package output prints command results for the wikimark CLI.
//
// Every command writes through a Printer, which either styles text for a
// terminal or emits JSON when --json is set:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Exported 12 pages", "pages": 12})
//	printer.Table([]string{"TITLE", "FILE"}, rows)
//
// # JSON Mode
//
// With --json, results are JSON values and errors are
// {"error": "message", "code": N} on stdout.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flag, unknown page or dialect
//	output.ExitSystemError // 2: unreadable store, failed write or archive
//	output.ExitConflict    // 3: output exists and --force was not given
//
// Commands return errors built with NewUserError, NewSystemError,
// NewSystemErrorWithCause or NewConflictError; main maps them to the
// process exit code with GetExitCode.
package output
