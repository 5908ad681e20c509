// Package redact scrubs sensitive values from strings before they reach
// logs or API error responses. Database DSNs, tokens, learner emails, row
// identifiers, and raw SQL can all surface through wrapped errors, so any
// error text that leaves the service boundary passes through here first.
package redact

import "regexp"

// rule pairs a pattern with the placeholder that replaces its matches.
// Rules apply in order, so earlier rules see the original text and later
// ones see already-redacted output.
type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	// Connection strings: everything up to and including the credentials.
	{regexp.MustCompile(`(?i)postgres(?:ql)?://[^@\s]+@`), "[REDACTED_DSN]"},

	// JWTs before the generic token rule, so the token keyword does not
	// swallow the three-part payload with a narrower placeholder.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), "[REDACTED_JWT]"},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|auth[_-]?key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), "[REDACTED_KEY]"},
	{regexp.MustCompile(`(?i)(password|passwd|secret)([=:\s]['"]?)\S{3,}`), "[REDACTED_CREDENTIAL]"},

	// Row identifiers. Goal and user IDs are UUIDs, and a bare ID in an
	// error message is enough to correlate a learner across log lines.
	{regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`), "[REDACTED_ID]"},

	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},

	// Whole SQL statements. Runs after the identifier and email rules so
	// their placeholders are already in place if the statement survives
	// partially, but in practice the full statement text is dropped.
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET)\b[^;]*`), "[REDACTED_SQL]"},

	// Filesystem paths with at least two segments, so bare words after a
	// slash are left alone.
	{regexp.MustCompile(`(/[\w.-]+){2,}`), "[REDACTED_PATH]"},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), "[REDACTED_PATH]"},

	// Host:port endpoints. The port requirement keeps ordinary dotted
	// phrases in prose untouched.
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}:\d{1,5}\b`), "[REDACTED_HOST]"},

	// Panic output. Paths inside the trace are already gone, but the
	// goroutine dump still reveals internal structure.
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[REDACTED_STACK]"},
}

// String applies every redaction rule to the input and returns the result.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts an error's message. A nil error yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
