// Package redact strips credential-shaped text out of captured CI log
// context before it is stored in report artifacts. CI logs routinely echo
// environment dumps and curl invocations, so report files must not become
// a secondary leak.
package redact

import "regexp"

// Redacted replaces every recognized secret.
const Redacted = "[REDACTED_SECRET]"

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`-----BEGIN (RSA|EC|DSA|OPENSSH) PRIVATE KEY-----[\s\S]+?-----END (RSA|EC|DSA|OPENSSH) PRIVATE KEY-----`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{30,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+`),
	regexp.MustCompile(`(?i)(token|secret|api[_-]?key|access[_-]?key|password)["'\s:=]+[A-Za-z0-9/+=]{16,}`),
}

var urlParams = regexp.MustCompile(`([?&](token|key|secret|sig|signature|access_token|auth)=)[^&\s]+`)

// Redact replaces every recognized secret in input.
func Redact(input string) string {
	if input == "" {
		return input
	}
	output := input
	for _, re := range patterns {
		output = re.ReplaceAllString(output, Redacted)
	}
	return urlParams.ReplaceAllString(output, "${1}"+Redacted)
}

// Optional applies Redact only when redaction is enabled.
func Optional(input string, enabled bool) string {
	if !enabled {
		return input
	}
	return Redact(input)
}
