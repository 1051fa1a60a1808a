// Package cookie implements the flat cookie jar file shared between
// invocations. Only name=value pairs survive the round trip; cookie
// attributes (Path, Expires, ...) are stripped on read.
package cookie

import (
	"os"
	"strings"
)

// Sentinel is always appended to the persisted cookie list. It predates
// this implementation and is kept deliberately so existing jars stay
// byte-compatible.
const Sentinel = "hello=world"

// Load reads a cookie jar file into a Cookie header value. Each line is
// truncated at the first ";" and the remaining name=value pairs are joined
// with "; ". A missing file is not an error and yields an empty value.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	var pairs []string
	for _, line := range strings.Split(string(data), "\n") {
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pairs = append(pairs, line)
	}

	return strings.Join(pairs, "; "), nil
}

// Save overwrites the jar with the given Set-Cookie values, one per line,
// plus the sentinel entry. Nothing is written when values is empty.
func Save(path string, values []string) error {
	if len(values) == 0 {
		return nil
	}

	lines := make([]string, 0, len(values)+1)
	lines = append(lines, values...)
	lines = append(lines, Sentinel)

	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}
