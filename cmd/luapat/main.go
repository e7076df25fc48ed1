// Command luapat runs Lua patterns from the command line.
//
// Usage:
//
//	# Find the first match (prints start and end, then captures)
//	luapat find "hello world" "o (w)"
//
//	# Print the captures of the first match
//	luapat match "key=value" "(%a+)=(%a+)"
//
//	# Print every match, one per line
//	luapat gmatch "one two three" "%a+"
//
//	# Substitute (prints the result and the number of matches)
//	luapat gsub "hello world" "(%w+)" "<%1>"
//
//	# Bound a hostile pattern
//	luapat find --timeout 10ms "$(printf 'a%.0s' {1..30})" "a-a-a-a-a-a-a-a-b"
//
// The exit status is 0 on a match, 1 when nothing matched and 2 on errors.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
