package charclass

// C-locale byte predicates. Bytes >= 0x80 belong to no class.

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isAlpha(c byte) bool  { return isLower(c) || isUpper(c) }
func isAlnum(c byte) bool  { return isAlpha(c) || isDigit(c) }
func isCntrl(c byte) bool  { return c < 0x20 || c == 0x7f }
func isGraph(c byte) bool  { return c > 0x20 && c < 0x7f }
func isPunct(c byte) bool  { return isGraph(c) && !isAlnum(c) }
func isSpace(c byte) bool  { return c == ' ' || (c >= '\t' && c <= '\r') }
func isXDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}
