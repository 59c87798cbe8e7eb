package rule

const (
	CR byte = '\r'
	LF byte = '\n'
	SP byte = ' '
)

// CRLF terminates every line of a rendered message.
const CRLF = string(CR) + string(LF)

func IsAlpha(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }
func IsDigit(r rune) bool { return '0' <= r && r <= '9' }
