package telnet

// ANSI styling for text sent to Telnet clients.
const (
	Reset        = "\033[0m"
	Bold         = "\033[1m"
	Red          = "\033[31m"
	Green        = "\033[32m"
	Yellow       = "\033[33m"
	Cyan         = "\033[36m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Colorize wraps text with color and a reset suffix.
//
// Precondition: color must be an ANSI escape sequence.
func Colorize(color, text string) string {
	return color + text + Reset
}

// StripANSI removes \033[...m sequences, leaving the printable text.
func StripANSI(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
