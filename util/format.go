package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders n with thousands separators for log lines
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
