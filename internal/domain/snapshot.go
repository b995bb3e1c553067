package domain

import (
	"regexp"
	"time"
)

// Snapshot is the full set of exchange rates quoted against one base
// currency. Rates maps a 3-letter currency code to the number of units of
// that currency one unit of Base buys. A Snapshot is installed whole or not
// at all; readers never observe a partially applied update.
type Snapshot struct {
	Base        string
	Rates       map[string]float64
	LastUpdated time.Time
}

var codeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidCode reports whether s looks like a 3-letter uppercase currency code.
func ValidCode(s string) bool {
	return codeRe.MatchString(s)
}
