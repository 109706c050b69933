// README: Location identifier shared by distance, pricing and booking modules.
package types

import "strings"

// Location names a stop. Identity is plain string equality.
type Location string

func (l Location) IsZero() bool {
	return strings.TrimSpace(string(l)) == ""
}

func (l Location) String() string {
	return string(l)
}
