// Package models defines data structures for Folio
package models

import "fmt"

// Direction selects which completed trading day a calendar lookup resolves
// to, relative to the anchor nearest the reference date.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionLatest   Direction = "latest"
	DirectionNext     Direction = "next"
)

// ParseDirection validates a user-supplied direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionPrevious, DirectionLatest, DirectionNext:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q (want previous, latest, or next)", s)
}
