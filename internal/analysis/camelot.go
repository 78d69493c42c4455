package analysis

import (
	"regexp"
	"strconv"
)

// camelotPattern matches spec §8's required format exactly.
var camelotPattern = regexp.MustCompile(`^(1[0-2]|[1-9])[AB]$`)

// majorCamelot and minorCamelot are the fixed 24-entry table §4.2 describes,
// indexed by pitch class 0=C .. 11=B. Standard Camelot wheel assignment;
// relative major/minor pairs share a number by construction (e.g. 8B=C
// major, 8A=A minor).
var majorCamelot = [12]string{
	"8B", "3B", "10B", "5B", "12B", "7B", "2B", "9B", "4B", "11B", "6B", "1B",
}

var minorCamelot = [12]string{
	"5A", "12A", "7A", "2A", "9A", "4A", "11A", "6A", "1A", "8A", "3A", "10A",
}

// camelotFor picks a table half by comparing the energy of the major and
// minor third above the given root pitch class in a chromagram: the DFT
// magnitude, unlike Krumhansl-profile correlation, doesn't discriminate
// mode on its own, so this local comparison of the two candidate thirds is
// the deciding tie-break.
func camelotFor(rootPC int, chroma [12]float64) (string, int) {
	root := ((rootPC % 12) + 12) % 12
	majorThird := chroma[(root+4)%12]
	minorThird := chroma[(root+3)%12]
	if minorThird > majorThird {
		return minorCamelot[root], root
	}
	return majorCamelot[root], root
}

// ParseCamelot splits a Camelot code into its wheel number [1,12] and mode
// letter. Returns ok=false for malformed input.
func ParseCamelot(code string) (number int, letter byte, ok bool) {
	if !camelotPattern.MatchString(code) {
		return 0, 0, false
	}
	letter = code[len(code)-1]
	n, err := strconv.Atoi(code[:len(code)-1])
	if err != nil {
		return 0, 0, false
	}
	return n, letter, true
}

// KeysCompatible reports whether b's Camelot code is in a's harmonic
// neighbor set: the same code, one step around the wheel in either
// direction (same letter), or the relative major/minor pair (same number,
// different letter).
func KeysCompatible(a, b string) bool {
	na, la, ok1 := ParseCamelot(a)
	nb, lb, ok2 := ParseCamelot(b)
	if !ok1 || !ok2 {
		return false
	}
	if na == nb {
		return true
	}
	if la != lb {
		return false
	}
	diff := na - nb
	if diff < 0 {
		diff = -diff
	}
	return diff == 1 || diff == 11
}

// WheelDistance returns the shortest number of wheel steps between two
// Camelot codes' numbers, ignoring mode letter, in [0,6]. Returns 12 if
// either code is malformed.
func WheelDistance(a, b string) int {
	na, _, ok1 := ParseCamelot(a)
	nb, _, ok2 := ParseCamelot(b)
	if !ok1 || !ok2 {
		return 12
	}
	diff := na - nb
	if diff < 0 {
		diff = -diff
	}
	if diff > 6 {
		diff = 12 - diff
	}
	return diff
}

// PitchSemitoneDelta returns the shortest signed semitone distance from b
// to a, in [-6, 6].
func PitchSemitoneDelta(aSemitone, bSemitone int) int {
	d := ((aSemitone-bSemitone)%12 + 12) % 12
	if d > 6 {
		d -= 12
	}
	return d
}
