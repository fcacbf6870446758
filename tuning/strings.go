package tuning

import "fmt"

// NumStrings is the number of open-string offsets stored for every arrangement,
// bass arrangements included (the last two are ignored for bass).
const NumStrings = 6

// Strings holds the open-string offsets of a tuning, in semitones relative to
// E standard. String0 is the lowest pitched string.
type Strings struct {
	String0 int `json:"string0" yaml:"string0"`
	String1 int `json:"string1" yaml:"string1"`
	String2 int `json:"string2" yaml:"string2"`
	String3 int `json:"string3" yaml:"string3"`
	String4 int `json:"string4" yaml:"string4"`
	String5 int `json:"string5" yaml:"string5"`
}

// Standard is E standard tuning, every offset zero.
var Standard = Strings{}

// FromArray converts an offset array into Strings.
func FromArray(a [NumStrings]int) Strings {
	return Strings{a[0], a[1], a[2], a[3], a[4], a[5]}
}

// Array returns the offsets as an array, lowest string first.
func (s Strings) Array() [NumStrings]int {
	return [NumStrings]int{s.String0, s.String1, s.String2, s.String3, s.String4, s.String5}
}

// Transpose returns a copy with every offset shifted by semitones.
func (s Strings) Transpose(semitones int) Strings {
	a := s.Array()
	for i := range a {
		a[i] += semitones
	}
	return FromArray(a)
}

// Matches compares the first n strings of both tunings.
func (s Strings) Matches(other Strings, n int) bool {
	a, b := s.Array(), other.Array()
	for i := 0; i < n && i < NumStrings; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s Strings) String() string {
	a := s.Array()
	return fmt.Sprintf("%d %d %d %d %d %d", a[0], a[1], a[2], a[3], a[4], a[5])
}
