// Package sequence identifies image sequences in a directory listing and
// computes renumbering plans for them. A sequence member has the form
// [name].[frame].[extension], where the frame is a signed integer and the
// extension contains no period. The name may itself contain periods; the
// split is taken greedily from the right.
package sequence

import (
	"regexp"
	"strconv"
)

// filenamePattern matches [name].[frame].[extension]: a greedy non-empty
// name, an optional minus sign followed by digits, and a non-empty
// period-free extension.
var filenamePattern = regexp.MustCompile(`^(.+)\.(-?[0-9]+)\.([^.]+)$`)

// Key identifies a sequence. Two files belong to the same sequence iff
// their name and extension are identical. Extension comparison is
// case-sensitive here, even though Filter membership is not.
type Key struct {
	Name string
	Ext  string
}

// Signature renders the key in the conventional name.#.ext form used in
// reports and error messages.
func (k Key) Signature() string {
	return k.Name + ".#." + k.Ext
}

// Frame is one member of a sequence: its embedded frame number and the
// filename it was parsed from.
type Frame struct {
	Number   int
	Filename string
}

// Find groups filenames into sequences. Filenames that do not match the
// sequence pattern, or whose extension the filter rejects, are silently
// ignored. Entries within a sequence are unordered; ordering is
// established during plan generation.
func Find(filenames []string, filter Filter) map[Key][]Frame {
	sequences := make(map[Key][]Frame)
	for _, filename := range filenames {
		m := filenamePattern.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		name, number, ext := m[1], m[2], m[3]
		if !filter.Admits(ext) {
			continue
		}

		frame, err := strconv.Atoi(number)
		if err != nil {
			// Frame number too large to represent; treat the file as
			// not part of any sequence rather than renaming it wrongly.
			continue
		}

		key := Key{Name: name, Ext: ext}
		sequences[key] = append(sequences[key], Frame{Number: frame, Filename: filename})
	}
	return sequences
}
