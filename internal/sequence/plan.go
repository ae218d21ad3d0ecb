package sequence

import (
	"fmt"
	"sort"

	"github.com/steveoakley/wetatest/internal/errors"
	"github.com/steveoakley/wetatest/internal/log"
)

// Default numbering parameters. These can be overridden from the config
// file or the command line.
const (
	DefaultStartFrame = 1
	DefaultStep       = 1
	DefaultPadding    = 2
)

// Scheme is the target numbering for renumbered sequences: the first
// file in each sequence receives StartFrame, successive files advance by
// Step, and frame numbers are zero-padded to at least Padding digits.
type Scheme struct {
	StartFrame int
	Step       int
	Padding    int
}

// DefaultScheme returns the standard compacting scheme.
func DefaultScheme() Scheme {
	return Scheme{StartFrame: DefaultStartFrame, Step: DefaultStep, Padding: DefaultPadding}
}

// Validate checks the scheme parameters. It is called before any sequence
// processing, so a failure here never follows filesystem activity.
func (s Scheme) Validate() error {
	if s.Step <= 0 {
		return errors.NewConfigError("step must be greater than zero", "step", errors.InvalidStep)
	}
	if s.Padding < 0 {
		return errors.NewConfigError("padding must not be negative", "padding", errors.InvalidPadding)
	}
	return nil
}

// RenameOp is a single old-name to new-name operation.
type RenameOp struct {
	OldName string
	NewName string
}

// Plan is the full ordered set of rename operations for a directory.
// It is computed once, purely in memory, from a single snapshot of the
// directory listing, and never mutated after generation.
type Plan []RenameOp

// BuildPlan groups filenames into sequences and emits the rename
// operations that renumber each sequence according to the scheme.
// Sequences are processed in a deterministic order so that identical
// input always yields an identical plan.
//
// A sequence containing two files that share one frame number (for
// example seq.1.tga and seq.01.tga) is poorly formed: both would be
// renamed to the same destination. That raises a SequenceError before
// any operation is emitted for later sequences.
func BuildPlan(filenames []string, filter Filter, scheme Scheme) (Plan, error) {
	if err := scheme.Validate(); err != nil {
		return nil, err
	}

	sequences := Find(filenames, filter)

	keys := make([]Key, 0, len(sequences))
	for key := range sequences {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Ext < keys[j].Ext
	})

	var plan Plan
	for _, key := range keys {
		frames := sequences[key]
		sort.Slice(frames, func(i, j int) bool {
			if frames[i].Number != frames[j].Number {
				return frames[i].Number < frames[j].Number
			}
			return frames[i].Filename < frames[j].Filename
		})

		log.Info("Found sequence %s, %d images", key.Signature(), len(frames))

		newFrame := scheme.StartFrame
		for rank, frame := range frames {
			if rank > 0 && frames[rank-1].Number == frame.Number {
				return nil, errors.NewSequenceError(
					"has multiple files sharing one frame number",
					key.Signature(), frames[rank-1].Filename, frame.Filename)
			}

			newName := fmt.Sprintf("%s.%s.%s", key.Name, formatFrame(newFrame, scheme.Padding), key.Ext)
			plan = append(plan, RenameOp{OldName: frame.Filename, NewName: newName})
			newFrame += scheme.Step
		}
	}

	return plan, nil
}

// formatFrame zero-pads n to at least padding digits. A minus sign does
// not count toward the padded width.
func formatFrame(n, padding int) string {
	if n < 0 {
		return "-" + fmt.Sprintf("%0*d", padding, -n)
	}
	return fmt.Sprintf("%0*d", padding, n)
}
