package sequence_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/steveoakley/wetatest/internal/sequence"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// buildFiles renders distinct frame numbers into one tga sequence.
func buildFiles(name string, frames []int) []string {
	files := make([]string, len(frames))
	for i, frame := range frames {
		files[i] = fmt.Sprintf("%s.%d.tga", name, frame)
	}
	return files
}

func distinct(frames []int) bool {
	seen := make(map[int]struct{}, len(frames))
	for _, f := range frames {
		if _, dup := seen[f]; dup {
			return false
		}
		seen[f] = struct{}{}
	}
	return true
}

func TestProperty_RenumberingLaw(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a sequence of N distinct frames is renumbered to start+step*k for k=0..N-1, padded to at least the requested width", prop.ForAll(
		func(frames []int, startFrame int, step int, padding int) bool {
			files := buildFiles("seq", frames)
			scheme := sequence.Scheme{StartFrame: startFrame, Step: step, Padding: padding}

			plan, err := sequence.BuildPlan(files, sequence.Default(), scheme)
			if err != nil {
				return false
			}
			if len(plan) != len(frames) {
				return false
			}

			for rank, op := range plan {
				want := startFrame + step*rank
				fields := strings.Split(op.NewName, ".")
				if len(fields) != 3 {
					return false
				}
				number := fields[1]
				digits := strings.TrimPrefix(number, "-")
				if len(digits) < padding {
					return false
				}
				if fmt.Sprintf("seq.%s.tga", number) != op.NewName {
					return false
				}
				var got int
				if _, err := fmt.Sscanf(number, "%d", &got); err != nil {
					return false
				}
				if got != want {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-500, 500)).SuchThat(func(frames []int) bool {
			return distinct(frames)
		}),
		gen.IntRange(-100, 100),
		gen.IntRange(1, 10),
		gen.IntRange(0, 8),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_PlanDeterminism(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("building the plan twice from the same listing yields an identical plan", prop.ForAll(
		func(frames []int) bool {
			files := append(buildFiles("seqA", frames), buildFiles("seqB", frames)...)

			first, err1 := sequence.BuildPlan(files, sequence.Default(), sequence.DefaultScheme())
			second, err2 := sequence.BuildPlan(files, sequence.Default(), sequence.DefaultScheme())
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(first, second)
		},
		gen.SliceOf(gen.IntRange(-500, 500)).SuchThat(distinct),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
