package move

import "github.com/alexlovelltroy/patchsort/pkg/schema"

// MoveWrapper composes a generator, a set of extenders, and a set of
// validators behind the three operations the search algorithms need:
// Generate (deduplicated candidate moves, including extender closure),
// Validate (AND of every validator), and Simulate (delegates to Diff).
type MoveWrapper struct {
	Generator  Generator
	Extenders  []Extender
	Validators []Validator
}

// NewDefaultMoveWrapper wires the low-level generator, all three move
// extenders, and all six move validators against a single schema oracle.
func NewDefaultMoveWrapper(oracle schema.Oracle) MoveWrapper {
	return MoveWrapper{
		Generator: LowLevelMoveGenerator{},
		Extenders: []Extender{
			UpperLevelMoveExtender{},
			DeleteInsteadOfReplaceMoveExtender{},
			DeleteRefsMoveExtender{Oracle: oracle},
		},
		Validators: []Validator{
			DeleteWholeConfigMoveValidator{},
			UniqueLanesMoveValidator{},
			CreateOnlyMoveValidator{Oracle: oracle},
			NoDependencyMoveValidator{Oracle: oracle},
			NoEmptyTableMoveValidator{},
			FullConfigMoveValidator{Oracle: oracle},
		},
	}
}

// Generate produces a deduplicated stream of candidate moves: the
// generator's own output, plus the result of feeding every move through
// every extender, and every extender's output through every extender
// again, until no new move appears.
func (w MoveWrapper) Generate(diff Diff) []JsonMove {
	seen := make(map[string]bool)
	var out []JsonMove

	add := func(m JsonMove) bool {
		key := m.Key()
		if seen[key] {
			return false
		}
		seen[key] = true
		out = append(out, m)
		return true
	}

	frontier := w.Generator.Generate(diff)
	for _, m := range frontier {
		add(m)
	}

	for len(frontier) > 0 {
		var next []JsonMove
		for _, m := range frontier {
			for _, ext := range w.Extenders {
				for _, derived := range ext.Extend(m, diff) {
					if add(derived) {
						next = append(next, derived)
					}
				}
			}
		}
		frontier = next
	}

	return out
}

// Validate reports whether every registered validator accepts m.
func (w MoveWrapper) Validate(m JsonMove, diff Diff) bool {
	for _, v := range w.Validators {
		if !v.Validate(m, diff) {
			return false
		}
	}
	return true
}

// Simulate returns the Diff that results from applying m to diff.
func (w MoveWrapper) Simulate(m JsonMove, diff Diff) (Diff, error) {
	return diff.ApplyMove(m)
}
