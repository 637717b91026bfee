package validate

import "github.com/rezonia/facturx/internal/model"

// Infer returns the narrowest profile under which the instance validates
// without Error-severity findings, trying profiles in increasing order of
// strictness. The second result is false when no profile accepts it.
//
// Infer never mutates the instance; it validates a re-tagged shallow copy.
func Infer(inv *model.Invoice) (model.Profile, bool) {
	for _, p := range model.Profiles {
		candidate := *inv
		candidate.Profile = p
		if len(model.Errors(Validate(&candidate))) == 0 {
			return p, true
		}
	}
	return 0, false
}
