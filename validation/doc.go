// Package validation provides a fluent validator that collects field errors
// and converts them into a single typed INVALID_REQUEST error.
//
//	v := validation.New().
//	    Range("count", req.Count, 1, 20).
//	    OneOf("difficulty", req.Difficulty, []string{"easy", "medium", "hard"})
//	if err := v.Validate(); err != nil {
//	    return err
//	}
package validation
