package registry

import (
	"fmt"
	"time"
)

// ValidationError is one structural issue found in a bank.
type ValidationError struct {
	Class   int // -1 if not applicable
	Method  int // -1 if not applicable
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	switch {
	case e.Class < 0:
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	case e.Method < 0:
		return fmt.Sprintf("classes[%d].%s: %s", e.Class, e.Field, e.Message)
	default:
		return fmt.Sprintf("classes[%d].methods[%d].%s: %s", e.Class, e.Method, e.Field, e.Message)
	}
}

// Validate checks the bank structure and returns every issue found.
// Records that pass are still usable by Classes and the loaders.
func (b *Bank) Validate() []ValidationError {
	var errs []ValidationError

	classes := make(map[string]bool)
	for ci, c := range b.Records {
		switch {
		case c.Name == "":
			errs = append(errs, ValidationError{
				Class: ci, Method: -1, Field: "name", Message: "class name is required",
			})
		case classes[c.Name]:
			errs = append(errs, ValidationError{
				Class: ci, Method: -1, Field: "name", Message: fmt.Sprintf("duplicate class: %s", c.Name),
			})
		default:
			classes[c.Name] = true
		}

		methods := make(map[string]bool)
		for mi, m := range c.Methods {
			switch {
			case m.Name == "":
				errs = append(errs, ValidationError{
					Class: ci, Method: mi, Field: "name", Message: "method name is required",
				})
			case methods[m.Name]:
				errs = append(errs, ValidationError{
					Class: ci, Method: mi, Field: "name", Message: fmt.Sprintf("duplicate method: %s", m.Name),
				})
			default:
				methods[m.Name] = true
			}

			if m.Tries != nil && *m.Tries < 0 {
				errs = append(errs, ValidationError{
					Class: ci, Method: mi, Field: "tries", Message: fmt.Sprintf("negative tries: %d", *m.Tries),
				})
			}
			if m.Timeout != "" {
				if d, err := time.ParseDuration(m.Timeout); err != nil {
					errs = append(errs, ValidationError{
						Class: ci, Method: mi, Field: "timeout", Message: err.Error(),
					})
				} else if d <= 0 {
					errs = append(errs, ValidationError{
						Class: ci, Method: mi, Field: "timeout", Message: "timeout must be positive",
					})
				}
			}
		}
	}

	return errs
}

// ValidateFile reads and validates a bank file. Read and parse
// failures are reported as a single error.
func ValidateFile(path string) []ValidationError {
	bank, err := ReadBank(path)
	if err != nil {
		return []ValidationError{{Class: -1, Method: -1, Field: "file", Message: err.Error()}}
	}
	return bank.Validate()
}
