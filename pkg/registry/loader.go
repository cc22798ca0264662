package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"digital.vasic.browserrunner/pkg/expect"
	"digital.vasic.browserrunner/pkg/suite"
)

// Bank is the on-disk structure for an expectation bank (JSON or
// YAML).
type Bank struct {
	Version string        `json:"version" yaml:"version"`
	Records []ClassRecord `json:"classes" yaml:"classes"`
}

// ClassRecord holds the method records of one class.
type ClassRecord struct {
	Name    string         `json:"name" yaml:"name"`
	Methods []MethodRecord `json:"methods" yaml:"methods"`
}

// MethodRecord carries the expectations of one method. Absent keys
// leave the registered method untouched.
type MethodRecord struct {
	Name              string                    `json:"name" yaml:"name"`
	Alerts            *expect.Alerts            `json:"alerts,omitempty" yaml:"alerts,omitempty"`
	AlertsStandards   *expect.AlertsStandards   `json:"alerts_standards,omitempty" yaml:"alerts_standards,omitempty"`
	StandardsMode     *bool                     `json:"standards_mode,omitempty" yaml:"standards_mode,omitempty"`
	NotYetImplemented *expect.NotYetImplemented `json:"not_yet_implemented,omitempty" yaml:"not_yet_implemented,omitempty"`
	BuggyWebDriver    *expect.BuggyWebDriver    `json:"buggy_web_driver,omitempty" yaml:"buggy_web_driver,omitempty"`
	Tries             *int                      `json:"tries,omitempty" yaml:"tries,omitempty"`
	Timeout           string                    `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

func (m *MethodRecord) apply(dst *suite.Method, timeout time.Duration) {
	if m.Alerts != nil {
		dst.Alerts = m.Alerts
	}
	if m.AlertsStandards != nil {
		dst.AlertsStandards = m.AlertsStandards
	}
	if m.StandardsMode != nil {
		dst.StandardsMode = *m.StandardsMode
	}
	if m.NotYetImplemented != nil {
		dst.NotYetImplemented = m.NotYetImplemented
	}
	if m.BuggyWebDriver != nil {
		dst.BuggyWebDriver = m.BuggyWebDriver
	}
	if m.Tries != nil {
		dst.Tries = expect.Tries(*m.Tries)
	}
	if timeout > 0 {
		dst.Timeout = timeout
	}
}

// ReadBank reads and parses a bank file. The format follows the
// extension: .yaml and .yml are YAML, anything else is JSON.
func ReadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read expectations file %s: %w", path, err)
	}

	var bank Bank
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &bank)
	default:
		err = json.Unmarshal(data, &bank)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse expectations from %s: %w", path, err)
	}
	return &bank, nil
}

// Classes builds declarative classes from the bank: one method per
// record, carrying its expectations and no test function.
func (b *Bank) Classes() ([]*suite.Class, error) {
	var errs *multierror.Error
	out := make([]*suite.Class, 0, len(b.Records))
	for _, c := range b.Records {
		class := &suite.Class{Name: c.Name}
		for i := range c.Methods {
			rec := &c.Methods[i]
			timeout, err := rec.timeout()
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s.%s: %w", c.Name, rec.Name, err))
				continue
			}
			m := &suite.Method{Name: rec.Name}
			rec.apply(m, timeout)
			class.Methods = append(class.Methods, m)
		}
		out = append(out, class)
	}
	return out, errs.ErrorOrNil()
}

// LoadExpectationsFromFile reads a bank of expectation records and
// applies each one to the matching registered method. Every record
// is attempted; failures are returned together.
func LoadExpectationsFromFile(reg Registry, path string) error {
	bank, err := ReadBank(path)
	if err != nil {
		return err
	}
	return applyBank(reg, bank, path)
}

// LoadExpectationsFromDir loads all .json and .yaml/.yml bank files
// from a directory. It does not recurse into subdirectories.
func LoadExpectationsFromDir(reg Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var errs *multierror.Error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		p := filepath.Join(dir, entry.Name())
		if err := LoadExpectationsFromFile(reg, p); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (m *MethodRecord) timeout() (time.Duration, error) {
	if m.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(m.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	return d, nil
}

func applyBank(reg Registry, bank *Bank, source string) error {
	var errs *multierror.Error
	for _, c := range bank.Records {
		for i := range c.Methods {
			rec := &c.Methods[i]

			timeout, err := rec.timeout()
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf(
					"%s: %s.%s: %w", source, c.Name, rec.Name, err,
				))
				continue
			}

			err = reg.Update(c.Name, rec.Name, func(m *suite.Method) {
				rec.apply(m, timeout)
			})
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", source, err))
			}
		}
	}
	return errs.ErrorOrNil()
}
