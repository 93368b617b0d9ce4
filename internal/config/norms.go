package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// NormError reports an unusable norm file
type NormError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *NormError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *NormError) Unwrap() error {
	return e.Cause
}

type normDocument struct {
	Norms []domain.NormTable `yaml:"norms"`
}

// NewValidator returns a validator that understands decimal amounts
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterStructValidation(validateChildSurcharges, domain.ChildSurcharges{})
	v.RegisterStructValidation(validateStatusThresholds, domain.StatusThresholds{})
	return v
}

// Child surcharges may not rise with the number of children
func validateChildSurcharges(sl validator.StructLevel) {
	c := sl.Current().Interface().(domain.ChildSurcharges)
	if c.Second.GreaterThan(c.First) {
		sl.ReportError(c.Second, "Second", "Second", "nonincreasing", "")
	}
	if c.Third.GreaterThan(c.Second) {
		sl.ReportError(c.Third, "Third", "Third", "nonincreasing", "")
	}
	if c.FourthAndBeyond.GreaterThan(c.Third) {
		sl.ReportError(c.FourthAndBeyond, "FourthAndBeyond", "FourthAndBeyond", "nonincreasing", "")
	}
}

func validateStatusThresholds(sl validator.StructLevel) {
	s := sl.Current().Interface().(domain.StatusThresholds)
	if s.MarginalUpTo.LessThan(s.NotFeasibleBelow) {
		sl.ReportError(s.MarginalUpTo, "MarginalUpTo", "MarginalUpTo", "gtefield", "NotFeasibleBelow")
	}
}

// LoadNorms reads a norm file holding one or more revision-dated tables
func LoadNorms(filename string) (domain.NormHistory, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &NormError{Operation: "load_norms", Message: "failed to read " + filename, Cause: err}
	}
	return ParseNorms(data)
}

// ParseNorms decodes and validates a norm document
func ParseNorms(data []byte) (domain.NormHistory, error) {
	var doc normDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &NormError{Operation: "parse_norms", Message: "invalid YAML", Cause: err}
	}
	history := domain.NormHistory(doc.Norms)
	if err := ValidateNorms(history); err != nil {
		return nil, err
	}
	return history.Sorted(), nil
}

// ValidateNorms checks every table strictly. Unlike household input, norm
// tables are trusted configuration and a bad value is an error.
func ValidateNorms(history domain.NormHistory) error {
	if len(history) == 0 {
		return &NormError{Operation: "validate_norms", Message: "no norm tables defined"}
	}

	v := NewValidator()
	labels := make(map[string]bool)
	dates := make(map[time.Time]string)
	for i, table := range history {
		name := table.Label
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if err := v.Struct(table); err != nil {
			return &NormError{
				Operation: "validate_norms",
				Message:   fmt.Sprintf("table %s: %s", name, describeValidation(err)),
				Cause:     err,
			}
		}
		if labels[table.Label] {
			return &NormError{Operation: "validate_norms", Message: fmt.Sprintf("duplicate label %q", table.Label)}
		}
		labels[table.Label] = true
		if other, dup := dates[table.EffectiveFrom]; dup {
			return &NormError{
				Operation: "validate_norms",
				Message:   fmt.Sprintf("tables %s and %s share effective date %s", other, table.Label, table.EffectiveFrom.Format("2006-01-02")),
			}
		}
		dates[table.EffectiveFrom] = table.Label
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "NormTable.")
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// ResolveNorms picks the table in force on date from the norm file, or from
// the built-in history when filename is empty. A zero date means today.
func ResolveNorms(filename string, date time.Time) (domain.NormTable, error) {
	history := domain.DefaultNormHistory()
	if filename != "" {
		loaded, err := LoadNorms(filename)
		if err != nil {
			return domain.NormTable{}, err
		}
		history = loaded
	}
	if date.IsZero() {
		date = time.Now()
	}
	table, ok := history.At(date)
	if !ok {
		return domain.NormTable{}, &NormError{Operation: "resolve_norms", Message: "no norm tables defined"}
	}
	return table, nil
}
