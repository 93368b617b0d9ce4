package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rivaldorose/konsensi-budget-beheer-sub005/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// caseDocument is the on-disk shape of a case file. Household and debts are
// kept as free-form records so the tolerant parsers in domain decide what
// every value means.
type caseDocument struct {
	Name             string           `yaml:"name"`
	Household        map[string]any   `yaml:"household"`
	Debts            []map[string]any `yaml:"debts"`
	CapacityOverride any              `yaml:"capacity_override"`
	NormsDate        string           `yaml:"norms_date"`
}

// Case is a parsed household case ready for the engines
type Case struct {
	Name             string
	Path             string
	Profile          domain.HouseholdProfile
	Debts            []domain.Debt
	CapacityOverride *decimal.Decimal
	NormsDate        *time.Time
	// Warnings lists input the parsers ignored or repaired
	Warnings []string
}

// InputParser handles parsing of case files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a case from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*Case, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	c, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %s: %w", filename, err)
	}
	c.Path = filename
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return c, nil
}

// Parse decodes a case document. Only malformed YAML and an unreadable
// norms_date are errors; everything else degrades with a warning.
func (ip *InputParser) Parse(data []byte) (*Case, error) {
	var doc caseDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	c := &Case{
		Name:    doc.Name,
		Profile: domain.ParseProfile(doc.Household),
		Debts:   domain.ParseDebts(doc.Debts),
	}

	if doc.CapacityOverride != nil {
		override := domain.SafeAmount(doc.CapacityOverride)
		c.CapacityOverride = &override
	}

	if doc.NormsDate != "" {
		date, err := time.Parse("2006-01-02", doc.NormsDate)
		if err != nil {
			return nil, fmt.Errorf("norms_date must be YYYY-MM-DD: %w", err)
		}
		c.NormsDate = &date
	}

	c.Warnings = ip.collectWarnings(&doc, c)
	return c, nil
}

func (ip *InputParser) collectWarnings(doc *caseDocument, c *Case) []string {
	var warnings []string

	if len(doc.Household) == 0 {
		warnings = append(warnings, "household section is missing; all amounts are zero")
	}
	for _, key := range domain.UnknownProfileKeys(doc.Household) {
		warnings = append(warnings, fmt.Sprintf("household: unknown field %q ignored", key))
	}

	for _, note := range domain.UnrecognizedCodes(doc.Household) {
		warnings = append(warnings, "household: "+note)
	}

	if len(doc.Debts) == 0 {
		warnings = append(warnings, "no debts listed")
	}
	seen := make(map[string]int)
	for i, raw := range doc.Debts {
		d := c.Debts[i]
		for _, key := range domain.UnknownDebtKeys(raw) {
			warnings = append(warnings, fmt.Sprintf("debt %s: unknown field %q ignored", d.ID, key))
		}
		if !d.Principal.IsPositive() {
			warnings = append(warnings, fmt.Sprintf("debt %s: no principal amount", d.ID))
		} else if !d.IsOpen() {
			warnings = append(warnings, fmt.Sprintf("debt %s: already paid off", d.ID))
		}
		if prev, dup := seen[d.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("debt %s: duplicate id (also debt #%d)", d.ID, prev+1))
		} else {
			seen[d.ID] = i
		}
	}

	if c.CapacityOverride != nil && c.CapacityOverride.IsZero() {
		warnings = append(warnings, "capacity_override is zero; no repayment will be simulated")
	}
	return warnings
}
