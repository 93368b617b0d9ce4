package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LivingSituation selects the base amount of the protected budget
type LivingSituation string

const (
	LivingSingle                 LivingSituation = "single"
	LivingSingleParent           LivingSituation = "single_parent"
	LivingCohabitingDualIncome   LivingSituation = "cohabiting_dual_income"
	LivingCohabitingSingleIncome LivingSituation = "cohabiting_single_income"
)

// EmploymentStatus describes the income source of the household
type EmploymentStatus string

const (
	EmploymentPermanent  EmploymentStatus = "employed_permanent"
	EmploymentTemporary  EmploymentStatus = "employed_temporary"
	EmploymentSelf       EmploymentStatus = "self_employed"
	EmploymentUnemployed EmploymentStatus = "unemployed"
	EmploymentStudent    EmploymentStatus = "student"
	EmploymentNone       EmploymentStatus = "none"
)

var livingSituationAliases = map[string]LivingSituation{
	"single":                     LivingSingle,
	"alleenstaand":               LivingSingle,
	"single_parent":              LivingSingleParent,
	"alleenstaande_ouder":        LivingSingleParent,
	"cohabiting_dual_income":     LivingCohabitingDualIncome,
	"samenwonend_tweeverdieners": LivingCohabitingDualIncome,
	"samenwonend_twee_inkomens":  LivingCohabitingDualIncome,
	"samenwonend":                LivingCohabitingDualIncome,
	"cohabiting_single_income":   LivingCohabitingSingleIncome,
	"samenwonend_eenverdiener":   LivingCohabitingSingleIncome,
	"samenwonend_een_inkomen":    LivingCohabitingSingleIncome,
}

var employmentAliases = map[string]EmploymentStatus{
	"employed_permanent": EmploymentPermanent,
	"permanent":          EmploymentPermanent,
	"vast":               EmploymentPermanent,
	"loondienst":         EmploymentPermanent,
	"employed_temporary": EmploymentTemporary,
	"temporary":          EmploymentTemporary,
	"tijdelijk":          EmploymentTemporary,
	"flex":               EmploymentTemporary,
	"self_employed":      EmploymentSelf,
	"zzp":                EmploymentSelf,
	"zelfstandig":        EmploymentSelf,
	"unemployed":         EmploymentUnemployed,
	"werkloos":           EmploymentUnemployed,
	"uitkering":          EmploymentUnemployed,
	"student":            EmploymentStudent,
	"none":               EmploymentNone,
	"geen":               EmploymentNone,
}

func normalizeCode(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseLivingSituation maps an English or Dutch code to a LivingSituation.
// Unknown values fall back to LivingSingle.
func ParseLivingSituation(s string) LivingSituation {
	if ls, ok := livingSituationAliases[normalizeCode(s)]; ok {
		return ls
	}
	return LivingSingle
}

// ParseEmploymentStatus maps an English or Dutch code to an EmploymentStatus.
// Unknown values fall back to EmploymentNone.
func ParseEmploymentStatus(s string) EmploymentStatus {
	if es, ok := employmentAliases[normalizeCode(s)]; ok {
		return es
	}
	return EmploymentNone
}

// IsKnown reports whether the living situation is one of the four categories
func (ls LivingSituation) IsKnown() bool {
	switch ls {
	case LivingSingle, LivingSingleParent, LivingCohabitingDualIncome, LivingCohabitingSingleIncome:
		return true
	}
	return false
}

// IsWorking reports whether the status earns the employment surcharge and commute costs
func (es EmploymentStatus) IsWorking() bool {
	switch es {
	case EmploymentPermanent, EmploymentTemporary, EmploymentSelf:
		return true
	}
	return false
}

// IsKnown reports whether the employment status is one of the defined categories
func (es EmploymentStatus) IsKnown() bool {
	switch es {
	case EmploymentPermanent, EmploymentTemporary, EmploymentSelf,
		EmploymentUnemployed, EmploymentStudent, EmploymentNone:
		return true
	}
	return false
}

// HouseholdProfile holds everything the protected-budget calculation needs.
// All amounts are monthly unless the field name says otherwise.
type HouseholdProfile struct {
	LivingSituation     LivingSituation  `yaml:"living_situation" json:"living_situation"`
	Children            int              `yaml:"children" json:"children"`
	HousingCost         decimal.Decimal  `yaml:"housing_cost" json:"housing_cost"`
	EmploymentStatus    EmploymentStatus `yaml:"employment_status" json:"employment_status"`
	CommuteDistanceKm   decimal.Decimal  `yaml:"commute_distance_km" json:"commute_distance_km"`
	WorkingDaysPerWeek  decimal.Decimal  `yaml:"working_days_per_week" json:"working_days_per_week"`
	ChronicCondition    bool             `yaml:"chronic_condition" json:"chronic_condition"`
	MedicationCost      decimal.Decimal  `yaml:"medication_cost" json:"medication_cost"`
	Alimony             decimal.Decimal  `yaml:"alimony" json:"alimony"`
	StudyCosts          decimal.Decimal  `yaml:"study_costs" json:"study_costs"`
	ChildcareCost       decimal.Decimal  `yaml:"childcare_cost" json:"childcare_cost"`
	MunicipalTaxAnnual  decimal.Decimal  `yaml:"municipal_tax_annual" json:"municipal_tax_annual"`
	UnionDues           decimal.Decimal  `yaml:"union_dues" json:"union_dues"`
	NetIncome           decimal.Decimal  `yaml:"net_income" json:"net_income"`
	ExistingObligations decimal.Decimal  `yaml:"existing_obligations" json:"existing_obligations"`
}

var maxWorkingDays = decimal.NewFromInt(7)

// Normalized returns a copy with every field inside its valid range:
// negative amounts become zero, unknown categories get their defaults and
// working days are clamped to 0..7.
func (p HouseholdProfile) Normalized() HouseholdProfile {
	n := p
	if !n.LivingSituation.IsKnown() {
		n.LivingSituation = ParseLivingSituation(string(n.LivingSituation))
	}
	if !n.EmploymentStatus.IsKnown() {
		n.EmploymentStatus = ParseEmploymentStatus(string(n.EmploymentStatus))
	}
	if n.Children < 0 {
		n.Children = 0
	}
	n.HousingCost = nonNegative(n.HousingCost)
	n.CommuteDistanceKm = nonNegative(n.CommuteDistanceKm)
	n.WorkingDaysPerWeek = decimal.Min(nonNegative(n.WorkingDaysPerWeek), maxWorkingDays)
	n.MedicationCost = nonNegative(n.MedicationCost)
	n.Alimony = nonNegative(n.Alimony)
	n.StudyCosts = nonNegative(n.StudyCosts)
	n.ChildcareCost = nonNegative(n.ChildcareCost)
	n.MunicipalTaxAnnual = nonNegative(n.MunicipalTaxAnnual)
	n.UnionDues = nonNegative(n.UnionDues)
	n.NetIncome = nonNegative(n.NetIncome)
	n.ExistingObligations = nonNegative(n.ExistingObligations)
	return n
}

// Field aliases accepted by ParseProfile. The first entry is the canonical key.
var profileKeys = map[string][]string{
	"living_situation":      {"living_situation", "woonsituatie", "livingSituation"},
	"children":              {"children", "aantal_kinderen", "aantalKinderen", "kinderen"},
	"housing_cost":          {"housing_cost", "woonlasten", "huur", "housingCost"},
	"employment_status":     {"employment_status", "werksituatie", "dienstverband", "employmentStatus"},
	"commute_distance_km":   {"commute_distance_km", "reisafstand", "woonWerkAfstand", "commuteDistanceKm"},
	"working_days_per_week": {"working_days_per_week", "werkdagen", "werkdagenPerWeek", "workingDaysPerWeek"},
	"chronic_condition":     {"chronic_condition", "chronischeZiekte", "chronische_ziekte", "chronicCondition"},
	"medication_cost":       {"medication_cost", "medicijnkosten", "medicationCost"},
	"alimony":               {"alimony", "alimentatie"},
	"study_costs":           {"study_costs", "studiekosten", "studyCosts"},
	"childcare_cost":        {"childcare_cost", "kinderopvang", "kinderopvangkosten", "childcareCost"},
	"municipal_tax_annual":  {"municipal_tax_annual", "gemeentelijke_belastingen", "gemeentelijkeBelastingen", "municipalTaxAnnual"},
	"union_dues":            {"union_dues", "vakbondscontributie", "unionDues"},
	"net_income":            {"net_income", "netto_inkomen", "nettoInkomen", "inkomen", "netIncome"},
	"existing_obligations":  {"existing_obligations", "bestaande_regelingen", "betalingsregelingen", "existingObligations"},
}

// ParseProfile builds a HouseholdProfile from a free-form record. It never
// fails: missing or malformed values become zero and unknown categories fall
// back to their defaults.
func ParseProfile(raw map[string]any) HouseholdProfile {
	get := func(key string) any {
		return lookup(raw, profileKeys[key])
	}

	p := HouseholdProfile{
		LivingSituation:     ParseLivingSituation(SafeString(get("living_situation"))),
		Children:            SafeInt(get("children")),
		HousingCost:         SafeAmount(get("housing_cost")),
		EmploymentStatus:    ParseEmploymentStatus(SafeString(get("employment_status"))),
		CommuteDistanceKm:   SafeAmount(get("commute_distance_km")),
		WorkingDaysPerWeek:  SafeAmount(get("working_days_per_week")),
		ChronicCondition:    SafeBool(get("chronic_condition")),
		MedicationCost:      SafeAmount(get("medication_cost")),
		Alimony:             SafeAmount(get("alimony")),
		StudyCosts:          SafeAmount(get("study_costs")),
		ChildcareCost:       SafeAmount(get("childcare_cost")),
		MunicipalTaxAnnual:  SafeAmount(get("municipal_tax_annual")),
		UnionDues:           SafeAmount(get("union_dues")),
		NetIncome:           SafeAmount(get("net_income")),
		ExistingObligations: SafeAmount(get("existing_obligations")),
	}
	return p.Normalized()
}

// lookup returns the value of the first alias present in raw
func lookup(raw map[string]any, aliases []string) any {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// UnknownProfileKeys lists the keys of raw that ParseProfile ignores, sorted
func UnknownProfileKeys(raw map[string]any) []string {
	return unknownKeys(raw, profileKeys)
}

func unknownKeys(raw map[string]any, known map[string][]string) []string {
	accepted := make(map[string]bool)
	for _, aliases := range known {
		for _, a := range aliases {
			accepted[a] = true
		}
	}
	var unknown []string
	for key := range raw {
		if !accepted[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// UnrecognizedCodes describes category values in raw that ParseProfile
// replaced with a default
func UnrecognizedCodes(raw map[string]any) []string {
	var notes []string
	if text := SafeString(lookup(raw, profileKeys["living_situation"])); text != "" {
		if _, ok := livingSituationAliases[normalizeCode(text)]; !ok {
			notes = append(notes, "living situation "+strconv.Quote(text)+" not recognised, using "+string(LivingSingle))
		}
	}
	if text := SafeString(lookup(raw, profileKeys["employment_status"])); text != "" {
		if _, ok := employmentAliases[normalizeCode(text)]; !ok {
			notes = append(notes, "employment status "+strconv.Quote(text)+" not recognised, using "+string(EmploymentNone))
		}
	}
	return notes
}
