package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-trustforge/internal/yamlutil"
)

// ErrInvalidRisk indicates a risk register entry failed validation.
var ErrInvalidRisk = errors.New("invalid risk")

// RiskHeader is the column order of the risk register.
var RiskHeader = []string{
	"id", "title", "description", "severity", "likelihood",
	"owner", "status", "treatment", "target_date", "control_refs",
}

// Allowed values per field.
var (
	Severities  = []string{"Low", "Medium", "High", "Critical"}
	Likelihoods = []string{"Unlikely", "Possible", "Likely"}
	Statuses    = []string{"Open", "Accepted", "Mitigating", "Resolved"}
	Treatments  = []string{"Accept", "Mitigate", "Transfer", "Avoid"}
)

// Risk is one entry of the risk register.
type Risk struct {
	ID          string
	Title       string
	Description string
	Severity    string
	Likelihood  string
	Owner       string
	Status      string
	Treatment   string
	TargetDate  string   // Optional, YYYY-MM-DD
	ControlRefs []string // e.g. ID.GV-01
}

type riskYAML struct {
	ID          any      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"`
	Likelihood  string   `yaml:"likelihood"`
	Owner       string   `yaml:"owner"`
	Status      string   `yaml:"status"`
	Treatment   string   `yaml:"treatment"`
	TargetDate  any      `yaml:"target_date"`
	ControlRefs []string `yaml:"control_refs"`
}

// ParseRisks decodes a YAML list of risks, applying defaults (owner CISO,
// status Open, treatment Mitigate) and validating enumerations.
func ParseRisks(data []byte) ([]Risk, error) {
	var raw []riskYAML
	if err := yamlutil.UnmarshalStrict(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRisk, err)
	}

	risks := make([]Risk, 0, len(raw))
	for i, r := range raw {
		risk := Risk{
			ID:          scalarString(r.ID),
			Title:       strings.TrimSpace(r.Title),
			Description: strings.TrimSpace(r.Description),
			Severity:    r.Severity,
			Likelihood:  r.Likelihood,
			Owner:       withDefault(r.Owner, "CISO"),
			Status:      withDefault(r.Status, "Open"),
			Treatment:   withDefault(r.Treatment, "Mitigate"),
			TargetDate:  scalarString(r.TargetDate),
			ControlRefs: r.ControlRefs,
		}
		if err := risk.Validate(); err != nil {
			return nil, fmt.Errorf("risk %d: %w", i+1, err)
		}
		risks = append(risks, risk)
	}
	return risks, nil
}

// Validate checks required fields, enumerations and the target date.
func (r *Risk) Validate() error {
	if r == nil {
		return nil
	}
	if r.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRisk)
	}
	if r.Title == "" {
		return fmt.Errorf("%w: %s: title is required", ErrInvalidRisk, r.ID)
	}

	enums := []struct {
		field, value string
		allowed      []string
	}{
		{"severity", r.Severity, Severities},
		{"likelihood", r.Likelihood, Likelihoods},
		{"status", r.Status, Statuses},
		{"treatment", r.Treatment, Treatments},
	}
	for _, e := range enums {
		if !slices.Contains(e.allowed, e.value) {
			return fmt.Errorf("%w: %s: %s %q (must be one of %s)",
				ErrInvalidRisk, r.ID, e.field, e.value, strings.Join(e.allowed, ", "))
		}
	}

	if r.TargetDate != "" {
		if _, err := time.Parse("2006-01-02", r.TargetDate); err != nil {
			return fmt.Errorf("%w: %s: target_date %q is not a YYYY-MM-DD date", ErrInvalidRisk, r.ID, r.TargetDate)
		}
	}
	return nil
}

// WriteRisks writes the risk register CSV.
func WriteRisks(w io.Writer, risks []Risk) error {
	rows := make([][]string, 0, len(risks))
	for _, r := range risks {
		rows = append(rows, []string{
			r.ID, r.Title, r.Description, r.Severity, r.Likelihood,
			r.Owner, r.Status, r.Treatment, r.TargetDate, joinList(r.ControlRefs),
		})
	}
	return writeRecords(w, RiskHeader, rows)
}

// scalarString renders a decoded YAML scalar; dates become YYYY-MM-DD.
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}

func withDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
