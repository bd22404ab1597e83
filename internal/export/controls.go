package export

import "io"

// ControlHeader is the column order of the control map.
var ControlHeader = []string{"framework", "function", "category", "control_id", "title", "description"}

// CSFFramework names the framework of the seed catalog.
const CSFFramework = "NIST CSF 2.0"

// Control is one framework control.
type Control struct {
	Function    string // e.g. IDENTIFY
	Category    string // e.g. GV
	ID          string // e.g. ID.GV-01
	Title       string
	Description string
}

// CSFControls returns the NIST CSF 2.0 seed catalog, one control per function.
func CSFControls() []Control {
	return []Control{
		{"IDENTIFY", "GV", "ID.GV-01", "Governance program established",
			"Roles, responsibilities, and authorities established and communicated."},
		{"PROTECT", "PR", "PR.AC-01", "Identity management",
			"Identities are issued, managed, verified, revoked for users and services."},
		{"DETECT", "DE", "DE.AE-01", "Anomalies detected",
			"Potential cybersecurity events are detected in a timely manner."},
		{"RESPOND", "RS", "RS.MA-01", "Incident response plan",
			"Documented IR plan with roles, communications, and procedures."},
		{"RECOVER", "RC", "RC.CO-01", "Recovery planning",
			"Documented recovery plans are maintained and tested."},
	}
}

// WriteControls writes controls as the control map CSV under framework.
func WriteControls(w io.Writer, framework string, controls []Control) error {
	rows := make([][]string, 0, len(controls))
	for _, c := range controls {
		rows = append(rows, []string{framework, c.Function, c.Category, c.ID, c.Title, c.Description})
	}
	return writeRecords(w, ControlHeader, rows)
}
