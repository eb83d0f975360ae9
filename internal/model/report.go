package model

import "time"

// PatchStatus is the outcome of one PatchSpec.
type PatchStatus string

const (
	// StatusApplied means a guard block was inserted.
	StatusApplied PatchStatus = "applied"
	// StatusAlreadyPresent means a guard was detected and nothing changed.
	StatusAlreadyPresent PatchStatus = "already_present"
	// StatusFunctionNotFound means no top-level definition matched the name.
	StatusFunctionNotFound PatchStatus = "function_not_found"
	// StatusPatternMismatch means the function or spec could not be resolved.
	StatusPatternMismatch PatchStatus = "pattern_mismatch"
	// StatusIgnored means an ignore directive opted the function out.
	StatusIgnored PatchStatus = "ignored"
)

// Failed reports whether the status leaves the function unguarded.
func (s PatchStatus) Failed() bool {
	return s == StatusFunctionNotFound || s == StatusPatternMismatch
}

// PatchOutcome records what happened to one PatchSpec.
type PatchOutcome struct {
	Function  string      `yaml:"function"`
	Kind      ScopeKind   `yaml:"kind"`
	Status    PatchStatus `yaml:"status"`
	ByteDelta int         `yaml:"byte_delta"`
	Reason    string      `yaml:"reason,omitempty"`
	Err       error       `yaml:"-"`
}

// PatchReport aggregates every outcome of the passes run over one source,
// outcomes in spec order.
type PatchReport struct {
	Target      Path           `yaml:"target,omitempty"`
	Hash        string         `yaml:"hash,omitempty"` // SHA-256 of the input
	Backup      Path           `yaml:"backup,omitempty"`
	Outcomes    []PatchOutcome `yaml:"outcomes,omitempty"`
	Duplicates  int            `yaml:"duplicates_removed"`
	LinesFixed  int            `yaml:"lines_fixed"`
	LinesStrip  int            `yaml:"lines_stripped"`
	Fixes       []LineFix      `yaml:"fixes,omitempty"`
	Unresolved  []LineIssue    `yaml:"unresolved,omitempty"`
	BytesBefore int            `yaml:"bytes_before"`
	BytesAfter  int            `yaml:"bytes_after"`
	Written     bool           `yaml:"written"`
	Error       string         `yaml:"error,omitempty"`
}

// Count returns how many outcomes have the given status.
func (r PatchReport) Count(status PatchStatus) int {
	n := 0

	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}

	return n
}

// OK reports whether every spec ended applied or already present.
func (r PatchReport) OK() bool {
	for _, o := range r.Outcomes {
		if o.Status.Failed() {
			return false
		}
	}

	return true
}

// Changed reports whether the pass produced different text.
func (r PatchReport) Changed() bool {
	return r.Count(StatusApplied) > 0 || r.Duplicates > 0 || r.LinesFixed > 0 || r.LinesStrip > 0
}

// LineFix records one line rewritten by the boundary scanner.
type LineFix struct {
	Line     int    `yaml:"line"` // 1-based
	Function string `yaml:"function"`
	Before   string `yaml:"before"`
	After    string `yaml:"after"`
}

// LineIssue records a guard line the boundary scanner could not repair.
type LineIssue struct {
	Line     int    `yaml:"line"` // 1-based
	Function string `yaml:"function"`
	Text     string `yaml:"text"`
	Reason   string `yaml:"reason"`
}

// FixupReport lists the line rewrites of one corrective pass.
type FixupReport struct {
	Regions    int         `yaml:"regions"`
	Fixes      []LineFix   `yaml:"fixes"`
	Unresolved []LineIssue `yaml:"unresolved,omitempty"`
}

// RunReport is one CLI invocation over one or more targets.
type RunReport struct {
	RunID     string        `yaml:"run_id"`
	Command   string        `yaml:"command"`
	StartedAt time.Time     `yaml:"started_at"`
	DryRun    bool          `yaml:"dry_run"`
	Files     []PatchReport `yaml:"files"`
}

// OK reports whether every file passed without error or failed outcome.
func (r RunReport) OK() bool {
	for _, f := range r.Files {
		if f.Error != "" || !f.OK() {
			return false
		}
	}

	return true
}

// Total sums the outcomes with the given status over every file.
func (r RunReport) Total(status PatchStatus) int {
	n := 0

	for _, f := range r.Files {
		n += f.Count(status)
	}

	return n
}
