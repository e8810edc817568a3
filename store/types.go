// Package store implements the persistence interface (C8): a keyed
// container of analysis records, uploaded file content, and code
// templates. It owns the record types so the coordinator can depend on it
// one-directionally without an import cycle.
package store

// Severity mirrors rules.Severity as a plain string so store does not
// depend on the rules package; coordinator is responsible for the mapping.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityRank orders severities for the maximum-severity sort (spec §4.6):
// critical=4 > high=3 > medium=2 > low=1, zero for anything else (including
// an empty issue list).
func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Issue is the persistence-facing view of a violation: random-suffix id,
// ruleId copied as Type, position, and fileName injected by the
// coordinator (distinct from rules.Issue, which uses a simpler
// ruleId-index scheme internal to the rule engine).
type Issue struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
	Line      int      `json:"line"`
	Column    int      `json:"column"`
	EndLine   int      `json:"endLine,omitempty"`
	EndColumn int      `json:"endColumn,omitempty"`
	FileName  string   `json:"fileName"`
}

// SuggestionView is the storage-friendly projection of a refactoring
// suggestion embedded in an AnalysisResult's summary (spec §4.5 step 6).
type SuggestionView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Effort      string `json:"effort"`
}

// Stats is derived from Issues and must always agree with it (invariant 1).
type Stats struct {
	TotalIssues    int `json:"totalIssues"`
	CriticalIssues int `json:"criticalIssues"`
	HighIssues     int `json:"highIssues"`
	MediumIssues   int `json:"mediumIssues"`
	LowIssues      int `json:"lowIssues"`
}

// AnalysisMetadata is the AnalysisResult's metadata block.
type AnalysisMetadata struct {
	ID           string  `json:"id"`
	FileName     string  `json:"fileName"`
	FileSize     int     `json:"fileSize"`
	Language     string  `json:"language"`
	AnalysisDate string  `json:"analysisDate"`
	DurationMs   float64 `json:"durationMs"`
}

// AnalysisResult is the persisted record of one analysis. Its id is
// assigned at creation and never changes.
type AnalysisResult struct {
	Metadata    AnalysisMetadata          `json:"metadata"`
	Issues      []Issue                   `json:"issues"`
	Suggestions []SuggestionView          `json:"suggestions"`
	Stats       Stats                     `json:"stats"`
	// FullSuggestions persists the complete RefactoringSuggestion set
	// (including transformations) alongside the summary view, keyed by
	// suggestion id, so POST /api/refactor/apply can look one up and apply
	// it against caller-supplied code without regenerating it.
	FullSuggestions map[string]PersistedSuggestion `json:"fullSuggestions,omitempty"`
}

// PersistedSuggestion is the full suggestion persisted for later retrieval
// by id; store is transport-agnostic so this mirrors refactor.Suggestion's
// shape without importing that package.
type PersistedSuggestion struct {
	ID              string                  `json:"id"`
	RuleID          string                  `json:"ruleId"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Transformations []PersistedTransformation `json:"transformations"`
	Confidence      string                  `json:"confidence"`
	ConfidenceScore int                     `json:"confidenceScore"`
}

// PersistedTransformation mirrors edit.CodeTransformation; store does not
// import edit to keep its dependency surface minimal and JSON-serializable.
type PersistedTransformation struct {
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	NewCode     string `json:"newCode"`
	Description string `json:"description"`
}

// MaxIssueSeverityRank returns the rank of the highest-severity issue in
// the result, 0 if Issues is empty.
func (a AnalysisResult) MaxIssueSeverityRank() int {
	max := 0
	for _, issue := range a.Issues {
		if rank := severityRank(issue.Severity); rank > max {
			max = rank
		}
	}
	return max
}

// FileRecord is an uploaded file's stored bytes and metadata.
type FileRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	Size       int    `json:"size"`
	Type       string `json:"type"` // "js" | "ts"
	Content    []byte `json:"-"`
	UploadedAt string `json:"uploadedAt"`
}

// CodeTemplate is a reusable snippet a refactoring provider may consult —
// out of core scope but named by the persistence contract.
type CodeTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// SortField selects what ListFilter sorts by.
type SortField string

const (
	SortByDate     SortField = "date"
	SortByFileName SortField = "fileName"
	SortBySeverity SortField = "severity"
)

// ListFilter is the equality/severity/pagination contract for
// ListAnalyses.
type ListFilter struct {
	FileName string
	Language string
	Severity Severity // matches if any issue has this severity
	SortBy   SortField
	Desc     bool
	Offset   int
	Limit    int // 0 means "no limit"
}
