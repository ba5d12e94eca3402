package models

// WarningSeverity is the fixed severity of an analyzer warning rule
type WarningSeverity string

const (
	SeverityError   WarningSeverity = "error"
	SeverityWarning WarningSeverity = "warning"
	SeverityInfo    WarningSeverity = "info"
)

// StructureWarning is one finding emitted by the structure analyzer
type StructureWarning struct {
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// SectionFlags are independent booleans describing which document
// sections were detected.
type SectionFlags struct {
	HasTitle       bool `json:"has_title"`       // H1 present
	HasFrontmatter bool `json:"has_frontmatter"` // ---...--- block at document start
	HasURL         bool `json:"has_url"`         // URL section or source: line
	HasContent     bool `json:"has_content"`     // Content heading or >5 non-empty lines
	HasMetadata    bool `json:"has_metadata"`    // Metadata heading or metadata keywords
}

// StructureMetrics are the raw counts over a markdown document
type StructureMetrics struct {
	WordCount      int `json:"word_count"`
	ParagraphCount int `json:"paragraph_count"`
	HeadingCount   int `json:"heading_count"`
	ListItemCount  int `json:"list_item_count"`
	CodeBlockCount int `json:"code_block_count"`
	LinkCount      int `json:"link_count"`
}

// HealthScore is the 0-100 additive fitness score with its grade
type HealthScore struct {
	Score       int    `json:"score"`
	Grade       string `json:"grade"` // Excellent, Good, Fair, Poor
	Color       string `json:"color"`
	Description string `json:"description"`
}

// AIReadability is the independent 0-100 machine-readability sub-score
type AIReadability struct {
	Score   int      `json:"score"`
	Factors []string `json:"factors"` // Human-readable adjustments applied
}

// StructureAnalysis is a derived, read-only view over a markdown
// string. Pure function of the input; recomputed on every call.
type StructureAnalysis struct {
	Sections      SectionFlags       `json:"sections"`
	Metrics       StructureMetrics   `json:"metrics"`
	Headings      []string           `json:"headings"` // Heading text in document order
	Warnings      []StructureWarning `json:"warnings"`
	Health        HealthScore        `json:"health"`
	AIReadability AIReadability      `json:"ai_readability"`
}
