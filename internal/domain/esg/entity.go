package esg

// Status enum for tracked data points.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Confidence enum for tracked data points.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Priority shared by policies and action items.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PolicyStatus lifecycle
type PolicyStatus string

const (
	PolicyNotStarted  PolicyStatus = "not_started"
	PolicyDrafting    PolicyStatus = "drafting"
	PolicyUnderReview PolicyStatus = "under_review"
	PolicyApproved    PolicyStatus = "approved"
	PolicyPublished   PolicyStatus = "published"
)

// Origin tells seeded catalog entries apart from user-added ones.
type Origin string

const (
	OriginSeeded Origin = "seeded"
	OriginCustom Origin = "custom"
)

// ActionStatus for action items.
type ActionStatus string

const (
	ActionTodo       ActionStatus = "todo"
	ActionInProgress ActionStatus = "in_progress"
	ActionDone       ActionStatus = "done"
)

// RAG readiness indicator used by gap analyses.
type RAG string

const (
	RAGRed   RAG = "red"
	RAGAmber RAG = "amber"
	RAGGreen RAG = "green"
)

// DocumentCategory of an uploaded or referenced file.
type DocumentCategory string

const (
	CategoryCertificate DocumentCategory = "certificate"
	CategoryPolicy      DocumentCategory = "policy"
	CategoryAudit       DocumentCategory = "audit"
	CategoryEvidence    DocumentCategory = "evidence"
	CategoryReport      DocumentCategory = "report"
	CategoryOther       DocumentCategory = "other"
)

type CompanyProfile struct {
	LegalName              string `json:"legal_name"`
	TradingName            string `json:"trading_name,omitempty"`
	CountryOfIncorporation string `json:"country_of_incorporation,omitempty"`
	EmployeeCount          int    `json:"employee_count,omitempty"`
	ESGContactName         string `json:"esg_contact_name,omitempty"`
	ESGContactEmail        string `json:"esg_contact_email,omitempty"`
}

type MaterialTopic struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsMaterial  bool   `json:"is_material"`
}

type MaterialityAssessment struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id,omitempty"`
	QuestionNumber int    `json:"question_number"`
	Answer         string `json:"answer"` // yes | no | unsure
	AnsweredAt     string `json:"answered_at,omitempty"`
}

type GapAnalysis struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id,omitempty"`
	TopicID   string          `json:"topic_id"`
	Status    RAG             `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	Checklist map[string]bool `json:"checklist,omitempty"`
}

type ActionItem struct {
	ID          string       `json:"id"`
	CompanyID   string       `json:"company_id,omitempty"`
	TopicID     string       `json:"topic_id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Assignee    string       `json:"assignee,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	Status      ActionStatus `json:"status"`
	Priority    Priority     `json:"priority"`
}

type Document struct {
	ID              string           `json:"id"`
	TopicID         string           `json:"topic_id,omitempty"`
	Filename        string           `json:"filename"`
	FileURL         string           `json:"file_url,omitempty"`
	FileSize        int64            `json:"file_size,omitempty"`
	MimeType        string           `json:"mime_type,omitempty"`
	Category        DocumentCategory `json:"category,omitempty"`
	ValidUntil      string           `json:"valid_until,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
}

type Policy struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category,omitempty"` // environmental | social | governance
	Exists       bool         `json:"exists"`
	Status       PolicyStatus `json:"status"`
	Priority     Priority     `json:"priority"`
	FileLocation string       `json:"file_location,omitempty"`
	Origin       Origin       `json:"origin"`
}

type ConfidenceRecord struct {
	ID         string     `json:"id"`
	DataPoint  string     `json:"data_point"`
	Category   string     `json:"category"`
	Label      string     `json:"label"`
	Required   bool       `json:"required"`
	Status     Status     `json:"status"`
	Confidence Confidence `json:"confidence"`
	Notes      string     `json:"notes,omitempty"`
}

type CustomerRequest struct {
	ID             string   `json:"id"`
	CustomerName   string   `json:"customer_name"`
	Platform       string   `json:"platform,omitempty"`
	DateReceived   string   `json:"date_received,omitempty"`
	Deadline       string   `json:"deadline,omitempty"`
	Status         string   `json:"status"`
	SelectedTopics []string `json:"selected_topics,omitempty"`
	ResponseSentAt string   `json:"response_sent_at,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type MasterAnswer struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Topic      string     `json:"topic,omitempty"`
	Confidence Confidence `json:"confidence,omitempty"`
	Keywords   string     `json:"keywords,omitempty"`
}
