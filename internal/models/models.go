package models

const (
	EventName     = "Cyber Oasis 1.0: Hack the Dunes"
	EventDate     = "October 24-26, 2025"
	ContactSource = "Cyber Oasis 1.0 Website"
)

// TableKind names one of the logical tables multiplexed onto the sheet.
type TableKind string

const (
	TableRegistrations TableKind = "registrations"
	TableContacts      TableKind = "contacts"
)

type Record interface {
	Kind() TableKind
}

type Registration struct {
	RegistrationID      string  `json:"registrationId"`
	TeamName            string  `json:"teamName"`
	University          string  `json:"university"`
	LeaderName          string  `json:"leaderName"`
	MemberName          string  `json:"memberName"`
	Faculty             string  `json:"faculty"`
	StudyLevel          string  `json:"studyLevel"`
	FieldStudy          string  `json:"fieldStudy"`
	LeaderEmail         string  `json:"leaderEmail"`
	LeaderPhone         string  `json:"leaderPhone"` // country code + number
	CyberKnowledge      string  `json:"cyberKnowledge"`
	HackathonExperience string  `json:"hackathonExperience"` // "yes"/"no"
	HackathonSpecify    *string `json:"hackathonSpecify"`    // nil unless experience == "yes"
	SubmittedAt         string  `json:"submittedAt"`
	Event               string  `json:"event"`
	EventDate           string  `json:"eventDate"`
}

func (Registration) Kind() TableKind { return TableRegistrations }

type Contact struct {
	ContactID   string `json:"contactId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submittedAt"`
	Source      string `json:"source"`
	Event       string `json:"event"`
}

func (Contact) Kind() TableKind { return TableContacts }

// Audience decides who a notification is meant for.
type Audience string

const (
	AudienceOrganizers Audience = "organizers"
	AudienceSender     Audience = "sender"
)

type Notification struct {
	Audience Audience          `json:"audience"`
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

// Response types

type SubmitResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RegistrationID string `json:"registrationId,omitempty"`
	ContactID      string `json:"contactId,omitempty"`
	Data           any    `json:"data"`
}

type RegistrationSummary struct {
	TeamName    string `json:"teamName"`
	LeaderEmail string `json:"leaderEmail"`
	SubmittedAt string `json:"submittedAt"`
}

type ContactSummary struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	SubmittedAt string `json:"submittedAt"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

type TableSnapshot struct {
	Count       int                 `json:"count"`
	Submissions []map[string]string `json:"submissions"`
}

type AdminSummary struct {
	TotalRegistrations int    `json:"totalRegistrations"`
	TotalContacts      int    `json:"totalContacts"`
	LastUpdated        string `json:"lastUpdated"`
}

type AdminData struct {
	Registrations TableSnapshot `json:"registrations"`
	Contacts      TableSnapshot `json:"contacts"`
	Summary       AdminSummary  `json:"summary"`
}

type AdminResponse struct {
	Success bool      `json:"success"`
	Data    AdminData `json:"data"`
}
