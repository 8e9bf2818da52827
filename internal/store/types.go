package store

import "time"

// SchemaVersion is the persisted document version this build reads and writes.
// Documents with any other version are rejected (import) or replaced by the
// default state (load).
const SchemaVersion = 1

// StorageKey identifies the single durable record holding the whole document.
const StorageKey = "elternrat:v1"

// MemberRole classifies a council member.
type MemberRole string

const (
	RoleVorstand   MemberRole = "Vorstand"
	RoleDelegierte MemberRole = "Delegierte"
	RoleWeitere    MemberRole = "Weitere"
)

// Member is a parent-council member. Participant references from meetings are
// weak: deleting a member does not touch meetings that list it.
type Member struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       MemberRole `json:"rolle"`
	Class      string     `json:"klasse,omitempty"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"telefon,omitempty"`
	ActiveFrom string     `json:"aktivSeit,omitempty"`
	ActiveTo   string     `json:"aktivBis,omitempty"`
	Notes      string     `json:"notizen,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// MeetingStatus is the lifecycle state of meeting minutes.
type MeetingStatus string

const (
	MeetingEntwurf MeetingStatus = "Entwurf"
	MeetingFinal   MeetingStatus = "Final"
)

// TaskStatus is shared by agenda items and action items.
type TaskStatus string

const (
	TaskOffen    TaskStatus = "Offen"
	TaskInArbeit TaskStatus = "In Arbeit"
	TaskErledigt TaskStatus = "Erledigt"
)

// Traktandum is a single agenda item of a meeting.
type Traktandum struct {
	ID          string     `json:"id"`
	Title       string     `json:"titel"`
	Description string     `json:"beschreibung,omitempty"`
	Owner       string     `json:"verantwortlich,omitempty"`
	Status      TaskStatus `json:"status,omitempty"`
}

// Beschluss is a resolution recorded during a meeting.
type Beschluss struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Owner    string `json:"verantwortlich,omitempty"`
	Deadline string `json:"frist,omitempty"`
}

// Pendenz is an action item tracked across meetings.
type Pendenz struct {
	ID      string     `json:"id"`
	Task    string     `json:"task"`
	Owner   string     `json:"owner,omitempty"`
	DueDate string     `json:"dueDate,omitempty"`
	Status  TaskStatus `json:"status"`
}

// Meeting holds one council meeting with its agenda, resolutions, action items
// and minutes.
type Meeting struct {
	ID             string        `json:"id"`
	SchoolYear     string        `json:"schuljahr"`
	Date           string        `json:"datum"`
	Start          string        `json:"start,omitempty"`
	End            string        `json:"ende,omitempty"`
	Location       string        `json:"ort,omitempty"`
	ParticipantIDs []string      `json:"teilnehmendeIds"`
	Traktanden     []Traktandum  `json:"traktanden"`
	Beschluesse    []Beschluss   `json:"beschluesse"`
	Pendenzen      []Pendenz     `json:"pendenzen"`
	Minutes        string        `json:"protokoll"`
	Status         MeetingStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	ProposalOffen        ProposalStatus = "Offen"
	ProposalInAbstimmung ProposalStatus = "In Abstimmung"
	ProposalAngenommen   ProposalStatus = "Angenommen"
	ProposalAbgelehnt    ProposalStatus = "Abgelehnt"
	ProposalErledigt     ProposalStatus = "Erledigt"
)

// Vote is a single member's vote on a proposal.
type Vote string

const (
	VoteJa         Vote = "Ja"
	VoteNein       Vote = "Nein"
	VoteEnthaltung Vote = "Enthaltung"
)

// Proposal is a motion with per-member voting. Votes are keyed by member id,
// one vote per member, last write wins; a missing key means no vote cast.
type Proposal struct {
	ID             string          `json:"id"`
	SchoolYear     string          `json:"schuljahr"`
	Title          string          `json:"titel"`
	Description    string          `json:"beschreibung,omitempty"`
	Status         ProposalStatus  `json:"status"`
	VotingDeadline string          `json:"abstimmungBis,omitempty"`
	VotesByMember  map[string]Vote `json:"votesByMemberId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// EventSource tells whether an event was entered locally or pulled from the
// schulhelfer events collaborator.
type EventSource string

const (
	SourceLokal       EventSource = "lokal"
	SourceSchulhelfer EventSource = "schulhelfer"
)

// EventItem is a calendar event. Synced events carry the collaborator's id in
// ExternalID, which acts as the natural key for idempotent re-sync.
type EventItem struct {
	ID          string      `json:"id"`
	SchoolYear  string      `json:"schuljahr"`
	Title       string      `json:"titel"`
	Description string      `json:"beschreibung,omitempty"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"ende"`
	Location    string      `json:"ort,omitempty"`
	Source      EventSource `json:"quelle"`
	ExternalID  string      `json:"externalId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// DocumentCategory groups documents on the documents page.
type DocumentCategory string

const (
	CategoryAllgemein     DocumentCategory = "Allgemein"
	CategorySitzungen     DocumentCategory = "Sitzungen"
	CategoryFinanzen      DocumentCategory = "Finanzen"
	CategoryKommunikation DocumentCategory = "Kommunikation"
	CategoryEvents        DocumentCategory = "Events"
	CategoryVorlagen      DocumentCategory = "Vorlagen"
)

// DocumentStorage tells how a document is stored.
type DocumentStorage string

const (
	StorageLink  DocumentStorage = "link"
	StorageDrive DocumentStorage = "drive"
)

// DriveRef points at a file the backend collaborator stored on our behalf.
type DriveRef struct {
	FileID      string `json:"fileId"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	WebViewLink string `json:"webViewLink"`
}

// DocumentItem is a document reference: either an external link or an
// uploaded file reference.
type DocumentItem struct {
	ID         string           `json:"id"`
	SchoolYear string           `json:"schuljahr"`
	Title      string           `json:"titel"`
	Category   DocumentCategory `json:"kategorie"`
	Date       string           `json:"datum,omitempty"`
	Tags       []string         `json:"tags"`
	Notes      string           `json:"notizen,omitempty"`
	Storage    DocumentStorage  `json:"storage"`
	LinkURL    string           `json:"linkUrl,omitempty"`
	Drive      *DriveRef        `json:"drive,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// EmailTemplate holds subject and body templates; both may contain {{var}}
// placeholders substituted at send time.
type EmailTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"betreff"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Announcement is a dated notice shown on the dashboard.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"titel"`
	Text      string    `json:"text"`
	Date      string    `json:"datum"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SchulhelferSettings configures the read-only events collaborator.
type SchulhelferSettings struct {
	Enabled bool   `json:"enabled"`
	APIURL  string `json:"apiUrl"`
	APIKey  string `json:"apiKey"`
}

// BackendSettings configures the upload/email collaborator.
type BackendSettings struct {
	Enabled           bool   `json:"enabled"`
	APIURL            string `json:"apiUrl"`
	APIKey            string `json:"apiKey"`
	DriveRootFolderID string `json:"driveRootFolderId"`
	AutoShareLink     bool   `json:"autoShareLink"`
	MaxUploadMB       int    `json:"maxUploadMB"`
}

// Settings is the non-entity part of the document. It is mutated only through
// a settings patch and never goes through the read-only gate.
type Settings struct {
	SchoolName       string              `json:"schoolName"`
	ActiveSchoolYear string              `json:"activeSchoolYear"`
	ReadOnly         bool                `json:"readOnly"`
	Timezone         string              `json:"timezone"`
	Schulhelfer      SchulhelferSettings `json:"schulhelfer"`
	Backend          BackendSettings     `json:"backend"`
}

// Entities holds the seven independent collections. Each is an ordered
// sequence keyed by id; newest-first ordering is a display convention kept up
// by prepend-on-create, not by sorting.
type Entities struct {
	Members        []Member        `json:"members"`
	Meetings       []Meeting       `json:"meetings"`
	Proposals      []Proposal      `json:"proposals"`
	Events         []EventItem     `json:"events"`
	Documents      []DocumentItem  `json:"documents"`
	EmailTemplates []EmailTemplate `json:"emailTemplates"`
	Announcements  []Announcement  `json:"announcements"`
}

// PersistedState is the root aggregate and the single unit of truth. No
// entity exists outside it. The JSON shape matches the document the browser
// version of this tool persisted, so old exports import cleanly.
type PersistedState struct {
	SchemaVersion int      `json:"schemaVersion"`
	Settings      Settings `json:"settings"`
	Entities      Entities `json:"entities"`
}
