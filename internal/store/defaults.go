package store

import "time"

// DefaultSchulhelferAPIURL is the compiled-in events-source endpoint. Earlier
// builds shipped an empty default; Reconcile substitutes this URL whenever a
// loaded document carries a blank one.
const DefaultSchulhelferAPIURL = "https://schulhelfer.jw6.us/api/exec"

const defaultTemplateID = "tpl_einladung_sitzung"

const defaultTemplateBody = "Hallo\n\n" +
	"Hiermit lade ich zur Elternrat-Sitzung ein.\n\n" +
	"Datum: {{datum}}\nZeit: {{zeit}}\nOrt: {{ort}}\n\n" +
	"Traktanden:\n{{traktanden}}\n\n" +
	"Freundliche Grüsse\nElternrat"

// DefaultState builds the canonical zero-state document: empty collections,
// one seeded invitation template, integrations disabled, school year derived
// from now. Deterministic given now; never fails.
func DefaultState(now time.Time) PersistedState {
	return PersistedState{
		SchemaVersion: SchemaVersion,
		Settings: Settings{
			SchoolName:       "Primarstufe Rittergasse",
			ActiveSchoolYear: SchoolYearAt(now),
			ReadOnly:         false,
			Timezone:         "Europe/Zurich",
			Schulhelfer: SchulhelferSettings{
				Enabled: false,
				APIURL:  DefaultSchulhelferAPIURL,
				APIKey:  "",
			},
			Backend: BackendSettings{
				Enabled:           false,
				APIURL:            "",
				APIKey:            "",
				DriveRootFolderID: "",
				AutoShareLink:     false,
				MaxUploadMB:       8,
			},
		},
		Entities: Entities{
			Members:   []Member{},
			Meetings:  []Meeting{},
			Proposals: []Proposal{},
			Events:    []EventItem{},
			Documents: []DocumentItem{},
			EmailTemplates: []EmailTemplate{
				{
					ID:        defaultTemplateID,
					Name:      "Einladung Sitzung",
					Subject:   "Einladung Elternrat – {{datum}}",
					Body:      defaultTemplateBody,
					CreatedAt: now,
					UpdatedAt: now,
				},
			},
			Announcements: []Announcement{},
		},
	}
}
