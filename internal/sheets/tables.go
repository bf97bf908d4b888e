package sheets

import (
	"fmt"

	"cyber-oasis/internal/models"
)

// Both logical tables live side by side on one tab: registrations in
// columns A:P, contacts in R:X. Column Q stays empty as a separator.
type table struct {
	kind    models.TableKind
	first   string // first column letter
	headers []string
}

var registrationTable = table{
	kind:  models.TableRegistrations,
	first: "A",
	headers: []string{
		"Timestamp",
		"Registration ID",
		"Team Name",
		"University",
		"Leader Name",
		"Member Name",
		"Faculty",
		"Study Level",
		"Field of Study",
		"Leader Email",
		"Leader Phone",
		"Cyber Knowledge",
		"Hackathon Experience",
		"Hackathon Details",
		"Event",
		"Event Date",
	},
}

var contactTable = table{
	kind:  models.TableContacts,
	first: "R",
	headers: []string{
		"Timestamp",
		"Contact ID",
		"Name",
		"Email",
		"Message",
		"Source",
		"Event",
	},
}

func tableFor(kind models.TableKind) (table, error) {
	switch kind {
	case models.TableRegistrations:
		return registrationTable, nil
	case models.TableContacts:
		return contactTable, nil
	default:
		return table{}, fmt.Errorf("unknown table %q", kind)
	}
}

func (t table) last() string {
	return columnName(columnIndex(t.first) + len(t.headers) - 1)
}

// columns is the whole-column range, e.g. Sheet1!A:P.
func (t table) columns(sheet string) string {
	return fmt.Sprintf("%s!%s:%s", sheet, t.first, t.last())
}

// headerRange is row 1 of the table, e.g. Sheet1!A1:P1.
func (t table) headerRange(sheet string) string {
	return fmt.Sprintf("%s!%s1:%s1", sheet, t.first, t.last())
}

// Headers returns a copy of the header row for kind.
func Headers(kind models.TableKind) []string {
	t, err := tableFor(kind)
	if err != nil {
		return nil
	}
	return append([]string(nil), t.headers...)
}

// encode lays a record out in header order.
func encode(rec models.Record) (table, []interface{}, error) {
	switch r := rec.(type) {
	case models.Registration:
		specify := ""
		if r.HackathonSpecify != nil {
			specify = *r.HackathonSpecify
		}
		return registrationTable, []interface{}{
			r.SubmittedAt,
			r.RegistrationID,
			r.TeamName,
			r.University,
			r.LeaderName,
			r.MemberName,
			r.Faculty,
			r.StudyLevel,
			r.FieldStudy,
			r.LeaderEmail,
			r.LeaderPhone,
			r.CyberKnowledge,
			r.HackathonExperience,
			specify,
			r.Event,
			r.EventDate,
		}, nil
	case *models.Registration:
		return encode(*r)
	case models.Contact:
		return contactTable, []interface{}{
			r.SubmittedAt,
			r.ContactID,
			r.Name,
			r.Email,
			r.Message,
			r.Source,
			r.Event,
		}, nil
	case *models.Contact:
		return encode(*r)
	default:
		return table{}, nil, fmt.Errorf("cannot store record of type %T", rec)
	}
}

// columnIndex converts a column letter to a zero-based index: A=0, Z=25, AA=26.
func columnIndex(col string) int {
	n := 0
	for _, r := range col {
		n = n*26 + int(r-'A') + 1
	}
	return n - 1
}

func columnName(idx int) string {
	name := ""
	for idx >= 0 {
		name = string(rune('A'+idx%26)) + name
		idx = idx/26 - 1
	}
	return name
}
