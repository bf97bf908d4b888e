package intake

// RegistrationForm is the canonical registration shape, independent of
// whether it arrived as a browser form or a JSON body. Field order is the
// order required fields are reported in.
type RegistrationForm struct {
	TeamName            string `json:"teamName" validate:"filled"`
	University          string `json:"university" validate:"filled"`
	LeaderName          string `json:"leaderName" validate:"filled"`
	MemberName          string `json:"memberName" validate:"filled"`
	Faculty             string `json:"faculty" validate:"filled"`
	StudyLevel          string `json:"studyLevel" validate:"filled"`
	FieldStudy          string `json:"fieldStudy" validate:"filled"`
	LeaderEmail         string `json:"leaderEmail" validate:"filled,email_shape"`
	LeaderPhone         string `json:"leaderPhone" validate:"filled,phone_shape"`
	CyberKnowledge      string `json:"cyberKnowledge" validate:"filled"`
	HackathonExperience string `json:"hackathonExperience" validate:"filled"`
	HackathonSpecify    string `json:"hackathonSpecify"`
}

type ContactForm struct {
	Name    string `json:"name" validate:"filled"`
	Email   string `json:"email" validate:"filled,email_shape"`
	Message string `json:"message" validate:"filled"`
}

// lookup returns the first non-empty value among keys.
func lookup(fields map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := fields[k]; v != "" {
			return v
		}
	}
	return ""
}

// MapRegistration accepts both the hyphenated names used by the site's
// form (team-name) and the camelCase names used by API callers (teamName).
func MapRegistration(fields map[string]string) RegistrationForm {
	return RegistrationForm{
		TeamName:            lookup(fields, "team-name", "teamName"),
		University:          lookup(fields, "university"),
		LeaderName:          lookup(fields, "leader-name", "leaderName"),
		MemberName:          lookup(fields, "member-name", "memberName"),
		Faculty:             lookup(fields, "faculty"),
		StudyLevel:          lookup(fields, "study-level", "studyLevel"),
		FieldStudy:          lookup(fields, "field-study", "fieldStudy"),
		LeaderEmail:         lookup(fields, "leader-email", "leaderEmail"),
		LeaderPhone:         joinPhone(lookup(fields, "country-code", "countryCode"), lookup(fields, "leader-phone", "leaderPhone")),
		CyberKnowledge:      lookup(fields, "cyber-knowledge", "cyberKnowledge"),
		HackathonExperience: lookup(fields, "hackathon-experience", "hackathonExperience"),
		HackathonSpecify:    lookup(fields, "hackathon-specify", "hackathonSpecify"),
	}
}

func joinPhone(countryCode, number string) string {
	switch {
	case countryCode != "" && number != "":
		return countryCode + number
	case number != "":
		return number
	default:
		return countryCode
	}
}

func MapContact(fields map[string]string) ContactForm {
	return ContactForm{
		Name:    lookup(fields, "contact-name", "name"),
		Email:   lookup(fields, "contact-email", "email"),
		Message: lookup(fields, "contact-message", "message"),
	}
}
