package intake

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyber-oasis/internal/models"
)

func validForm() RegistrationForm {
	return RegistrationForm{
		TeamName:            "Alpha",
		University:          "U",
		LeaderName:          "A",
		MemberName:          "B",
		Faculty:             "F",
		StudyLevel:          "bsc",
		FieldStudy:          "CS",
		LeaderEmail:         "a@b.com",
		LeaderPhone:         "+21612345678",
		CyberKnowledge:      "beginner",
		HackathonExperience: "no",
	}
}

func TestMapRegistration_HyphenAndCamelAgree(t *testing.T) {
	hyphen := MapRegistration(map[string]string{
		"team-name":            "X",
		"leader-name":          "Lead",
		"leader-email":         "l@x.io",
		"hackathon-experience": "yes",
		"hackathon-specify":    "two CTFs",
	})
	camel := MapRegistration(map[string]string{
		"teamName":            "X",
		"leaderName":          "Lead",
		"leaderEmail":         "l@x.io",
		"hackathonExperience": "yes",
		"hackathonSpecify":    "two CTFs",
	})
	assert.Equal(t, hyphen, camel)
	assert.Equal(t, "X", hyphen.TeamName)
	assert.Equal(t, "", hyphen.University)
}

func TestMapRegistration_HyphenWins(t *testing.T) {
	f := MapRegistration(map[string]string{"team-name": "Form", "teamName": "API"})
	assert.Equal(t, "Form", f.TeamName)

	f = MapRegistration(map[string]string{"team-name": "", "teamName": "API"})
	assert.Equal(t, "API", f.TeamName)
}

func TestMapRegistration_Idempotent(t *testing.T) {
	in := map[string]string{"team-name": "X", "university": "U"}
	assert.Equal(t, MapRegistration(in), MapRegistration(in))
}

func TestMapRegistration_Phone(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"both", map[string]string{"country-code": "+216", "leader-phone": "12345678"}, "+21612345678"},
		{"camel both", map[string]string{"countryCode": "+216", "leaderPhone": "12345678"}, "+21612345678"},
		{"number only", map[string]string{"leaderPhone": "+21612345678"}, "+21612345678"},
		{"code only", map[string]string{"country-code": "+216"}, "+216"},
		{"none", map[string]string{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapRegistration(tc.fields).LeaderPhone)
		})
	}
}

func TestMapContact(t *testing.T) {
	a := MapContact(map[string]string{"name": "N", "email": "n@x.io", "message": "hi"})
	b := MapContact(map[string]string{"contact-name": "N", "contact-email": "n@x.io", "contact-message": "hi"})
	assert.Equal(t, a, b)
	assert.Equal(t, ContactForm{Name: "N", Email: "n@x.io", Message: "hi"}, a)
}

func TestValidateRegistration_Valid(t *testing.T) {
	f, err := ValidateRegistration(validForm())
	require.NoError(t, err)
	assert.Equal(t, "Alpha", f.TeamName)
}

func TestValidateRegistration_FirstMissingWins(t *testing.T) {
	f := validForm()
	f.TeamName = ""
	f.LeaderEmail = ""

	_, err := ValidateRegistration(f)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "teamName", verr.Field)
	assert.Equal(t, RuleRequired, verr.Rule)
	assert.Equal(t, "Missing required field: teamName", verr.Error())
	assert.Equal(t, "missing_teamName", verr.Code())
}

func TestValidateRegistration_WhitespaceIsMissing(t *testing.T) {
	f := validForm()
	f.Faculty = "   "

	_, err := ValidateRegistration(f)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "faculty", verr.Field)
}

func TestValidateRegistration_MissingBeatsFormat(t *testing.T) {
	f := validForm()
	f.LeaderEmail = "not-an-email"
	f.HackathonExperience = ""

	_, err := ValidateRegistration(f)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hackathonExperience", verr.Field)
	assert.Equal(t, RuleRequired, verr.Rule)
}

func TestValidateRegistration_EverySingleMissingField(t *testing.T) {
	order := []string{
		"teamName", "university", "leaderName", "memberName", "faculty", "studyLevel",
		"fieldStudy", "leaderEmail", "leaderPhone", "cyberKnowledge", "hackathonExperience",
	}
	blank := map[string]func(*RegistrationForm){
		"teamName":            func(f *RegistrationForm) { f.TeamName = "" },
		"university":          func(f *RegistrationForm) { f.University = "" },
		"leaderName":          func(f *RegistrationForm) { f.LeaderName = "" },
		"memberName":          func(f *RegistrationForm) { f.MemberName = "" },
		"faculty":             func(f *RegistrationForm) { f.Faculty = "" },
		"studyLevel":          func(f *RegistrationForm) { f.StudyLevel = "" },
		"fieldStudy":          func(f *RegistrationForm) { f.FieldStudy = "" },
		"leaderEmail":         func(f *RegistrationForm) { f.LeaderEmail = "" },
		"leaderPhone":         func(f *RegistrationForm) { f.LeaderPhone = "" },
		"cyberKnowledge":      func(f *RegistrationForm) { f.CyberKnowledge = "" },
		"hackathonExperience": func(f *RegistrationForm) { f.HackathonExperience = "" },
	}
	for _, field := range order {
		t.Run(field, func(t *testing.T) {
			f := validForm()
			blank[field](&f)
			_, err := ValidateRegistration(f)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestValidateRegistration_Email(t *testing.T) {
	bad := []string{
		"plain", "a@b", "@b.com", "a@.com ", "a b@c.com", "a@b.c@d",
		"a\u00a0b@c.com", "a@b\u2003c.com", "a@b.c\u2028om", "\ufeffa@b.com",
	}
	for _, email := range bad {
		f := validForm()
		f.LeaderEmail = email
		_, err := ValidateRegistration(f)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, email)
		assert.Equal(t, RuleEmail, verr.Rule, email)
		assert.Equal(t, "invalid_email", verr.Code())
	}

	good := []string{"a@b.com", "first.last@uni.edu.tn", "x+tag@sub.domain.org"}
	for _, email := range good {
		f := validForm()
		f.LeaderEmail = email
		_, err := ValidateRegistration(f)
		assert.NoError(t, err, email)
	}
}

func TestValidateRegistration_Phone(t *testing.T) {
	good := []string{"+21612345678", "0612345678", "+216 12 345 678", "(216) 123-45678", "+216\u00a012\u00a0345\u00a0678"}
	for _, phone := range good {
		f := validForm()
		f.LeaderPhone = phone
		_, err := ValidateRegistration(f)
		assert.NoError(t, err, phone)
	}

	bad := []string{"12345", "+216abc45678", "++21612345678", "phone: 21612345678"}
	for _, phone := range bad {
		f := validForm()
		f.LeaderPhone = phone
		_, err := ValidateRegistration(f)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, phone)
		assert.Equal(t, RulePhone, verr.Rule, phone)
		assert.Equal(t, "Invalid phone number format", verr.Error())
	}
}

func TestValidateRegistration_EmailCheckedBeforePhone(t *testing.T) {
	f := validForm()
	f.LeaderEmail = "bad"
	f.LeaderPhone = "123"
	_, err := ValidateRegistration(f)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, RuleEmail, verr.Rule)
}

func TestValidateRegistration_ExperienceRule(t *testing.T) {
	cases := []struct {
		flag string
		keep bool
	}{
		{"yes", true},
		{"no", false},
		{"Yes", false},
		{"YES", false},
		{"maybe", false},
	}
	for _, tc := range cases {
		t.Run(tc.flag, func(t *testing.T) {
			f := validForm()
			f.HackathonExperience = tc.flag
			f.HackathonSpecify = "HackTheBox finals"

			got, err := ValidateRegistration(f)
			require.NoError(t, err)
			rec := NewRegistration(got, "CO-1-2", "2025-10-01T00:00:00.000Z")
			if tc.keep {
				require.NotNil(t, rec.HackathonSpecify)
				assert.Equal(t, "HackTheBox finals", *rec.HackathonSpecify)
			} else {
				assert.Empty(t, got.HackathonSpecify)
				assert.Nil(t, rec.HackathonSpecify)
			}
		})
	}
}

func TestNewRegistration_FixedFields(t *testing.T) {
	rec := NewRegistration(validForm(), "CO-ABC-DEF", "2025-10-01T00:00:00.000Z")
	assert.Equal(t, "CO-ABC-DEF", rec.RegistrationID)
	assert.Equal(t, models.EventName, rec.Event)
	assert.Equal(t, models.EventDate, rec.EventDate)
	assert.Equal(t, "2025-10-01T00:00:00.000Z", rec.SubmittedAt)
	assert.Equal(t, models.TableRegistrations, rec.Kind())
}

func TestValidateContact(t *testing.T) {
	_, err := ValidateContact(ContactForm{Name: "N", Email: "n@x.io", Message: "hello"})
	require.NoError(t, err)

	_, err = ValidateContact(ContactForm{Email: "bad", Message: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = ValidateContact(ContactForm{Name: "N", Email: "bad", Message: "m"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, RuleEmail, verr.Rule)

	c := NewContact(ContactForm{Name: "N", Email: "n@x.io", Message: "m"}, "CONTACT-1-2", "ts")
	assert.Equal(t, models.ContactSource, c.Source)
	assert.Equal(t, models.EventName, c.Event)
	assert.Equal(t, models.TableContacts, c.Kind())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, BodyJSON, KindOf("application/json; charset=utf-8"))
	assert.Equal(t, BodyForm, KindOf("application/x-www-form-urlencoded"))
	assert.Equal(t, BodyForm, KindOf("multipart/form-data; boundary=xyz"))
	assert.Equal(t, BodyUnknown, KindOf("text/plain"))
	assert.Equal(t, BodyUnknown, KindOf(""))
}

func TestDecode_JSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"teamName":"Alpha","leaderPhone":21612345678,"accepted":true,"hackathonSpecify":null}`))
	r.Header.Set("Content-Type", "application/json")

	body, err := Decode(httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Equal(t, BodyJSON, body.Kind)
	assert.Equal(t, "Alpha", body.Fields["teamName"])
	assert.Equal(t, "21612345678", body.Fields["leaderPhone"])
	assert.Equal(t, "true", body.Fields["accepted"])
	assert.Equal(t, "", body.Fields["hackathonSpecify"])
	assert.Equal(t, []string{"accepted", "hackathonSpecify", "leaderPhone", "teamName"}, body.Keys())
}

func TestDecode_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"teamName":`))
	r.Header.Set("Content-Type", "application/json")

	body, err := Decode(httptest.NewRecorder(), r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedBody))
	assert.Equal(t, BodyJSON, body.Kind)
}

func TestDecode_EmptyJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(""))
	r.Header.Set("Content-Type", "application/json")

	_, err := Decode(httptest.NewRecorder(), r)
	require.ErrorIs(t, err, ErrMalformedBody)
}

func TestDecode_URLEncoded(t *testing.T) {
	form := url.Values{"team-name": {"Alpha"}, "country-code": {"+216"}, "leader-phone": {"12345678"}}
	r := httptest.NewRequest(http.MethodPost, "/api/form-handler", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := Decode(httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Equal(t, BodyForm, body.Kind)
	assert.Equal(t, "+21612345678", MapRegistration(body.Fields).LeaderPhone)
}

func TestDecode_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("team-name", "Alpha"))
	require.NoError(t, mw.WriteField("university", "U"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/form-handler", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := Decode(httptest.NewRecorder(), r)
	require.NoError(t, err)
	assert.Equal(t, BodyForm, body.Kind)
	assert.Equal(t, "Alpha", body.Fields["team-name"])
	assert.Equal(t, "U", body.Fields["university"])
}

func TestDecode_Unknown(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("teamName=Alpha"))
	r.Header.Set("Content-Type", "text/plain")

	body, err := Decode(httptest.NewRecorder(), r)
	require.ErrorIs(t, err, ErrUnsupportedContentType)
	assert.Equal(t, BodyUnknown, body.Kind)
}

func TestDecode_TooLarge(t *testing.T) {
	big := `{"message":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(big))
	r.Header.Set("Content-Type", "application/json")

	_, err := Decode(httptest.NewRecorder(), r)
	require.ErrorIs(t, err, ErrMalformedBody)
}
