package intake

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"cyber-oasis/internal/models"
)

// Go's \s is ASCII only. The site's browser check uses the wider
// ECMAScript class, so Unicode separators and BOM are spelled out.
var (
	emailShape = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)
	phoneShape = regexp.MustCompile(`^[\+]?[0-9\s\p{Z}\x{FEFF}\-\(\)]{10,}$`)
)

type Rule string

const (
	RuleRequired Rule = "required"
	RuleEmail    Rule = "email"
	RulePhone    Rule = "phone"
)

// ValidationError reports the single rule a submission broke first.
type ValidationError struct {
	Field string
	Rule  Rule
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case RuleEmail:
		return "Invalid email format"
	case RulePhone:
		return "Invalid phone number format"
	default:
		return "Missing required field: " + e.Field
	}
}

// Code is the token used in ?error= redirects.
func (e *ValidationError) Code() string {
	switch e.Rule {
	case RuleEmail:
		return "invalid_email"
	case RulePhone:
		return "invalid_phone"
	default:
		return "missing_" + e.Field
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(v, "filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone_shape", func(fl validator.FieldLevel) bool {
		return phoneShape.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// firstFailure picks the error to report. Missing fields beat format
// errors; within each group struct field order decides.
func firstFailure(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "filled" {
			return &ValidationError{Field: fe.Field(), Rule: RuleRequired}
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email_shape":
		return &ValidationError{Field: fe.Field(), Rule: RuleEmail}
	case "phone_shape":
		return &ValidationError{Field: fe.Field(), Rule: RulePhone}
	}
	return &ValidationError{Field: fe.Field(), Rule: RuleRequired}
}

// ValidateRegistration checks f and returns it with the experience rule
// applied: the details survive only when the flag is exactly "yes".
func ValidateRegistration(f RegistrationForm) (RegistrationForm, error) {
	if err := validate.Struct(f); err != nil {
		return f, firstFailure(err)
	}
	if f.HackathonExperience != "yes" {
		f.HackathonSpecify = ""
	}
	return f, nil
}

func ValidateContact(f ContactForm) (ContactForm, error) {
	if err := validate.Struct(f); err != nil {
		return f, firstFailure(err)
	}
	return f, nil
}

// NewRegistration stamps a validated form with its id, timestamp and the
// fixed event details.
func NewRegistration(f RegistrationForm, id, submittedAt string) models.Registration {
	r := models.Registration{
		RegistrationID:      id,
		TeamName:            f.TeamName,
		University:          f.University,
		LeaderName:          f.LeaderName,
		MemberName:          f.MemberName,
		Faculty:             f.Faculty,
		StudyLevel:          f.StudyLevel,
		FieldStudy:          f.FieldStudy,
		LeaderEmail:         f.LeaderEmail,
		LeaderPhone:         f.LeaderPhone,
		CyberKnowledge:      f.CyberKnowledge,
		HackathonExperience: f.HackathonExperience,
		SubmittedAt:         submittedAt,
		Event:               models.EventName,
		EventDate:           models.EventDate,
	}
	if f.HackathonExperience == "yes" {
		specify := f.HackathonSpecify
		r.HackathonSpecify = &specify
	}
	return r
}

func NewContact(f ContactForm, id, submittedAt string) models.Contact {
	return models.Contact{
		ContactID:   id,
		Name:        f.Name,
		Email:       f.Email,
		Message:     f.Message,
		SubmittedAt: submittedAt,
		Source:      models.ContactSource,
		Event:       models.EventName,
	}
}
