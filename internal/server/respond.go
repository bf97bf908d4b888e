package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"cyber-oasis/internal/config"
	"cyber-oasis/internal/intake"
	"cyber-oasis/internal/models"
	"cyber-oasis/internal/util"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// form describes one submission type for the presenters.
type form struct {
	label    string // used in page titles, "Registration" or "Contact"
	success  string
	failure  string
	thanks   string
	details  []string
	backHref string
	backText string
}

var (
	registrationForm = form{
		label:   "Registration",
		success: "Registration submitted successfully!",
		failure: "Failed to process registration. Please try again later.",
		thanks: "Thank you for registering for " + models.EventName + "! " +
			"We have received your registration and will contact you soon with further details.",
		details: []string{
			"You will receive a confirmation email shortly",
			"Event details will be sent closer to the date",
			"Join our community for updates and networking",
		},
		backHref: "/",
		backText: "Back to Registration",
	}
	contactForm = form{
		label:    "Contact",
		success:  "Message sent successfully! We will get back to you soon.",
		failure:  "Failed to send message. Please try again later.",
		thanks:   "Thank you for reaching out. The organizers will get back to you soon.",
		backHref: "/#contact",
		backText: "Back to Contact",
	}
)

// presenter renders the three outcomes of a submission. Which one is used
// depends on how the body arrived.
type presenter interface {
	success(w http.ResponseWriter, f form, resp models.SubmitResponse)
	invalid(w http.ResponseWriter, f form, verr *intake.ValidationError)
	failure(w http.ResponseWriter, f form)
}

func (s *Server) presenterFor(kind intake.BodyKind) presenter {
	if kind != intake.BodyForm {
		return jsonPresenter{}
	}
	if s.cfg.FormResponseMode == config.FormModeRedirect {
		return redirectPresenter{}
	}
	return pagePresenter{log: s.log}
}

// ---------- json ----------

type jsonPresenter struct{}

func (jsonPresenter) success(w http.ResponseWriter, f form, resp models.SubmitResponse) {
	writeJSON(w, http.StatusOK, resp)
}

func (jsonPresenter) invalid(w http.ResponseWriter, f form, verr *intake.ValidationError) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Error(), Field: verr.Field})
}

func (jsonPresenter) failure(w http.ResponseWriter, f form) {
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Error:   "Internal server error",
		Message: f.failure,
	})
}

// ---------- page ----------

type pageData struct {
	Title          string
	Heading        string
	Message        string
	Field          string
	Reference      string
	DetailsHeading string
	Details        []string
	BackHref       string
	BackLabel      string
	RedirectAfter  int
}

type pagePresenter struct {
	log *zap.Logger
}

func (p pagePresenter) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		p.log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func (p pagePresenter) success(w http.ResponseWriter, f form, resp models.SubmitResponse) {
	ref := resp.RegistrationID
	if ref == "" {
		ref = resp.ContactID
	}
	heading := f.label + " Successful!"
	if f.label == contactForm.label {
		heading = "Message Sent!"
	}
	p.render(w, http.StatusOK, "success.html", pageData{
		Title:          f.label + " Successful",
		Heading:        heading,
		Message:        f.thanks,
		Reference:      ref,
		DetailsHeading: "What's Next?",
		Details:        f.details,
		RedirectAfter:  10,
	})
}

func (p pagePresenter) invalid(w http.ResponseWriter, f form, verr *intake.ValidationError) {
	data := pageData{
		Title:     f.label + " Error",
		Heading:   f.label + " Error",
		BackHref:  f.backHref,
		BackLabel: f.backText,
	}
	switch verr.Rule {
	case intake.RuleEmail:
		data.Message = "Please enter a valid email address and try again."
	case intake.RulePhone:
		data.Message = "Please enter a valid phone number and try again."
	default:
		data.Field = util.HumanizeField(verr.Field)
	}
	p.render(w, http.StatusBadRequest, "error.html", data)
}

func (p pagePresenter) failure(w http.ResponseWriter, f form) {
	p.render(w, http.StatusInternalServerError, "error.html", pageData{
		Title:          f.label + " Error",
		Heading:        f.label + " Error",
		Message:        "We're experiencing technical difficulties. Please try again later or contact us directly.",
		DetailsHeading: "What to do next?",
		Details: []string{
			"Try submitting the form again",
			"Contact us directly if the problem persists",
			"We'll be back online shortly",
		},
		BackHref:  f.backHref,
		BackLabel: f.backText,
	})
}

// ---------- redirect ----------

// redirectPresenter sends the browser back to the site; the page script
// reads the success and error query parameters.
type redirectPresenter struct{}

func redirectTo(w http.ResponseWriter, key, value string) {
	q := url.Values{}
	q.Set(key, value)
	w.Header().Set("Location", "/?"+q.Encode())
	w.WriteHeader(http.StatusFound)
}

func (redirectPresenter) success(w http.ResponseWriter, f form, resp models.SubmitResponse) {
	redirectTo(w, "success", "true")
}

func (redirectPresenter) invalid(w http.ResponseWriter, f form, verr *intake.ValidationError) {
	redirectTo(w, "error", verr.Code())
}

func (redirectPresenter) failure(w http.ResponseWriter, f form) {
	redirectTo(w, "error", "server_error")
}
