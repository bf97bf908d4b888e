package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"cyber-oasis/internal/intake"
	"cyber-oasis/internal/models"
	"cyber-oasis/internal/util"
)

// rejectBody answers bodies that could not be decoded. These never reach a
// presenter: the content type alone does not say who is calling.
func (s *Server) rejectBody(w http.ResponseWriter, err error) {
	msg := "Request body could not be parsed"
	if errors.Is(err, intake.ErrUnsupportedContentType) {
		msg = "Unsupported content type"
	}
	s.log.Warn("rejected submission body", zap.Error(err))
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg, Message: err.Error()})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := intake.Decode(w, r)
	if err != nil {
		s.rejectBody(w, err)
		return
	}
	p := s.presenterFor(body.Kind)

	f, err := intake.ValidateRegistration(intake.MapRegistration(body.Fields))
	if err != nil {
		s.rejectInvalid(w, p, registrationForm, body, err)
		return
	}

	id, err := s.ids.Registration()
	if err != nil {
		s.log.Error("generate registration id", zap.Error(err))
		p.failure(w, registrationForm)
		return
	}
	rec := intake.NewRegistration(f, id, util.FormatISO(s.now()))

	s.save(r.Context(), rec, id)
	s.notifyAll(r.Context(), s.registrationNotifications(rec))

	p.success(w, registrationForm, models.SubmitResponse{
		Success:        true,
		Message:        registrationForm.success,
		RegistrationID: id,
		Data: models.RegistrationSummary{
			TeamName:    rec.TeamName,
			LeaderEmail: rec.LeaderEmail,
			SubmittedAt: rec.SubmittedAt,
		},
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	body, err := intake.Decode(w, r)
	if err != nil {
		s.rejectBody(w, err)
		return
	}
	p := s.presenterFor(body.Kind)

	f, err := intake.ValidateContact(intake.MapContact(body.Fields))
	if err != nil {
		s.rejectInvalid(w, p, contactForm, body, err)
		return
	}

	id, err := s.ids.Contact()
	if err != nil {
		s.log.Error("generate contact id", zap.Error(err))
		p.failure(w, contactForm)
		return
	}
	rec := intake.NewContact(f, id, util.FormatISO(s.now()))

	s.save(r.Context(), rec, id)
	s.notifyAll(r.Context(), s.contactNotifications(rec))

	p.success(w, contactForm, models.SubmitResponse{
		Success:   true,
		Message:   contactForm.success,
		ContactID: id,
		Data: models.ContactSummary{
			Name:        rec.Name,
			Email:       rec.Email,
			SubmittedAt: rec.SubmittedAt,
		},
	})
}

func (s *Server) rejectInvalid(w http.ResponseWriter, p presenter, f form, body intake.Body, err error) {
	var verr *intake.ValidationError
	if !errors.As(err, &verr) {
		s.log.Error("validate submission", zap.String("form", f.label), zap.Error(err))
		p.failure(w, f)
		return
	}
	s.log.Info("submission rejected",
		zap.String("form", f.label),
		zap.String("field", verr.Field),
		zap.String("rule", string(verr.Rule)),
		zap.Strings("keys", body.Keys()),
	)
	p.invalid(w, f, verr)
}

// save appends rec to the sheet. A failed or skipped write never fails the
// submission; it is only logged.
func (s *Server) save(ctx context.Context, rec models.Record, id string) {
	if s.store == nil {
		s.log.Warn("spreadsheet not configured, submission not stored",
			zap.String("table", string(rec.Kind())),
			zap.String("id", id),
		)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	if err := s.store.Append(ctx, rec); err != nil {
		s.log.Error("store submission",
			zap.String("table", string(rec.Kind())),
			zap.String("id", id),
			zap.Error(err),
		)
		return
	}
	s.log.Info("submission stored",
		zap.String("table", string(rec.Kind())),
		zap.String("id", id),
	)
}
