package server

import (
	"context"

	"go.uber.org/zap"

	"cyber-oasis/internal/models"
	"cyber-oasis/internal/notify"
)

type outgoing struct {
	event string
	n     models.Notification
}

func (s *Server) registrationNotifications(r models.Registration) []outgoing {
	specify := ""
	if r.HackathonSpecify != nil {
		specify = *r.HackathonSpecify
	}
	return []outgoing{
		{
			event: notify.EventRegistrationConfirmation,
			n: models.Notification{
				Audience: models.AudienceSender,
				To:       r.LeaderEmail,
				Subject:  "Cyber Oasis 1.0 - Registration Confirmation",
				Template: "registration-confirmation",
				Data: map[string]string{
					"teamName":       r.TeamName,
					"leaderName":     r.LeaderName,
					"eventDate":      r.EventDate,
					"registrationId": r.RegistrationID,
				},
			},
		},
		{
			event: notify.EventRegistrationOrganizer,
			n: models.Notification{
				Audience: models.AudienceOrganizers,
				To:       s.cfg.Notify.OrganizerEmail,
				Subject:  "New Registration - Cyber Oasis 1.0",
				Template: "new-registration",
				Data: map[string]string{
					"registrationId":      r.RegistrationID,
					"teamName":            r.TeamName,
					"university":          r.University,
					"leaderName":          r.LeaderName,
					"memberName":          r.MemberName,
					"faculty":             r.Faculty,
					"studyLevel":          r.StudyLevel,
					"fieldStudy":          r.FieldStudy,
					"leaderEmail":         r.LeaderEmail,
					"leaderPhone":         r.LeaderPhone,
					"cyberKnowledge":      r.CyberKnowledge,
					"hackathonExperience": r.HackathonExperience,
					"hackathonSpecify":    specify,
					"submittedAt":         r.SubmittedAt,
				},
			},
		},
	}
}

func (s *Server) contactNotifications(c models.Contact) []outgoing {
	return []outgoing{
		{
			event: notify.EventContactOrganizer,
			n: models.Notification{
				Audience: models.AudienceOrganizers,
				To:       s.cfg.Notify.ContactEmail,
				Subject:  "New Contact Message - " + c.Name,
				Template: "contact-notification",
				Data: map[string]string{
					"contactId":   c.ContactID,
					"name":        c.Name,
					"email":       c.Email,
					"message":     c.Message,
					"submittedAt": c.SubmittedAt,
				},
			},
		},
		{
			event: notify.EventContactAutoReply,
			n: models.Notification{
				Audience: models.AudienceSender,
				To:       c.Email,
				Subject:  "Thank you for contacting Cyber Oasis 1.0",
				Template: "contact-auto-reply",
				Data: map[string]string{
					"name":      c.Name,
					"event":     models.EventName,
					"eventDate": models.EventDate,
					"contactId": c.ContactID,
				},
			},
		},
	}
}

// notifyAll hands every notification to the sink, each under its own
// deadline. Errors are logged only.
func (s *Server) notifyAll(ctx context.Context, out []outgoing) {
	for _, o := range out {
		nctx, cancel := context.WithTimeout(ctx, s.cfg.Notify.Timeout)
		err := s.sink.Notify(nctx, o.event, o.n)
		cancel()
		if err != nil {
			s.log.Warn("notification failed",
				zap.String("sink", s.sink.Name()),
				zap.String("event", o.event),
				zap.Error(err),
			)
		}
	}
}
