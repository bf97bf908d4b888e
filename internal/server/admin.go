package server

import (
	"context"
	"crypto/hmac"
	"encoding/csv"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cyber-oasis/internal/models"
	"cyber-oasis/internal/util"
)

// authorized checks the bearer token in constant time. The token must match
// byte for byte; only the scheme name is case-insensitive (RFC 6750). An
// unset token never authorizes anything.
func (s *Server) authorized(r *http.Request) bool {
	want := s.cfg.AdminToken
	if want == "" {
		return false
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return hmac.Equal([]byte(token), []byte(want))
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
}

// records zips the header row with every data row. Missing trailing cells
// read as "" and rows with no content at all are dropped.
func records(rows [][]string) []map[string]string {
	out := []map[string]string{}
	if len(rows) == 0 {
		return out
	}
	header := rows[0]
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (s *Server) readTables(ctx context.Context) (regs, contacts [][]string, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regs, err = s.store.ReadAll(ctx, models.TableRegistrations)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = s.store.ReadAll(ctx, models.TableContacts)
		return err
	})
	err = g.Wait()
	return regs, contacts, err
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		unauthorized(w)
		return
	}
	fail := models.ErrorResponse{Error: "Internal server error", Message: "Failed to fetch submissions"}
	if s.store == nil {
		s.log.Error("admin read: spreadsheet not configured")
		writeJSON(w, http.StatusInternalServerError, fail)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.StoreTimeout)
	defer cancel()
	regRows, contactRows, err := s.readTables(ctx)
	if err != nil {
		s.log.Error("admin read", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail)
		return
	}

	regs := records(regRows)
	contacts := records(contactRows)
	writeJSON(w, http.StatusOK, models.AdminResponse{
		Success: true,
		Data: models.AdminData{
			Registrations: models.TableSnapshot{Count: len(regs), Submissions: regs},
			Contacts:      models.TableSnapshot{Count: len(contacts), Submissions: contacts},
			Summary: models.AdminSummary{
				TotalRegistrations: len(regs),
				TotalContacts:      len(contacts),
				LastUpdated:        util.FormatISO(s.now()),
			},
		},
	})
}

// handleExportCSV streams one table as CSV, header row first.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		unauthorized(w)
		return
	}
	kind := models.TableKind(r.URL.Query().Get("table"))
	if kind == "" {
		kind = models.TableRegistrations
	}
	if kind != models.TableRegistrations && kind != models.TableContacts {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: "table must be registrations or contacts",
		})
		return
	}
	fail := models.ErrorResponse{Error: "Internal server error", Message: "Failed to export submissions"}
	if s.store == nil {
		writeJSON(w, http.StatusInternalServerError, fail)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.StoreTimeout)
	defer cancel()
	rows, err := s.store.ReadAll(ctx, kind)
	if err != nil {
		s.log.Error("export csv", zap.String("table", string(kind)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, fail)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)

	cw := csv.NewWriter(w)
	var width int
	for i, row := range rows {
		if i == 0 {
			width = len(row)
		} else if blankRow(row) {
			continue
		}
		out := make([]string, width)
		copy(out, row)
		if err := cw.Write(out); err != nil {
			s.log.Warn("export csv write", zap.Error(err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.log.Warn("export csv flush", zap.Error(err))
	}
}
