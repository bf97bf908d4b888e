package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"cyber-oasis/internal/intake"
	"cyber-oasis/internal/util"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Cyber Oasis 1.0 API is running",
		"timestamp": util.FormatISO(s.now()),
	})
}

// peekBody decodes the body when there is one. Diagnostics never fail on a
// bad body; they report what they could read.
func peekBody(w http.ResponseWriter, r *http.Request) (intake.Body, error) {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return intake.Body{Kind: intake.BodyUnknown, Fields: map[string]string{}}, nil
	}
	return intake.Decode(w, r)
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	body, err := peekBody(w, r)
	if err != nil {
		s.log.Debug("test endpoint body", zap.Error(err))
	}
	g := s.cfg.Google
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Test endpoint working",
		"data": map[string]any{
			"timestamp": util.FormatISO(s.now()),
			"method":    r.Method,
			"hasBody":   len(body.Fields) > 0,
			"bodyKeys":  body.Keys(),
			"environment": map[string]any{
				"hasGoogleSheetId":     g.SpreadsheetID != "",
				"hasGoogleProjectId":   g.ProjectID != "",
				"hasGoogleClientEmail": g.ClientEmail != "",
				"hasGooglePrivateKey":  g.PrivateKey != "" || g.ServiceAccountJSON != "",
				"hasAdminToken":        s.cfg.AdminToken != "",
				"appEnv":               s.cfg.Env,
			},
			"headers": map[string]string{
				"userAgent":   r.UserAgent(),
				"contentType": r.Header.Get("Content-Type"),
				"origin":      r.Header.Get("Origin"),
			},
		},
	})
}

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if redactedHeaders[k] {
			headers[strings.ToLower(k)] = "[redacted]"
			continue
		}
		headers[strings.ToLower(k)] = strings.Join(v, ", ")
	}

	body, err := peekBody(w, r)
	data := map[string]any{
		"method":    r.Method,
		"headers":   headers,
		"body":      body.Fields,
		"bodyType":  body.Kind.String(),
		"bodyKeys":  body.Keys(),
		"query":     r.URL.Query(),
		"url":       r.URL.RequestURI(),
		"timestamp": util.FormatISO(s.now()),
	}
	if err != nil {
		data["bodyError"] = err.Error()
	}
	s.log.Debug("debug endpoint received",
		zap.String("method", r.Method),
		zap.Strings("bodyKeys", body.Keys()),
		zap.String("bodyType", body.Kind.String()),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Debug data received",
		"data":    data,
	})
}

func setOrMissing(v string) string {
	if v != "" {
		return "Set"
	}
	return "Missing"
}

func (s *Server) handleEnvCheck(w http.ResponseWriter, r *http.Request) {
	g := s.cfg.Google
	env := s.cfg.Env
	if env == "" {
		env = "Not set"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Environment check completed",
		"data": map[string]any{
			"googleSheetsConfigured":   s.cfg.StoreConfigured(),
			"googleSheetId":            setOrMissing(g.SpreadsheetID),
			"googleSheetName":          g.SheetName,
			"googleServiceAccountJson": setOrMissing(g.ServiceAccountJSON),
			"googleClientEmail":        setOrMissing(g.ClientEmail),
			"googleProjectId":          setOrMissing(g.ProjectID),
			"googlePrivateKey":         setOrMissing(g.PrivateKey),
			"googlePrivateKeyId":       setOrMissing(g.PrivateKeyID),
			"googleClientId":           setOrMissing(g.ClientID),
			"adminToken":               setOrMissing(s.cfg.AdminToken),
			"formResponseMode":         s.cfg.FormResponseMode,
			"notifyProvider":           s.sink.Name(),
			"appEnv":                   env,
			"timestamp":                util.FormatISO(s.now()),
		},
	})
}

// static serves the site from StaticDir. Paths with no matching file get
// index.html so client-side anchors keep working.
func (s *Server) static() http.Handler {
	dir := s.cfg.StaticDir
	if dir == "" {
		return http.NotFoundHandler()
	}
	root := http.Dir(dir)
	files := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, err := root.Open(r.URL.Path); err == nil {
			st, serr := f.Stat()
			_ = f.Close()
			if (serr == nil && !st.IsDir()) || r.URL.Path == "/" {
				files.ServeHTTP(w, r)
				return
			}
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
