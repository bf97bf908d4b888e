package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
)

// MaxBodyBytes caps submission bodies.
const MaxBodyBytes = 1 << 20

type BodyKind int

const (
	BodyUnknown BodyKind = iota
	BodyJSON
	BodyForm
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	default:
		return "unknown"
	}
}

// Body is a decoded submission: flat string fields plus the wire format
// they arrived in.
type Body struct {
	Kind   BodyKind
	Fields map[string]string
}

func (b Body) Keys() []string {
	keys := make([]string, 0, len(b.Fields))
	for k := range b.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrMalformedBody          = errors.New("malformed request body")
)

// KindOf classifies a Content-Type header value.
func KindOf(contentType string) BodyKind {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return BodyUnknown
	}
	switch mt {
	case "application/json":
		return BodyJSON
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return BodyForm
	default:
		return BodyUnknown
	}
}

// Decode reads the request body according to its Content-Type. The returned
// Body carries the detected kind even when decoding fails, so callers can
// pick the matching response format.
func Decode(w http.ResponseWriter, r *http.Request) (Body, error) {
	body := Body{Kind: KindOf(r.Header.Get("Content-Type")), Fields: map[string]string{}}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	switch body.Kind {
	case BodyJSON:
		fields, err := decodeJSON(r.Body)
		if err != nil {
			return body, err
		}
		body.Fields = fields
	case BodyForm:
		if err := parseForm(r); err != nil {
			return body, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				body.Fields[k] = v[0]
			}
		}
	default:
		return body, fmt.Errorf("%w: %q", ErrUnsupportedContentType, r.Header.Get("Content-Type"))
	}
	return body, nil
}

func parseForm(r *http.Request) error {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		return r.ParseMultipartForm(MaxBodyBytes)
	}
	return r.ParseForm()
}

func decodeJSON(rd io.Reader) (map[string]string, error) {
	raw := map[string]any{}
	if err := json.NewDecoder(rd).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: request body is empty", ErrMalformedBody)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = stringify(v)
	}
	return out, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
