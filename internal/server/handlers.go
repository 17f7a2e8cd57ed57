package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/formpage"
	"github.com/goliatone/go-docform/pkg/submission"
)

type errorResponse struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK, formpage.PageOptions{})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	sub := submission.FromValues(r.PostForm)

	result, err := s.compose(r, sub)
	if err != nil {
		if fields := submission.FieldErrors(err); fields != nil {
			s.writePage(w, r, http.StatusUnprocessableEntity, formpage.PageOptions{
				Values:     sub,
				Errors:     fields,
				FormErrors: []string{submission.UserMessage(err)},
			})
			return
		}
		s.logError(r, "compose failed", err)
		http.Error(w, "failed to generate document", http.StatusInternalServerError)
		return
	}
	s.writeDocument(w, r, result)
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Message: "request body too large"})
		return
	}
	sub, err := submission.FromJSON(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	result, err := s.compose(r, sub)
	if err != nil {
		if fields := submission.FieldErrors(err); fields != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Message: submission.UserMessage(err),
				Fields:  fields,
			})
			return
		}
		s.logError(r, "compose failed", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "failed to generate document"})
		return
	}
	s.writeDocument(w, r, result)
}

func (s *Server) handleForm(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.form)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// compose checks sub against the form and renders the document. The form
// check runs first so shape errors are reported together with their labels.
func (s *Server) compose(r *http.Request, sub submission.Submission) (composer.Result, error) {
	if err := s.form.Check(sub); err != nil {
		s.logger.Info("submission rejected",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("reason", err.Error()),
		)
		return composer.Result{}, err
	}
	return s.composer.Compose(r.Context(), sub)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, opts formpage.PageOptions) {
	opts.Variant = s.variantFor(r)
	page, err := s.pages.Render(r.Context(), s.form, opts)
	if err != nil {
		s.logError(r, "render page failed", err)
		http.Error(w, "failed to render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.pages.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(page); err != nil {
		s.logError(r, "write page failed", err)
	}
}

func (s *Server) variantFor(r *http.Request) string {
	if variant := strings.TrimSpace(r.URL.Query().Get("variant")); variant != "" {
		return variant
	}
	return s.variant
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, result composer.Result) {
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", ContentDisposition(result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := result.WriteTo(w); err != nil {
		s.logError(r, "write document failed", err)
		return
	}
	s.logger.Info("document generated",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("filename", result.Filename),
		zap.Int("size", len(result.Data)),
	)
}

func (s *Server) logError(r *http.Request, msg string, err error) {
	s.logger.Error(msg,
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ContentDisposition builds an attachment header carrying an ASCII fallback
// name and the exact UTF-8 name (RFC 6266).
func ContentDisposition(filename string) string {
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, asciiFallback(filename), encodeExtValue(filename))
}

func asciiFallback(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if strings.TrimSuffix(out, ".docx") == "" {
		return "report.docx"
	}
	return out
}

func encodeExtValue(value string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}
