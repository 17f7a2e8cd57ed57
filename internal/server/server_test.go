package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-docform"
	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/formpage"
)

const wantFilename = "20230001ZhangSan岗前综合技能培训报告书.docx"

func newTestServer(t *testing.T, options ...Option) *Server {
	t.Helper()

	form, err := docform.DefaultForm(context.Background())
	require.NoError(t, err)
	pages, err := formpage.New()
	require.NoError(t, err)

	srv, err := New(form, composer.New(composer.WithRequired(form.Required...)), pages, options...)
	require.NoError(t, err)
	return srv
}

func validValues() url.Values {
	return url.Values{
		"name":         {"Zhang San"},
		"student_id":   {"20230001"},
		"college":      {"X"},
		"class":        {"Y"},
		"teacher":      {"Z"},
		"project_name": {"Demo"},
	}
}

func postForm(t *testing.T, srv *Server, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersForm(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	body := rec.Body.String()
	for _, name := range []string{"name", "student_id", "start_date", "training_form"} {
		assert.Contains(t, body, `name="`+name+`"`)
	}
	assert.Contains(t, body, `action="/generate"`)
}

func TestGenerateReturnsAttachment(t *testing.T) {
	srv := newTestServer(t)

	rec := postForm(t, srv, validValues())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, docx.ContentType, rec.Header().Get("Content-Type"))
	disposition := rec.Header().Get("Content-Disposition")
	assert.Equal(t, ContentDisposition(wantFilename), disposition)
	assert.Contains(t, disposition, `filename="20230001ZhangSan.docx"`)
	assert.Contains(t, disposition, "filename*=UTF-8''"+url.PathEscape(wantFilename))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestGenerateMissingFieldsRerendersForm(t *testing.T) {
	srv := newTestServer(t)

	values := url.Values{"name": {"Zhang San"}}
	rec := postForm(t, srv, values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "请填写以下必填项")
	assert.Contains(t, body, "学号为必填项")
	assert.Contains(t, body, `value="Zhang San"`)
}

func TestGenerateInvalidDateRerendersForm(t *testing.T) {
	srv := newTestServer(t)

	values := validValues()
	values.Set("start_date", "2024/03/01")
	rec := postForm(t, srv, values)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "日期格式应为 YYYY-MM-DD")
}

func TestDocumentsAPI(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]string{}
	for key := range validValues() {
		payload[key] = validValues().Get(key)
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, docx.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, ContentDisposition(wantFilename), rec.Header().Get("Content-Disposition"))
}

func TestDocumentsAPIRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(`{"name":"Zhang San"}`))
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Message, "请填写以下必填项："))
	assert.Equal(t, []string{"学号为必填项"}, resp.Fields["student_id"])
	assert.NotContains(t, resp.Fields, "name")
}

func TestDocumentsAPIRejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	for _, payload := range []string{`{"name":`, `{"name":{"first":"Zhang"}}`} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(payload)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
	}
}

func TestFormJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/form", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var form formdef.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	assert.Equal(t, formdef.DefaultOperationID, form.OperationID)
	assert.Len(t, form.Fields, 12)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestIDIsReusedWhenWellFormed(t *testing.T) {
	srv := newTestServer(t)
	const id = "2f1d7e52-3c8b-4b7e-9d0a-5a1f6c2e9b10"

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-an-id")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-an-id", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv := newTestServer(t, WithLogger(zap.New(core)))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "/healthz", fields["path"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), fields["request_id"])
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, WithShutdownGrace(time.Second))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	form, err := docform.DefaultForm(context.Background())
	require.NoError(t, err)
	pages, err := formpage.New()
	require.NoError(t, err)

	_, err = New(form, nil, pages)
	assert.Error(t, err)
	_, err = New(form, composer.New(), nil)
	assert.Error(t, err)
	_, err = New(formdef.Form{}, composer.New(), pages)
	assert.Error(t, err)
}

func TestContentDisposition(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.docx", `attachment; filename="report.docx"; filename*=UTF-8''report.docx`},
		{"报告书.docx", `attachment; filename="report.docx"; filename*=UTF-8''%E6%8A%A5%E5%91%8A%E4%B9%A6.docx`},
		{`a"b c.docx`, `attachment; filename="ab c.docx"; filename*=UTF-8''a%22b%20c.docx`},
		{"20230001张三.docx", `attachment; filename="20230001.docx"; filename*=UTF-8''20230001%E5%BC%A0%E4%B8%89.docx`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ContentDisposition(tc.in), tc.in)
	}
}
