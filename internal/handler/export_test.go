package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gramtax/internal/feedback"
)

type fakeExportSource struct {
	entries []feedback.Entry
	err     error
}

func (f *fakeExportSource) All(context.Context) ([]feedback.Entry, error) {
	return f.entries, f.err
}

type fakeExportTarget struct {
	key string
	err error
	got []feedback.Entry
}

func (f *fakeExportTarget) Export(_ context.Context, entries []feedback.Entry) (string, error) {
	f.got = entries
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

func postExport(h *ExportHandler, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(method, "/api/export", nil))
	return w
}

func TestExportHandler_MethodNotAllowed(t *testing.T) {
	h := NewExportHandler(&fakeExportSource{}, &fakeExportTarget{}, log.New(io.Discard, "", 0))
	if w := postExport(h, http.MethodGet); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportHandler_NoTargetConfigured(t *testing.T) {
	h := NewExportHandler(&fakeExportSource{}, nil, log.New(io.Discard, "", 0))
	if w := postExport(h, http.MethodPost); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportHandler_StoreError(t *testing.T) {
	src := &fakeExportSource{err: errors.New("db down")}
	h := NewExportHandler(src, &fakeExportTarget{key: "unused"}, log.New(io.Discard, "", 0))
	w := postExport(h, http.MethodPost)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "db down") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestExportHandler_TargetError(t *testing.T) {
	h := NewExportHandler(&fakeExportSource{}, &fakeExportTarget{err: errors.New("bucket gone")}, log.New(io.Discard, "", 0))
	if w := postExport(h, http.MethodPost); w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportHandler_Success(t *testing.T) {
	src := &fakeExportSource{entries: []feedback.Entry{
		{PairID: 1, EN: "one", Paths: []string{"a > b"}},
		{PairID: 2, EN: "two", Paths: []string{"c > d"}},
	}}
	target := &fakeExportTarget{key: "feedback/20250301T120000Z.jsonl"}
	h := NewExportHandler(src, target, log.New(io.Discard, "", 0))

	w := postExport(h, http.MethodPost)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"ok":true`, `"exported":2`, `"key":"feedback/20250301T120000Z.jsonl"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %s: %s", want, body)
		}
	}
	if len(target.got) != 2 {
		t.Fatalf("target received %d entries", len(target.got))
	}
}
