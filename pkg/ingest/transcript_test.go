package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscriptSourceExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("welcome back everyone, today we cover storage engines"))
	}))
	defer srv.Close()

	src := &TranscriptSource{URL: srv.URL + "/transcript.txt", Client: srv.Client()}
	doc, err := src.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if doc.RawText == "" {
		t.Error("empty transcript text")
	}
}

func TestTranscriptSourceDefaultID(t *testing.T) {
	src := &TranscriptSource{}
	if src.ID() != "Video_Transcript" {
		t.Errorf("ID() = %q, want Video_Transcript", src.ID())
	}

	named := &TranscriptSource{Name: "talk.txt"}
	if named.ID() != "talk.txt" {
		t.Errorf("ID() = %q, want talk.txt", named.ID())
	}
}
