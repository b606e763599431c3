package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docsight/models"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Compaction Strategies</title></head>
<body>
<nav><a href="/">Home</a><a href="/about">About</a></nav>
<article>
<h1>Compaction Strategies</h1>
<p>Log structured storage engines rewrite data in the background to keep
read amplification bounded. This article walks through the common
strategies and their trade offs in some depth.</p>
<p>Leveled compaction keeps each level an order of magnitude larger than
the one above it, which keeps space amplification low at the cost of more
write amplification during steady state ingestion.</p>
</article>
<footer>Copyright</footer>
</body>
</html>`

func TestArticleSourceExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	src := &ArticleSource{URL: srv.URL + "/post", Client: srv.Client()}
	doc, err := src.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if doc.Source != models.SourceArticle {
		t.Errorf("Source = %s, want article", doc.Source)
	}
	if !strings.Contains(doc.RawText, "Leveled compaction") {
		t.Errorf("body text missing from extraction:\n%s", doc.RawText)
	}
	if strings.Contains(doc.RawText, "Copyright") {
		t.Errorf("boilerplate leaked into extraction:\n%s", doc.RawText)
	}
}

func TestArticleSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := &ArticleSource{URL: srv.URL + "/missing", Client: srv.Client()}
	if _, err := src.Extract(context.Background()); err == nil {
		t.Fatal("Extract() = nil error for 404 response")
	}
}
