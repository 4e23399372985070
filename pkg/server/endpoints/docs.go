package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/modelgate/modelgate/pkg/server"
)

//go:embed docs/usage.md
var usageMarkdown []byte

var (
	docsOnce sync.Once
	docsHTML []byte
)

// RegisterDocsEndpoints registers the rendered usage documentation
// (no auth required).
func RegisterDocsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/docs", handleDocs()).Methods("GET")
}

func handleDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docsOnce.Do(func() {
			var buf bytes.Buffer
			if err := goldmark.Convert(usageMarkdown, &buf); err != nil {
				docsHTML = []byte("<p>documentation unavailable</p>")
				return
			}
			docsHTML = buf.Bytes()
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(docsHTML)
	}
}
