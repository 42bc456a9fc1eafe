package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

// serveCommand creates the serve command: a small HTTP server with a demo
// page full of declarative popover triggers and the remote content
// fragments they reference.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page and remote content fragments",
		Long: `Serve starts an HTTP server with two things: a demo page whose markup
uses data-popover attributes, and the /fragments/ endpoints that the
remote-content popovers on that page fetch their bodies from.

Point "popover render --show all" at the saved page, or fetch fragments
directly, to exercise the remote content path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			srv := &http.Server{
				Addr:              addr,
				Handler:           newServeMux(),
				ReadHeaderTimeout: 5 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			printInfo("Serving demo on http://localhost%s", addr)
			printDetail("Fragments under /fragments/{name}")

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")

	return cmd
}

// fragments is the remote content served under /fragments/{name}.
var fragments = map[string]string{
	"welcome.html": `<h3>Welcome</h3><p>This fragment was fetched over HTTP.</p>`,
	"tip.html":     `<p>Popovers with URL content resolve their body remotely.</p>`,
	"slow.html":    `<p>This fragment is served with a delay.</p>`,
}

// requestLog logs each request through the logger carried by the request
// context (attached via the server's BaseContext).
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		loggerFromContext(req.Context()).Debug("request", "method", req.Method, "path", req.URL.Path)
		next.ServeHTTP(w, req)
	})
}

// newServeMux builds the demo router.
func newServeMux() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(requestLog)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, demoPage)
	})

	r.Get("/fragments/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		body, ok := fragments[name]
		if !ok {
			http.NotFound(w, req)
			return
		}
		if name == "slow.html" {
			time.Sleep(500 * time.Millisecond)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	})

	return r
}

// demoPage is the served demo document. Every trigger uses declarative
// activation so "popover render" can pick them up unchanged.
const demoPage = `<!DOCTYPE html>
<html>
<head><title>popover demo</title></head>
<body>
  <h1>popover demo</h1>

  <a data-popover
     data-popover-options='{"content":"An inline popover body."}'>inline</a>

  <a data-popover
     data-popover-options='{"hover":true,"click":false,"content":"Shown on hover, debounced."}'>hover</a>

  <a data-popover
     data-popover-options='{"content":"/fragments/welcome.html"}'>remote</a>

  <a data-popover
     data-popover-options='{"content":"/fragments/slow.html"}'>slow remote</a>

  <template id="fancy"><div class="popover fancy">__content__<button class="popover-hide">close</button></div></template>
  <a data-popover
     data-popover-options='{"templateFrom":"#fancy","content":"Templated from a holder element."}'>templated</a>
</body>
</html>
`
