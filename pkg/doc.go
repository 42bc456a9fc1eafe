// Package pkg provides the core libraries of the popover widget engine.
//
// # Overview
//
// Popover binds floating content panels to trigger elements in a document
// tree: click and hover activation, templated or remote content, and
// outside-click dismissal. The pkg directory is organized into three areas:
//
//  1. [dom], [loop] - Substrate (element tree + events, single-goroutine dispatch)
//  2. [popover], [template], [fetch] - Widget engine (state machine, rendering, remote content)
//  3. [cache], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical flow through the engine:
//
//	HTML document
//	         ↓
//	    [dom] package (parse, selectors, event dispatch)
//	         ↓
//	    [popover] package (activation, show/hide state machine)
//	         ↓
//	    [template] / [fetch] packages (panel content)
//	         ↓
//	    rendered tree (panels + opacity styles)
//
// # Quick Start
//
// Activate a popover and drive it with events:
//
//	import (
//	    "github.com/matzehuels/popover/pkg/dom"
//	    "github.com/matzehuels/popover/pkg/popover"
//	)
//
//	doc, _ := dom.ParseString(page)
//	ctrl := popover.NewController(doc)
//	defer ctrl.Close()
//
//	opts := popover.Defaults()
//	opts.Content = map[string]string{"content": "Hello."}
//	p, _ := ctrl.Activate(doc.Root.FindFirst("#more"), &opts)
//
//	ctrl.Dispatch(p.Trigger(), dom.EventClick) // shown
//
// # Main Packages
//
// [dom] - Light element tree with attributes, a small selector language,
// and bubbling event dispatch with StopPropagation.
//
// [loop] - Single-goroutine event loop serializing all widget state:
// Do/Post/NextTick plus cancellable timers.
//
// [popover] - The visibility controller: options resolution (programmatic
// plus declarative data-popover-options), the Hidden/Shown state machine
// with hover debounce and outside-click dismissal, registry-based
// exclusivity, and the string method dispatch surface.
//
// [template] - __name__ placeholder substitution, content classification
// (values, markup, remote URL), template holder extraction, and a
// bluemonday-backed sanitizer for untrusted remote markup.
//
// [fetch] - Remote content retrieval with context-based abort, structured
// error codes, and optional caching.
//
// [cache] - Content cache backends: memory, file, Redis, and null.
//
// [observability] - Widget/fetch/cache hooks for metrics and tracing
// backends, registered at startup.
//
// [errors] - Structured error codes shared across the engine and CLI.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/popover    # Specific package
//	go test -run Example     # Examples only
//
// The Redis cache backend test is gated by REDIS_ADDR.
//
// [dom]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/dom
// [loop]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/loop
// [popover]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/popover
// [template]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/template
// [fetch]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/fetch
// [cache]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/popover/pkg/buildinfo
package pkg
