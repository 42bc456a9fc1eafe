// Package dom provides the light element tree the widget engine operates on.
//
// The tree models the small slice of document behavior popovers need:
// elements with attributes, parent/child structure, event listeners with
// bubbling dispatch and StopPropagation, and a minimal selector language.
// Markup crosses the boundary as strings; parsing and serialization are
// delegated to golang.org/x/net/html.
//
// # Elements and documents
//
// A Document owns a single Root element that plays the role of the body:
// popover panels are attached to it, and document-level listeners (such as
// the outside-click listener) are registered on it. Events dispatched at a
// target element bubble up through its ancestors to the root unless a
// handler stops propagation.
//
// # Selectors
//
// Matches, Find and Closest understand compound simple selectors: a tag
// name, #id, .class and [attr] / [attr=value] parts, plus comma-separated
// alternatives. Descendant combinators are not supported; the engine only
// ever matches against an element and its ancestor chain.
//
// # Concurrency
//
// The tree is not safe for concurrent use. The widget engine confines all
// access to its event loop goroutine (see package loop).
package dom
