// Package popover implements the popover widget engine: a visibility
// controller that binds floating content panels to trigger elements in a
// document tree.
//
// # Model
//
// A Controller owns one dom.Document and an event loop that serializes all
// widget state. Triggers are activated programmatically (Activate) or
// declaratively through the data-popover attribute (ActivateAll), with
// per-element option patches in data-popover-options JSON.
//
// Each instance is a small state machine between Hidden and Shown:
//
//   - A click on the trigger shows the popover explicitly; explicit shows
//     survive hover-leave and close only on an outside click, a
//     hide-selector click, Hide, or an exclusivity sweep.
//   - Hover shows and hides are debounced by HoverDelay, so a pointer
//     passing over a trigger does not flash panels.
//   - The outside-click listener is armed one loop turn after the show, so
//     the click that opened the popover cannot immediately close it.
//   - Clicks inside the panel are contained unless they land on an element
//     matching HideSelector.
//
// # Content
//
// The panel is built once, from a template (inline or from a holder element
// in the document) and a content value: placeholder data rendered with
// __name__ substitution, a markup fragment, or a URL fetched through
// pkg/fetch. A remote show stays pending until the fetch delivers; a newer
// fetch cancels the one it supersedes, and a failed fetch leaves the
// popover hidden.
//
// # Rendering
//
// The engine is headless. It expresses visibility as an opacity/transition
// style attribute on the panel and attaches panels to the document root;
// hosts (a TUI, an HTML renderer, tests) read the tree and draw it.
package popover
