package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/popover"
)

// demoCommand creates the demo command: an interactive terminal walkthrough
// of the widget engine driven entirely through the public controller API.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Interactive terminal demo of the widget engine",
		Long: `Demo runs the widget engine against an in-memory document and draws the
resulting tree in the terminal. Keyboard input is translated into the same
click and hover events a browser host would dispatch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, cleanup := newDemoModel(c)
			defer cleanup()

			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// demoEntry is one trigger on the demo page.
type demoEntry struct {
	label string
	el    *dom.Element
	p     *popover.Popover
}

// demoModel is the bubbletea model. The engine owns all widget state; the
// model only translates key events and redraws the document tree.
type demoModel struct {
	ctrl       *popover.Controller
	doc        *dom.Document
	entries    []demoEntry
	background *dom.Element
	cursor     int
}

// newDemoModel builds the demo document, activates its popovers, and
// returns the model plus a cleanup func closing the controller.
func newDemoModel(c *CLI) (demoModel, func()) {
	doc := dom.NewDocument()
	background := dom.NewElement("main")
	doc.Root.AppendChild(background)

	// The engine logs through the CLI logger; the TUI owns the screen, so
	// keep the engine quiet unless something goes wrong.
	ctrl := popover.NewController(doc,
		popover.WithLogger(newLogger(io.Discard, LogInfo)),
		popover.WithExclusive(),
	)

	m := demoModel{ctrl: ctrl, doc: doc, background: background}

	click := popover.Defaults()
	click.Content = map[string]string{"content": "A click-triggered popover. Press esc to dismiss."}
	click.FadeDuration = 0
	m.addEntry("click me", &click)

	hover := popover.Defaults()
	hover.Click = false
	hover.Hover = true
	hover.HoverDelay = 300 * time.Millisecond
	hover.Content = map[string]string{"content": "Shown after a debounced hover. Leave to hide."}
	hover.FadeDuration = 0
	m.addEntry("hover me", &hover)

	sticky := popover.Defaults()
	sticky.Content = `<p>Sticky: survives hover-leave.</p><button class="popover-hide">close</button>`
	sticky.FadeDuration = 0
	m.addEntry("sticky", &sticky)

	return m, ctrl.Close
}

func (m *demoModel) addEntry(label string, opts *popover.Options) {
	el := dom.NewElement("a")
	el.AppendChild(dom.NewText(label))
	m.background.AppendChild(el)

	p, err := m.ctrl.Activate(el, opts)
	if err != nil {
		return
	}
	m.entries = append(m.entries, demoEntry{label: label, el: el, p: p})
}

// tickMsg drives periodic redraws so debounced hover transitions, which
// fire on the engine loop, become visible without further input.
type tickMsg time.Time

func demoTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m demoModel) Init() tea.Cmd {
	return demoTick()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, demoTick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.dispatch(dom.EventClick)
		case "i":
			m.dispatch(dom.EventMouseEnter)
		case "o":
			m.dispatch(dom.EventMouseLeave)
		case "esc":
			// A click elsewhere on the page.
			m.ctrl.Dispatch(m.background, dom.EventClick)
			m.ctrl.Flush()
		}
	}
	return m, nil
}

func (m demoModel) dispatch(typ string) {
	if len(m.entries) == 0 {
		return
	}
	m.ctrl.Dispatch(m.entries[m.cursor].el, typ)
	m.ctrl.Flush()
}

func (m demoModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("popover demo"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ select  ⏎ click  i/o hover in/out  esc outside click  q quit"))
	b.WriteString("\n\n")

	var buttons []string
	for i, e := range m.entries {
		style := styleTrigger
		if i == m.cursor {
			style = styleTriggerActive
		}
		label := e.label
		if e.p.State() == popover.Shown {
			label = iconSuccess + " " + label
		}
		buttons = append(buttons, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	b.WriteString("\n\n")

	for _, panel := range m.doc.Root.Find("[" + popover.AttrPanelFor + "]") {
		b.WriteString(stylePanel.Render(strings.TrimSpace(panel.TextContent())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var states []string
	for _, e := range m.entries {
		states = append(states, fmt.Sprintf("%s: %s", e.label, e.p.State()))
	}
	b.WriteString(styleStatus.Render(strings.Join(states, "   ")))
	b.WriteString("\n")

	return b.String()
}
