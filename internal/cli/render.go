package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/popover"
	"github.com/matzehuels/popover/pkg/template"
)

// renderCommand creates the render command: activate popovers in a
// document, optionally show some of them, and print the resulting tree.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		showSel    string
		output     string
		configFile string
		noCache    bool
		sanitize   bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Activate popovers in an HTML document and print the result",
		Long: `Render reads an HTML document (from a file or stdin), activates every
element carrying the data-popover attribute, optionally shows a subset of
the popovers, and writes the resulting document to stdout.

Remote content referenced by popover options is fetched through the
content cache; --show waits for those fetches up to --timeout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return err
			}

			doc, err := readDocument(args)
			if err != nil {
				return err
			}

			opts := cfg.WidgetOptions()
			if sanitize {
				opts.Process = template.Sanitize
			}

			ctrlOpts := []popover.ControllerOption{
				popover.WithLogger(c.Logger),
				popover.WithFetcher(c.newFetcher(noCache)),
				popover.WithDefaults(opts),
			}
			if cfg.Exclusive {
				ctrlOpts = append(ctrlOpts, popover.WithExclusive())
			}
			ctrl := popover.NewController(doc, ctrlOpts...)
			defer ctrl.Close()

			prog := newProgress(c.Logger)
			instances, err := ctrl.ActivateAll(nil)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Activated %d popovers", len(instances)))

			if showSel != "" {
				if err := showMatching(ctrl, instances, showSel, timeout); err != nil {
					return err
				}
			}
			ctrl.Flush()

			return writeDocument(doc, output)
		},
	}

	cmd.Flags().StringVarP(&showSel, "show", "s", "", `show popovers whose trigger matches a selector ("all" for every one)`)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file instead of stdout")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default ~/.config/popover/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the remote content cache")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize fetched remote content before rendering")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "how long to wait for remote content")

	return cmd
}

// readDocument parses the input document from the file argument or stdin.
func readDocument(args []string) (*dom.Document, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// showMatching shows every instance whose trigger matches sel ("all"
// matches every instance) and waits for them to reach the shown state.
// Instances that do not settle within the timeout (a failed remote fetch
// stays hidden) are reported but not fatal.
func showMatching(ctrl *popover.Controller, instances []*popover.Popover, sel string, timeout time.Duration) error {
	if sel != "all" {
		if err := dom.ParseSelector(sel); err != nil {
			return fmt.Errorf("--show selector: %w", err)
		}
	}

	var shown []*popover.Popover
	for _, p := range instances {
		if sel == "all" || p.Trigger().Matches(sel) {
			p.Show()
			shown = append(shown, p)
		}
	}

	deadline := time.Now().Add(timeout)
	for _, p := range shown {
		for p.State() != popover.Shown {
			if time.Now().After(deadline) {
				printWarning("popover on %s did not show (content unavailable?)", describeTrigger(p))
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
	return nil
}

func describeTrigger(p *popover.Popover) string {
	t := p.Trigger()
	if id := t.ID(); id != "" {
		return t.Tag + "#" + id
	}
	return t.Tag
}

// writeDocument serializes the document to the output file or stdout.
func writeDocument(doc *dom.Document, output string) error {
	markup := doc.Root.OuterHTML()
	if output == "" {
		fmt.Println(markup)
		return nil
	}
	if err := os.WriteFile(output, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	printSuccess("Wrote %s", output)
	return nil
}
