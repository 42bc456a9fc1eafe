package template

import (
	"strings"

	"github.com/matzehuels/popover/pkg/dom"
)

// HolderScriptType is the script type attribute marking an inert template
// holder, e.g. <script type="text/x-popover-template">.
const HolderScriptType = "text/x-popover-template"

// SourceFrom extracts a template string from a document element.
//
// Holder elements yield their inner markup: <template> contributes its
// children, and a <script> whose type matches HolderScriptType contributes
// its raw text. Any other element contributes its full outer markup,
// including its own tag.
func SourceFrom(el *dom.Element) string {
	if el == nil {
		return ""
	}
	switch {
	case strings.EqualFold(el.Tag, "template"):
		return el.InnerHTML()
	case strings.EqualFold(el.Tag, "script"):
		if typ, _ := el.Attr("type"); strings.EqualFold(typ, HolderScriptType) {
			return el.TextContent()
		}
	}
	return el.OuterHTML()
}
