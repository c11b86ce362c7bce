package tui

import (
	"github.com/gerunddev/scribe/internal/document"
	"github.com/gerunddev/scribe/internal/format"
)

// Mode tabs
var modeKeys = map[string]document.Mode{
	"f1": document.Visual,
	"f2": document.MarkdownSplit,
	"f3": document.RawSource,
}

// Formatting shortcuts, visual mode only
var formatKeys = map[string]format.Command{
	"alt+b": format.Bold,
	"alt+i": format.Italic,
	"alt+u": format.Underline,
	"alt+s": format.StrikeThrough,
	"alt+1": format.Heading1,
	"alt+2": format.Heading2,
	"alt+3": format.Heading3,
	"alt+q": format.Blockquote,
	"alt+p": format.Paragraph,
	"alt+l": format.UnorderedList,
	"alt+o": format.OrderedList,
	"alt+x": format.RemoveFormat,
	"alt+[": format.JustifyLeft,
	"alt+=": format.JustifyCenter,
	"alt+]": format.JustifyRight,
}

const (
	keyQuit       = "ctrl+c"
	keyLanguage   = "ctrl+l"
	keySave       = "ctrl+s"
	keyExport     = "ctrl+e"
	keyImport     = "ctrl+o"
	keyClear      = "ctrl+k"
	keyLink       = "alt+k"
	keyPaste      = "alt+v"
	keyScratchpad = "alt+n"
	keyCancel     = "esc"
	keyConfirm    = "enter"
)

const helpText = "f1 visual • f2 markdown • f3 raw • ctrl+l language • ctrl+s save • ctrl+e export • ctrl+o import • ctrl+k clear • ctrl+c quit"

const formatHelpText = "alt+ b/i/u/s inline • 1/2/3 heading • q quote • p paragraph • l/o list • [ = ] align • k link • x clear format • v paste plain • n scratchpad"
