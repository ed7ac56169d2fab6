// Package mdrich converts between Markdown and a rich-text document tree,
// and rewrites Markdown syntax into formatting while the user types.
//
// # Quick Start
//
// Import, edit and export with the default rules:
//
//	reg := mdrich.DefaultRegistry()
//	doc := reg.ImportString("# Title\n\n**bold** and *italic*")
//	fmt.Println(reg.ExportString(doc))
//
// Export is a normal form: importing its output again yields the same tree.
//
// # Rules
//
// A Registry is built from an ordered list of rules:
//
//   - ElementTransformer: a line prefix becomes a block (heading, quote,
//     code block, list)
//   - TextFormatTransformer: a symmetric delimiter sets format flags
//     (**bold**, _italic_, `code`)
//   - TextMatchTransformer: a self-contained pattern becomes inline nodes
//     ([text](url))
//
// Order matters: code goes first so nothing inside a code span is
// transformed, and longer tags go before their prefixes.
//
//	reg, err := mdrich.NewRegistry(
//	    append([]mdrich.Transformer{mdrich.CheckList}, mdrich.DefaultTransformers()...),
//	    mdrich.WithCapabilities(mdrich.Capabilities{Lookbehind: true}),
//	)
//
// # Live Shortcuts
//
// An Editor commits updates and notifies listeners. RegisterShortcuts
// installs a listener that inspects the caret after each keystroke:
//
//	ed := mdrich.NewEditor()
//	unregister, err := mdrich.RegisterShortcuts(ed, reg)
//	if err != nil {
//	    log.Fatal(err) // a rule needs a node kind the editor lacks
//	}
//	defer unregister()
//
//	for _, r := range "# Hello **world**" {
//	    ed.InsertText(string(r))
//	}
//
// Undo and redo updates, and updates made while an input method is composing,
// are left alone.
//
// # Offsets
//
// Text offsets are byte offsets into UTF-8 text. Checks on the character
// before or after a position decode a whole rune.
package mdrich
