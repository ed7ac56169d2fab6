package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	mdrich "github.com/alnah/go-mdrich"
	"github.com/alnah/go-mdrich/internal/yamlutil"
)

// runType replays text one keystroke at a time through an editor with
// markdown shortcuts installed, then prints the resulting document.
func runType(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTypeFlags(args, env.Stderr)
	if err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}

	s, err := newSession(flags.common, env)
	if err != nil {
		return err
	}

	text, err := typedText(positional, env.Stdin)
	if err != nil {
		return err
	}

	ed := mdrich.NewEditor(mdrich.WithEditorLogger(s.logger))
	if _, err := mdrich.RegisterShortcuts(ed, s.reg); err != nil {
		return err
	}

	keystrokes := replay(ed, text)
	s.logger.Debug("replayed keystrokes", slog.Int("count", keystrokes))

	if flags.tree {
		doc := ed.Document()
		out, err := yamlutil.Marshal(doc.Snapshot(doc.Root()))
		if err != nil {
			return fmt.Errorf("encoding tree: %w", err)
		}
		return writeOutput("", string(out), env)
	}
	return writeOutput("", ed.Markdown(s.reg)+"\n", env)
}

// typedText joins the arguments with spaces, or reads stdin for a lone "-".
// The two characters `\n` stand for Enter.
func typedText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	return strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n"), nil
}

// replay types text into ed one rune per update; a newline starts a new
// paragraph. It returns the number of keystrokes.
func replay(ed *mdrich.Editor, text string) int {
	n := 0
	for _, r := range text {
		if r == '\n' {
			ed.InsertParagraph()
		} else {
			ed.InsertText(string(r))
		}
		n++
	}
	return n
}
