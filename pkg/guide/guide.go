// Package guide serves morph's long-form help topics: reducer authoring,
// template testing and configuration. Topics are markdown or text files in
// an fs.FS, by default the set embedded in the binary.
package guide

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var embedded embed.FS

// Topic is one help document
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Guide
type Options struct {
	// Extensions lists the file extensions read as topics; defaults to .md and .txt
	Extensions []string
	// Renderer formats topics; defaults to PlainRenderer
	Renderer Renderer
}

// Guide holds the loaded topics
type Guide struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Default loads the embedded topics
func Default(r Renderer) (*Guide, error) {
	sub, err := fs.Sub(embedded, "topics")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded topics missing")
	}
	return Load(sub, Options{Renderer: r})
}

// Load reads every topic file in fsys
func Load(fsys fs.FS, opts Options) (*Guide, error) {
	g := &Guide{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(g.extensions) == 0 {
		g.extensions = []string{".md", ".txt"}
	}
	if g.renderer == nil {
		g.renderer = &PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !g.supported(path.Ext(p)) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		g.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to scan help topics")
	}
	return g, nil
}

func (g *Guide) supported(ext string) bool {
	for _, e := range g.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Topic looks up a topic by name; a leading "--" is ignored
func (g *Guide) Topic(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	t, ok := g.topics[name]
	return t, ok
}

// Names returns the topic names in sorted order
func (g *Guide) Names() []string {
	names := make([]string, 0, len(g.topics))
	for name := range g.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the formatted content of a topic
func (g *Guide) Render(t *Topic) string {
	return g.renderer.Render(t.Content, path.Ext(t.Path))
}

// WriteList prints the available topics
func (g *Guide) WriteList(w io.Writer, program string) {
	names := g.Names()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "No help topics available.")
		return
	}
	_, _ = fmt.Fprintln(w, "Available help topics:")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s\n", name)
	}
	_, _ = fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Install replaces root's help command with one that also serves topics
func (g *Guide) Install(root *cobra.Command) {
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			return append(completions, g.Names()...), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				originalHelp(root, nil)
				return
			}
			if args[0] == "topics" {
				g.WriteList(cmd.OutOrStdout(), root.Name())
				return
			}
			if t, ok := g.Topic(args[0]); ok {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), g.Render(t))
				return
			}
			// Not a topic: find the command instead
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				originalHelp(root, args)
				return
			}
			originalHelp(target, nil)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
