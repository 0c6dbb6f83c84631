package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - select and apply command")
	fmt.Println("  o  - open another image at runtime")
	fmt.Println("  s  - save current image")
	fmt.Println("  z  - undo")
	fmt.Println("  y  - redo")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// newLogger writes text records to w, at Debug level when debug is set and
// Warn otherwise.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveCommand finds a command by number, exact name or unique prefix.
func resolveCommand(store *StdMetaStore, input string) (string, error) {
	if idx, err := strconv.Atoi(input); err == nil {
		if idx < 1 || idx > len(store.Commands) {
			return "", fmt.Errorf("invalid selection")
		}
		return store.Commands[idx-1].Name, nil
	}
	lower := strings.ToLower(input)
	var matches []string
	for _, c := range store.Commands {
		n := strings.ToLower(c.Name)
		if n == lower {
			return c.Name, nil
		}
		if strings.HasPrefix(n, lower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command: %s", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous selection, candidates: %s", strings.Join(matches, ", "))
	}
}

// chooseCommand asks fzf for a command and falls back to a numbered list.
func chooseCommand(store *StdMetaStore) (string, error) {
	if name, err := SelectCommandWithFzf(store.Commands); err == nil && name != "" {
		return name, nil
	}
	fmt.Println("Command selection (fallback):")
	for i, c := range store.Commands {
		fmt.Printf("  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	sel, _ := PromptLine("Enter number or command name (leave empty to cancel): ")
	if sel == "" {
		return "", nil
	}
	return resolveCommand(store, sel)
}

// promptArgs asks for each argument of c.
func promptArgs(c CommandSpec) []string {
	raw := make([]string, len(c.Args))
	for i, p := range c.Args {
		typeLabel := p.Type
		if p.Type == "enum" {
			typeLabel = fmt.Sprintf("enum(%s)", p.Description)
		}
		prompt := fmt.Sprintf("%s (%s): ", p.Name, typeLabel)
		if p.Default != "" {
			prompt = fmt.Sprintf("%s (%s) [%s]: ", p.Name, typeLabel, p.Default)
		}
		v, err := PromptLine(prompt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		}
		raw[i] = v
	}
	return raw
}

func show(s *Session) {
	if s.Doc == nil {
		return
	}
	// preview is optional
	_ = PreviewImage(s.Frame().NRGBA(), s.Format)
	fmt.Println(s.Info())
}

func RunCLI() {
	cfg, err := LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}
	stdimg.SetLogger(newLogger(os.Stderr, cfg.Debug))
	previewDebug = cfg.PreviewDebug

	session := NewSession(cfg)
	if len(os.Args) >= 2 {
		if err := session.Open(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		show(session)
	}

	fmt.Println("Terminal Paint")
	usage()

	for {
		line, err := PromptLine("> ")
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}
		if line == "" {
			continue
		}

		switch line[0] {
		case '/':
			name, err := chooseCommand(session.store)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if name == "" {
				fmt.Println("selection cancelled")
				continue
			}
			if session.Doc == nil && name != "new" {
				fmt.Println("No image loaded. Press 'o' to open an image, use the 'new' command, or provide an image path as the first argument.")
				continue
			}
			c, _ := session.store.Lookup(name)
			tooltip, _ := session.store.GetTooltip(name)
			fmt.Println("\n" + tooltip + "\n")
			if err := session.Apply(name, promptArgs(c)); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
				continue
			}
			fmt.Printf("Applied %s\n", name)
			show(session)

		case 'o':
			path, err := SelectFileWithFzf(".")
			if err != nil || path == "" {
				path, _ = PromptLineOrFzf("Enter path to image to open (leave empty to cancel): ")
			}
			if path == "" {
				fmt.Println("open cancelled")
				continue
			}
			if err := session.Open(path); err != nil {
				fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", path, err)
				continue
			}
			fmt.Printf("Opened %s\n", path)
			show(session)

		case 's':
			if session.Doc == nil {
				fmt.Println("nothing to save")
				continue
			}
			prompt := "Enter output filename: "
			if session.Path != "" {
				prompt = fmt.Sprintf("Enter output filename [%s]: ", session.Path)
			}
			out, _ := PromptLine(prompt)
			if err := session.Save(out); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", session.Path)

		case 'z':
			if name, ok := session.Undo(); ok {
				fmt.Printf("Undid %s\n", name)
				show(session)
			} else {
				fmt.Println("nothing to undo")
			}

		case 'y':
			if name, ok := session.Redo(); ok {
				fmt.Printf("Redid %s\n", name)
				show(session)
			} else {
				fmt.Println("nothing to redo")
			}

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}

		case 'h':
			usage()

		case 'q':
			if session.Doc != nil && session.Doc.IsModified() {
				ans, _ := PromptLine("The image has unsaved changes. Quit anyway? (y/N): ")
				if a := strings.ToLower(ans); a != "y" && a != "yes" {
					continue
				}
			}
			fmt.Println("Exiting...")
			return
		}
	}
}
