package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		if seen[c.Name] {
			t.Fatalf("duplicate command %s", c.Name)
		}
		seen[c.Name] = true
		if !strings.HasPrefix(c.Usage, c.Name) {
			t.Fatalf("%s: usage %q does not start with the name", c.Name, c.Usage)
		}
		for _, a := range c.Args {
			if a.Type == "enum" && a.Default != "" && !strings.Contains("|"+a.Description+"|", "|"+a.Default+"|") {
				t.Fatalf("%s.%s: default %q not among %s", c.Name, a.Name, a.Default, a.Description)
			}
		}
	}
}

func TestNormalizeArgs(t *testing.T) {
	store := NewMetaStore(Commands)
	cases := []struct {
		cmd  string
		in   []string
		want []string
	}{
		{"scale", []string{"20", " 10 ", "yes"}, []string{"20", "10", "true", "auto"}},
		{"scale", []string{"20", "10", "", "doc"}, []string{"20", "10", "false", "image"}},
		{"flip", []string{"h"}, []string{"horizontal", "auto"}},
		{"flip", []string{"3", "sel"}, []string{"both", "selection"}},
		{"fill", []string{"1", "2", "RED", "5%"}, []string{"1", "2", "#ff0000", "5"}},
		{"fill", []string{"1", "2"}, []string{"1", "2", "", ""}},
		{"select", []string{"circle", "0", "0", "4", "4"}, []string{"ellipse", "0", "0", "4", "4"}},
		{"transparency", []string{"Opaque"}, []string{"opaque", ""}},
		{"invert", nil, []string{"rgb", "auto"}},
		{"rotate", []string{"90.50"}, []string{"90.5", "auto"}},
	}
	for _, c := range cases {
		got, err := NormalizeArgs(store, c.cmd, c.in)
		if err != nil {
			t.Fatalf("%s %q: %v", c.cmd, c.in, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Fatalf("%s %q (-want +got):\n%s", c.cmd, c.in, diff)
		}
	}
}

func TestNormalizeArgsErrors(t *testing.T) {
	store := NewMetaStore(Commands)
	cases := []struct {
		cmd string
		in  []string
		msg string
	}{
		{"nope", nil, "unknown command"},
		{"scale", []string{"20"}, "missing required parameter: height"},
		{"scale", []string{"x", "1"}, "expected integer"},
		{"scale", []string{"0", "1"}, "< min"},
		{"scale", []string{"1", "1", "maybe"}, "invalid boolean"},
		{"flip", []string{"diagonal"}, "not one of"},
		{"fill", []string{"1", "2", "#12345"}, "hex color length"},
		{"fill", []string{"1", "2", "", "120%"}, "> max"},
		{"balance", []string{"51"}, "> max"},
		{"deselect", []string{"extra"}, "too many arguments"},
	}
	for _, c := range cases {
		_, err := NormalizeArgs(store, c.cmd, c.in)
		if err == nil || !strings.Contains(err.Error(), c.msg) {
			t.Fatalf("%s %q: error %v, want %q", c.cmd, c.in, err, c.msg)
		}
	}
	if _, err := NormalizeArgs(nil, "scale", nil); err == nil {
		t.Fatalf("nil store accepted")
	}
}

func TestCommandHelp(t *testing.T) {
	store := NewMetaStore(Commands)
	tip, rules, err := store.GetCommandHelp("flip")
	if err != nil {
		t.Fatalf("GetCommandHelp: %v", err)
	}
	if !strings.Contains(tip, "- direction (enum, required): horizontal|vertical|both") {
		t.Fatalf("tooltip missing direction:\n%s", tip)
	}
	if diff := cmp.Diff([]string{"auto", "image", "selection"}, rules["target"].EnumOptions); diff != "" {
		t.Fatalf("target options (-want +got):\n%s", diff)
	}
	tip, _ = store.GetTooltip("selectAll")
	if !strings.HasSuffix(tip, "(no parameters)") {
		t.Fatalf("tooltip = %q", tip)
	}
	if _, err := store.GetValidationRules("nope"); err == nil {
		t.Fatalf("unknown command accepted")
	}
	w := rules["target"]
	if w.Min != nil {
		t.Fatalf("enum has a range")
	}
	scale, _ := store.GetValidationRules("scale")
	if scale["width"].Min == nil || *scale["width"].Min != 1 || scale["width"].Unit != "px" {
		t.Fatalf("width rule = %+v", scale["width"])
	}
}

func TestResolveCommand(t *testing.T) {
	store := NewMetaStore(Commands)
	for in, want := range map[string]string{
		"1":        Commands[0].Name,
		"ROTATE":   "rotate",
		"selectA":  "selectAll",
		"reduce":   "reduceColors",
		"deselect": "deselect",
	} {
		got, err := resolveCommand(store, in)
		if err != nil || got != want {
			t.Fatalf("resolveCommand(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := resolveCommand(store, "s"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("prefix s: %v", err)
	}
	if _, err := resolveCommand(store, "999"); err == nil {
		t.Fatalf("out of range index accepted")
	}
}
