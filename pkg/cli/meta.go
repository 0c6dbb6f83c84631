package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/tpaint/pkg/command"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt     ParamType = "int"
	ParamTypeFloat   ParamType = "float"
	ParamTypeBool    ParamType = "bool"
	ParamTypeString  ParamType = "string"
	ParamTypeEnum    ParamType = "enum"
	ParamTypePercent ParamType = "percent"
	ParamTypeColor   ParamType = "color"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI or client can use to validate input before invoking a command.
type ValidationRule struct {
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	EnumOptions []string  `json:"enumOptions,omitempty"` // valid when Type == ParamTypeEnum
	Example     string    `json:"example,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

func ptr(f float64) *float64 { return &f }

// parseBoolLikeToString accepts common truthy/falsy forms and returns "true"/"false" string.
func parseBoolLikeToString(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// parsePercentValue parses a percent string like "3%" or a bare number and returns numeric string.
func parsePercentValue(s string) (string, error) {
	s = strings.TrimSpace(s)
	raw := strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("invalid percent value: %q", s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// GenerateTooltip produces a tooltip string from a CommandSpec.
func GenerateTooltip(c CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(c.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString(" Parameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates ValidationRule entries from a CommandSpec.
func GenerateValidationRules(c CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		at := strings.ToLower(a.Type)
		var t ParamType
		switch {
		case at == "int":
			t = ParamTypeInt
		case at == "float":
			t = ParamTypeFloat
		case at == "bool":
			t = ParamTypeBool
		case strings.Contains(at, "percent"):
			t = ParamTypePercent
		case at == "enum":
			t = ParamTypeEnum
		case at == "color":
			t = ParamTypeColor
		default:
			t = ParamTypeString
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		switch {
		case t == ParamTypeEnum:
			r.EnumOptions = strings.Split(a.Description, "|")
		case t == ParamTypePercent:
			r.Min, r.Max, r.Unit = ptr(0), ptr(100), "%"
		case a.Name == "width" || a.Name == "height":
			r.Min, r.Max, r.Unit = ptr(1), ptr(command.MaxDimension), "px"
		case a.Name == "levels":
			r.Min, r.Max = ptr(2), ptr(256)
		case c.Name == "balance":
			r.Min, r.Max = ptr(-50), ptr(50)
		}
		rules[a.Name] = r
	}
	return rules
}

// StdMetaStore indexes a command list by name.
type StdMetaStore struct {
	Commands []CommandSpec
	byName   map[string]CommandSpec
}

func NewMetaStore(cmds []CommandSpec) *StdMetaStore {
	m := &StdMetaStore{Commands: cmds, byName: make(map[string]CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup returns the spec for name.
func (m *StdMetaStore) Lookup(name string) (CommandSpec, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// GetTooltip returns tooltip string for a command.
func (m *StdMetaStore) GetTooltip(name string) (string, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), nil
}

// GetValidationRules returns validation rules for a command.
func (m *StdMetaStore) GetValidationRules(name string) (map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateValidationRules(c), nil
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *StdMetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), GenerateValidationRules(c), nil
}

func checkRange(name string, f float64, vr ValidationRule) error {
	if vr.Min != nil && f < *vr.Min {
		return fmt.Errorf("parameter %s: %v < min %v", name, f, *vr.Min)
	}
	if vr.Max != nil && f > *vr.Max {
		return fmt.Errorf("parameter %s: %v > max %v", name, f, *vr.Max)
	}
	return nil
}

// NormalizeArgs validates raw user input against the command metadata and
// returns one canonical string per declared argument. Empty optional
// arguments take the declared default, which may itself be empty.
func NormalizeArgs(store *StdMetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(args) > len(c.Args) {
		return nil, fmt.Errorf("%s: too many arguments (%d > %d)", cmdName, len(args), len(c.Args))
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			out[i] = a.Default
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			if err := checkRange(a.Name, float64(v), vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			if err := checkRange(a.Name, f, vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypePercent:
			n, err := parsePercentValue(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			f, _ := strconv.ParseFloat(n, 64)
			if err := checkRange(a.Name, f, vr); err != nil {
				return nil, err
			}
			out[i] = n
		case ParamTypeBool:
			bs, err := parseBoolLikeToString(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			out[i] = bs
		case ParamTypeEnum:
			v, ok := mapEnumValue(a.Name, raw, vr.EnumOptions)
			if !ok {
				return nil, fmt.Errorf("parameter %s: %q is not one of %s", a.Name, raw, a.Description)
			}
			out[i] = v
		case ParamTypeColor:
			if strings.EqualFold(raw, "opaque") && cmdName == "transparency" {
				out[i] = "opaque"
				break
			}
			col, err := stdimg.ParseColor(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			out[i] = col.String()
		case ParamTypeString:
			out[i] = raw
		default:
			return nil, fmt.Errorf("parameter %s: unsupported param type %q", a.Name, vr.Type)
		}
	}
	return out, nil
}

var (
	// Aliases accepted for enum arguments, keyed by argument name. Values are
	// the canonical option strings of the command metadata.
	targetAliases = map[string]string{
		"doc":      "image",
		"document": "image",
		"canvas":   "image",
		"sel":      "selection",
	}

	directionAliases = map[string]string{
		"h":          "horizontal",
		"horiz":      "horizontal",
		"v":          "vertical",
		"vert":       "vertical",
		"hv":         "both",
		"rotate180":  "both",
		"180":        "both",
		"horizontal": "horizontal",
	}

	shapeAliases = map[string]string{
		"rect":    "rectangle",
		"box":     "rectangle",
		"oval":    "ellipse",
		"circle":  "ellipse",
		"ellipse": "ellipse",
	}

	channelAliases = map[string]string{
		"all": "rgb",
		"gr":  "rg",
		"br":  "rb",
		"bg":  "gb",
	}
)

// mapEnumValue resolves val, or one of its aliases, to a canonical option.
func mapEnumValue(paramName, val string, options []string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(val))
	var aliases map[string]string
	switch paramName {
	case "target":
		aliases = targetAliases
	case "direction":
		aliases = directionAliases
	case "shape":
		aliases = shapeAliases
	case "channels":
		aliases = channelAliases
	}
	if a, ok := aliases[v]; ok {
		v = a
	}
	// a 1-based index into the options is accepted too
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, o := range options {
		if v == o {
			return o, true
		}
	}
	return "", false
}
