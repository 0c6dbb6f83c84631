package cli

// ArgSpec describes a single argument for a command. Fields are textual and
// drive prompting, help text and NormalizeArgs.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "color", "percent", "enum"
	Required    bool
	Default     string // used when the argument is left empty
	Description string // for enums, the options separated by "|"
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

var targetArg = ArgSpec{"target", "enum", false, "auto", "auto|image|selection"}

// Commands is the list of operations Session.Apply understands.
var Commands = []CommandSpec{
	{
		Name:        "new",
		Args:        []ArgSpec{{"width", "int", true, "", "image width"}, {"height", "int", true, "", "image height"}, {"background", "color", false, "", "fill color (default: configured background)"}},
		Usage:       "new <width> <height> [background]",
		Description: "Start a new blank image.",
	},
	{
		Name:        "resize",
		Args:        []ArgSpec{{"width", "int", true, "", "new width"}, {"height", "int", true, "", "new height"}},
		Usage:       "resize <width> <height>",
		Description: "Crop or extend the canvas, or resize the text box of a text selection.",
	},
	{
		Name:        "scale",
		Args:        []ArgSpec{{"width", "int", true, "", "new width"}, {"height", "int", true, "", "new height"}, {"smooth", "bool", false, "false", "smooth resampling"}, targetArg},
		Usage:       "scale <width> <height> [smooth] [target]",
		Description: "Scale the image or the selection. Integer upscales are lossless.",
	},
	{
		Name:        "skew",
		Args:        []ArgSpec{{"horizontal", "float", true, "", "degrees, -90..90"}, {"vertical", "float", false, "0", "degrees, -90..90"}, targetArg},
		Usage:       "skew <horizontal> [vertical] [target]",
		Description: "Shear the image or the selection.",
	},
	{
		Name:        "rotate",
		Args:        []ArgSpec{{"degrees", "float", true, "", "clockwise degrees"}, targetArg},
		Usage:       "rotate <degrees> [target]",
		Description: "Rotate clockwise. Multiples of 90 are exact.",
	},
	{
		Name:        "flip",
		Args:        []ArgSpec{{"direction", "enum", true, "", "horizontal|vertical|both"}, targetArg},
		Usage:       "flip <direction> [target]",
		Description: "Mirror the image or the selection.",
	},
	{
		Name:        "fill",
		Args:        []ArgSpec{{"x", "int", true, "", "seed x"}, {"y", "int", true, "", "seed y"}, {"color", "color", false, "", "fill color (default: configured foreground)"}, {"similarity", "percent", false, "", "color similarity 0..30% (default: configured)"}},
		Usage:       "fill <x> <y> [color] [similarity]",
		Description: "Flood fill the region connected to (x,y).",
	},
	{
		Name:        "clear",
		Args:        []ArgSpec{targetArg},
		Usage:       "clear [target]",
		Description: "Fill the image with the background color, or make the selection transparent.",
	},
	{
		Name:        "autocrop",
		Args:        []ArgSpec{{"similarity", "percent", false, "", "color similarity 0..30% (default: configured)"}, targetArg},
		Usage:       "autocrop [similarity] [target]",
		Description: "Remove the uniform border around the image or the selection.",
	},
	{
		Name:        "invert",
		Args:        []ArgSpec{{"channels", "enum", false, "rgb", "rgb|r|g|b|rg|rb|gb"}, targetArg},
		Usage:       "invert [channels] [target]",
		Description: "Invert color channels.",
	},
	{
		Name:        "grayscale",
		Args:        []ArgSpec{targetArg},
		Usage:       "grayscale [target]",
		Description: "Convert to gray.",
	},
	{
		Name:        "blur",
		Args:        []ArgSpec{{"sigma", "float", true, "", "gaussian sigma"}, targetArg},
		Usage:       "blur <sigma> [target]",
		Description: "Gaussian blur.",
	},
	{
		Name:        "sharpen",
		Args:        []ArgSpec{{"sigma", "float", true, "", "blur sigma"}, {"amount", "float", false, "1.0", "sharpen amount"}, targetArg},
		Usage:       "sharpen <sigma> [amount] [target]",
		Description: "Unsharp mask.",
	},
	{
		Name:        "balance",
		Args:        []ArgSpec{{"brightness", "int", false, "0", "-50..50"}, {"contrast", "int", false, "0", "-50..50"}, {"gamma", "int", false, "0", "-50..50"}, targetArg},
		Usage:       "balance [brightness] [contrast] [gamma] [target]",
		Description: "Adjust brightness, contrast and gamma.",
	},
	{
		Name:        "hsv",
		Args:        []ArgSpec{{"hue", "float", false, "0", "degrees"}, {"saturation", "float", false, "0", "-1..1"}, {"value", "float", false, "0", "-1..1"}, targetArg},
		Usage:       "hsv [hue] [saturation] [value] [target]",
		Description: "Shift hue, saturation and value.",
	},
	{
		Name:        "emboss",
		Args:        []ArgSpec{{"strength", "float", false, "1.0", "emboss strength"}, targetArg},
		Usage:       "emboss [strength] [target]",
		Description: "Emboss.",
	},
	{
		Name:        "reduceColors",
		Args:        []ArgSpec{{"levels", "int", true, "", "levels per channel, 2 for monochrome"}, targetArg},
		Usage:       "reduceColors <levels> [target]",
		Description: "Posterize, or threshold to black and white with 2 levels.",
	},
	{
		Name:        "flatten",
		Args:        []ArgSpec{{"color1", "color", true, "", "dark end"}, {"color2", "color", true, "", "light end"}, targetArg},
		Usage:       "flatten <color1> <color2> [target]",
		Description: "Map luminance onto a two-color gradient.",
	},
	{
		Name:        "select",
		Args:        []ArgSpec{{"shape", "enum", true, "", "rectangle|ellipse"}, {"x", "int", true, "", "left"}, {"y", "int", true, "", "top"}, {"width", "int", true, "", "width"}, {"height", "int", true, "", "height"}},
		Usage:       "select <shape> <x> <y> <width> <height>",
		Description: "Mark a rectangular or elliptical region.",
	},
	{
		Name:        "selectPolygon",
		Args:        []ArgSpec{{"points", "string", true, "", "x,y pairs separated by spaces"}},
		Usage:       "selectPolygon <points>",
		Description: "Mark a free-form region.",
	},
	{
		Name:        "selectAll",
		Args:        []ArgSpec{},
		Usage:       "selectAll",
		Description: "Mark the whole image.",
	},
	{
		Name:        "text",
		Args:        []ArgSpec{{"x", "int", true, "", "left"}, {"y", "int", true, "", "top"}, {"width", "int", true, "", "box width"}, {"height", "int", true, "", "box height"}, {"text", "string", true, "", `use \n for new lines`}},
		Usage:       "text <x> <y> <width> <height> <text>",
		Description: "Create a text box.",
	},
	{
		Name:        "write",
		Args:        []ArgSpec{{"text", "string", true, "", `use \n for new lines`}},
		Usage:       "write <text>",
		Description: "Replace the text of the text box.",
	},
	{
		Name:        "moveSelection",
		Args:        []ArgSpec{{"dx", "int", true, "", "horizontal offset"}, {"dy", "int", true, "", "vertical offset"}},
		Usage:       "moveSelection <dx> <dy>",
		Description: "Move the selection and its content.",
	},
	{
		Name:        "transparency",
		Args:        []ArgSpec{{"color", "color", true, "", "key color, or 'opaque'"}, {"similarity", "percent", false, "", "color similarity 0..30% (default: configured)"}},
		Usage:       "transparency <color> [similarity]",
		Description: "Show pixels similar to a key color as transparent in the selection.",
	},
	{
		Name:        "deselect",
		Args:        []ArgSpec{},
		Usage:       "deselect",
		Description: "Paste the selection down and remove it.",
	},
	{
		Name:        "deleteSelection",
		Args:        []ArgSpec{},
		Usage:       "deleteSelection",
		Description: "Remove the selection and discard its content.",
	},
}
