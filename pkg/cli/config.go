package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/tpaint/pkg/command"
	"github.com/Fepozopo/tpaint/pkg/selection"
	"github.com/Fepozopo/tpaint/pkg/stdimg"
)

// Config holds the editor settings read from the environment.
type Config struct {
	Background stdimg.Color // canvas and exposed-area fill
	Foreground stdimg.Color // flood fill and text color
	Similarity float64      // color similarity for fill and autocrop, 0..0.3
	FontPath   string       // TrueType font for text boxes; empty uses the built-in face
	FontSize   float64
	Undo       command.Limits

	Debug        bool
	PreviewDebug bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Background: stdimg.White,
		Foreground: stdimg.Black,
		FontSize:   selection.DefaultTextStyle().Size,
		Undo:       command.DefaultLimits(),
	}
}

// LoadConfig loads envFile into the process environment, without overriding
// variables that are already set, then reads the TPAINT_* variables. A
// missing file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return ConfigFromEnv()
}

// ConfigFromEnv reads the TPAINT_* variables over DefaultConfig. Variables
// that are unset or empty keep their default.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error
	color := func(key string, dst *stdimg.Color) {
		if v := os.Getenv(key); v != "" {
			c, err := stdimg.ParseColor(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = c
		}
	}
	float := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = f
		}
	}
	integer := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			s, err := parseBoolLikeToString(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = s == "true"
		}
	}

	color("TPAINT_BACKGROUND", &cfg.Background)
	color("TPAINT_FOREGROUND", &cfg.Foreground)

	// similarity is given in percent, as in the command arguments
	pct := cfg.Similarity * 100
	float("TPAINT_SIMILARITY", &pct)
	if pct < 0 || pct > 30 {
		errs = append(errs, fmt.Errorf("TPAINT_SIMILARITY: %v%% out of range 0..30", pct))
	} else {
		cfg.Similarity = pct / 100
	}

	cfg.FontPath = os.Getenv("TPAINT_FONT")
	float("TPAINT_FONT_SIZE", &cfg.FontSize)

	integer("TPAINT_UNDO_MIN", &cfg.Undo.MinCommands)
	integer("TPAINT_UNDO_MAX", &cfg.Undo.MaxCommands)
	var mb int
	integer("TPAINT_UNDO_MAX_MB", &mb)
	if mb > 0 {
		cfg.Undo.MaxSize = int64(mb) << 20
	}
	if cfg.Undo.MinCommands < 1 || cfg.Undo.MaxCommands < cfg.Undo.MinCommands {
		errs = append(errs, fmt.Errorf("undo limits: min %d, max %d", cfg.Undo.MinCommands, cfg.Undo.MaxCommands))
		cfg.Undo = command.DefaultLimits()
	}

	boolean("TPAINT_DEBUG", &cfg.Debug)
	boolean("PREVIEW_DEBUG", &cfg.PreviewDebug)

	return cfg, errors.Join(errs...)
}
