package app

import (
	"errors"

	"github.com/kastheco/dye/config"
	"github.com/kastheco/dye/log"
	"github.com/kastheco/dye/palette"
)

var (
	// ErrNoTheme is returned when a theme is required and none was selected.
	ErrNoTheme = errors.New("no theme specified")
	// ErrNoPattern is returned when a pattern is required and none was selected.
	ErrNoPattern = errors.New("no pattern specified")
	// ErrNothingToPreview is returned by preview without a theme or a pattern.
	ErrNothingToPreview = errors.New("nothing to preview")

	errThemeConflict = errors.New("a theme is required and you specified --no-theme")
)

// LoadOptions selects the theme and pattern for one command.
type LoadOptions struct {
	Theme   config.Selection
	Pattern config.Selection
	// NoTheme skips theme loading altogether.
	NoTheme        bool
	RequireTheme   bool
	RequirePattern bool
}

// Inputs are the loaded files and the palette built from them. Theme and
// Pattern are never nil; a missing file is represented by an empty one.
type Inputs struct {
	Theme         *palette.Theme
	ThemeSource   config.Source
	Pattern       *palette.Pattern
	PatternSource config.Source
	Palette       *palette.Palette
}

// HasTheme reports whether a theme file was loaded.
func (in *Inputs) HasTheme() bool { return in.ThemeSource.Path != "" }

// HasPattern reports whether a pattern file was loaded.
func (in *Inputs) HasPattern() bool { return in.PatternSource.Path != "" }

// Load resolves, reads and merges the theme and the pattern.
func Load(cfg *config.Config, opts LoadOptions) (*Inputs, error) {
	in := &Inputs{Theme: palette.EmptyTheme(), Pattern: palette.EmptyPattern()}

	switch {
	case opts.NoTheme && opts.RequireTheme:
		return nil, errThemeConflict
	case opts.NoTheme:
		log.Debugf("skipping theme because --no-theme was specified")
	default:
		src, ok, err := cfg.ResolveTheme(opts.Theme)
		if err != nil {
			return nil, err
		}
		switch {
		case ok:
			log.Debugf("loading theme from '%s' (%s)", src.Path, src.Origin)
			theme, err := palette.LoadTheme(src.Path)
			if err != nil {
				return nil, err
			}
			in.Theme, in.ThemeSource = theme, src
		case opts.RequireTheme:
			return nil, ErrNoTheme
		default:
			log.Debugf("no theme specified")
		}
	}

	src, ok, err := cfg.ResolvePattern(opts.Pattern)
	if err != nil {
		return nil, err
	}
	switch {
	case ok:
		log.Debugf("loading pattern from '%s' (%s)", src.Path, src.Origin)
		pattern, err := palette.LoadPattern(src.Path)
		if err != nil {
			return nil, err
		}
		in.Pattern, in.PatternSource = pattern, src
	case opts.RequirePattern:
		return nil, ErrNoPattern
	default:
		log.Debugf("no pattern specified")
	}

	pal, err := palette.New(in.Theme, in.Pattern)
	if err != nil {
		return nil, err
	}
	in.Palette = pal
	return in, nil
}
