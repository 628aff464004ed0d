// Package output creates termenv outputs with the color handling shared by the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile for the current environment.
// NO_COLOR always yields Ascii. Non-interactive runs get plain ANSI so CI logs stay readable.
func Profile(interactive bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if !interactive {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using the interactive profile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return newOutput(w, Profile(true), opts...)
}

// NewPlain creates a termenv.Output for w using the non-interactive profile.
func NewPlain(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return newOutput(w, Profile(false), opts...)
}

func newOutput(w io.Writer, profile termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	opts = append(opts,
		termenv.WithProfile(profile),
		termenv.WithTTY(true),
	)
	return termenv.NewOutput(w, opts...)
}
