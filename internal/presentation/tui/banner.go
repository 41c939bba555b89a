package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	` __   __ _                  _   _       `,
	` \ \ / /(_) __ _ _ __   ___| |_| |_ ___ `,
	`  \ V / | |/ _' | '_ \ / _ \ __| __/ _ \`,
	`   | |  | | (_| | | | |  __/ |_| ||  __/`,
	`   |_|  |_|\__, |_| |_|\___|\__|\__\___|`,
	`           |___/                        `,
}

var bannerColors = []string{"#fbbf24", "#fb923c", "#f87171", "#f472b6", "#c084fc", "#818cf8"}

// PrintBanner writes the vignette banner and version to w using the given profile.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, p.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
