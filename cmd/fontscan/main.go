// Command fontscan inspects the font search set on the current host: which
// candidates parse, what a given family request resolves to, and how large a
// sample text measures. Useful when a deployment renders tofu instead of
// Hebrew glyphs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/font/opentype"

	"shivuk/internal/fonts"
)

func main() {
	var (
		familyFlag string
		boldFlag   bool
		sizeFlag   int
		textFlag   string
		dirsFlag   string
	)
	flag.StringVar(&familyFlag, "family", "DejaVu Sans", "font family to resolve")
	flag.BoolVar(&boldFlag, "bold", false, "request the bold weight")
	flag.IntVar(&sizeFlag, "size", 48, "pixel size to resolve at")
	flag.StringVar(&textFlag, "text", "אבג123 ABC", "sample text to measure")
	flag.StringVar(&dirsFlag, "dirs", "", "extra font directories to scan (path list, fallbacks to FONT_DIRS)")
	flag.Parse()

	dirs := strings.TrimSpace(dirsFlag)
	if dirs == "" {
		dirs = strings.TrimSpace(os.Getenv("FONT_DIRS"))
	}

	catalog := fonts.DefaultCatalog()
	for _, dir := range filepath.SplitList(dirs) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		candidates, err := fonts.CatalogFromDir(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan %s: %v\n", dir, err)
			continue
		}
		catalog.Append(candidates...)
	}

	candidates := catalog.Candidates()
	fmt.Printf("scanning %d candidates\n", len(candidates))
	for _, cand := range candidates {
		status, detail := probe(cand)
		weight := "regular"
		if cand.Bold {
			weight = "bold"
		}
		fmt.Printf("  %-4s %s [%s, %s]%s\n", status, candidateLabel(cand), strings.Join(cand.Families, ", "), weight, detail)
	}

	resolver := fonts.NewResolver(catalog, zerolog.New(os.Stderr).Level(zerolog.WarnLevel))
	handle, err := resolver.Resolve(familyFlag, boldFlag, sizeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve %q: %v\n", familyFlag, err)
		os.Exit(1)
	}
	fmt.Printf("resolved %q bold=%t size=%d -> source=%s family=%s degraded=%t\n",
		familyFlag, boldFlag, sizeFlag, handle.Source, handle.Family, handle.Degraded)

	box := fonts.Measure(textFlag, handle)
	fmt.Printf("measured %q: %dx%d px, ascent %d, descent %d\n",
		textFlag, box.Width(), box.Height(), box.Ascent(), box.Descent())

	if handle.Degraded {
		fmt.Fprintln(os.Stderr, "no catalog candidate is usable on this host, renditions will use the built-in bitmap face")
		os.Exit(1)
	}
}

func probe(cand fonts.Candidate) (string, string) {
	data := cand.Data
	if cand.Path != "" {
		var err error
		data, err = os.ReadFile(cand.Path)
		if err != nil {
			return "miss", ": " + err.Error()
		}
	}
	if _, err := opentype.Parse(data); err != nil {
		return "err", ": " + err.Error()
	}
	return "ok", ""
}

func candidateLabel(cand fonts.Candidate) string {
	if cand.Path != "" {
		return cand.Path
	}
	if cand.Name != "" {
		return cand.Name
	}
	return "embedded"
}
