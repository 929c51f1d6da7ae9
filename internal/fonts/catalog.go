package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
)

// Candidate describes one loadable font source. Exactly one of Path or Data
// is expected to be set; Data entries are embedded and never touch the
// filesystem. A candidate that exists but fails to parse is skipped by the
// resolver, so listing files that may be absent on a given host is fine.
type Candidate struct {
	// Families lists the family names this source satisfies, matched
	// case-insensitively after trimming.
	Families []string
	Bold     bool
	Path     string
	Data     []byte
	// Name labels the candidate in logs and handles. Defaults to Path or
	// the first family for embedded entries.
	Name string
}

func (c Candidate) source() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Path != "" {
		return c.Path
	}
	if len(c.Families) > 0 {
		return "embedded:" + c.Families[0]
	}
	return "embedded"
}

func (c Candidate) satisfies(family string) bool {
	for _, f := range c.Families {
		if normalizeFamily(f) == family {
			return true
		}
	}
	return false
}

// Catalog is an ordered list of font candidates plus the family requests
// fall back to when they match nothing. Order matters: within a relaxation
// tier the earliest usable candidate wins.
type Catalog struct {
	defaultFamily string
	candidates    []Candidate
}

// NewCatalog builds a catalog with the given fallback family and candidates.
func NewCatalog(defaultFamily string, candidates ...Candidate) *Catalog {
	return &Catalog{
		defaultFamily: normalizeFamily(defaultFamily),
		candidates:    append([]Candidate(nil), candidates...),
	}
}

// Append adds candidates to the end of the search order.
func (c *Catalog) Append(candidates ...Candidate) {
	c.candidates = append(c.candidates, candidates...)
}

// Candidates returns the full ordered candidate list.
func (c *Catalog) Candidates() []Candidate {
	return c.candidates
}

// DefaultFamily returns the normalized family used when a request matches
// no candidate at all.
func (c *Catalog) DefaultFamily() string {
	return c.defaultFamily
}

func (c *Catalog) matching(family string) []Candidate {
	var out []Candidate
	for _, cand := range c.candidates {
		if cand.satisfies(family) {
			out = append(out, cand)
		}
	}
	return out
}

func normalizeFamily(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultCatalog returns the platform font search set. DejaVu Sans is the
// default family: it has broad Unicode coverage, Hebrew included, which the
// common Latin-only families requested by callers do not. The embedded Go
// Regular face terminates the list so at least one candidate always parses.
func DefaultCatalog() *Catalog {
	cat := NewCatalog("DejaVu Sans")
	switch runtime.GOOS {
	case "darwin":
		cat.Append(
			Candidate{Families: []string{"Arial", "Helvetica"}, Path: "/Library/Fonts/Arial.ttf"},
			Candidate{Families: []string{"Arial", "Helvetica"}, Bold: true, Path: "/Library/Fonts/Arial Bold.ttf"},
			Candidate{Families: []string{"Arial", "Helvetica"}, Path: "/System/Library/Fonts/Supplemental/Arial.ttf"},
			Candidate{Families: []string{"Arial", "Helvetica"}, Bold: true, Path: "/System/Library/Fonts/Supplemental/Arial Bold.ttf"},
			Candidate{Families: []string{"Tahoma"}, Path: "/System/Library/Fonts/Supplemental/Tahoma.ttf"},
			Candidate{Families: []string{"Tahoma"}, Bold: true, Path: "/System/Library/Fonts/Supplemental/Tahoma Bold.ttf"},
			Candidate{Families: []string{"DejaVu Sans", "DejaVu"}, Path: "/Library/Fonts/DejaVuSans.ttf"},
			Candidate{Families: []string{"DejaVu Sans", "DejaVu"}, Bold: true, Path: "/Library/Fonts/DejaVuSans-Bold.ttf"},
		)
	case "windows":
		cat.Append(
			Candidate{Families: []string{"Arial", "Helvetica"}, Path: `C:\Windows\Fonts\arial.ttf`},
			Candidate{Families: []string{"Arial", "Helvetica"}, Bold: true, Path: `C:\Windows\Fonts\arialbd.ttf`},
			Candidate{Families: []string{"Tahoma"}, Path: `C:\Windows\Fonts\tahoma.ttf`},
			Candidate{Families: []string{"Tahoma"}, Bold: true, Path: `C:\Windows\Fonts\tahomabd.ttf`},
			Candidate{Families: []string{"Verdana"}, Path: `C:\Windows\Fonts\verdana.ttf`},
			Candidate{Families: []string{"Verdana"}, Bold: true, Path: `C:\Windows\Fonts\verdanab.ttf`},
			Candidate{Families: []string{"David", "DejaVu Sans"}, Path: `C:\Windows\Fonts\david.ttf`},
			Candidate{Families: []string{"David", "DejaVu Sans"}, Bold: true, Path: `C:\Windows\Fonts\davidbd.ttf`},
		)
	default:
		cat.Append(
			Candidate{Families: []string{"DejaVu Sans", "DejaVu", "Arial", "Helvetica"}, Path: "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"},
			Candidate{Families: []string{"DejaVu Sans", "DejaVu", "Arial", "Helvetica"}, Bold: true, Path: "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"},
			Candidate{Families: []string{"DejaVu Sans", "DejaVu"}, Path: "/usr/share/fonts/dejavu/DejaVuSans.ttf"},
			Candidate{Families: []string{"DejaVu Sans", "DejaVu"}, Bold: true, Path: "/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf"},
			Candidate{Families: []string{"Liberation Sans", "Arial", "Helvetica"}, Path: "/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf"},
			Candidate{Families: []string{"Liberation Sans", "Arial", "Helvetica"}, Bold: true, Path: "/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf"},
			Candidate{Families: []string{"Noto Sans Hebrew", "Noto Sans"}, Path: "/usr/share/fonts/truetype/noto/NotoSansHebrew-Regular.ttf"},
			Candidate{Families: []string{"Noto Sans Hebrew", "Noto Sans"}, Bold: true, Path: "/usr/share/fonts/truetype/noto/NotoSansHebrew-Bold.ttf"},
		)
	}
	cat.Append(Candidate{
		Families: []string{"Go", "Go Regular"},
		Data:     goregular.TTF,
		Name:     "goregular (embedded)",
	})
	return cat
}

// CatalogFromDir builds candidates for every .ttf/.otf file directly inside
// dir. The family is derived from the file name; files whose name contains
// "bold" are tagged as the bold weight. Useful for mounting a custom font
// directory without declaring each file.
func CatalogFromDir(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fonts: read dir %s: %w", dir, err)
	}
	var out []Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		family := familyFromFileName(base)
		bold := strings.Contains(strings.ToLower(base), "bold")
		out = append(out, Candidate{
			Families: []string{family},
			Bold:     bold,
			Path:     filepath.Join(dir, name),
		})
	}
	return out, nil
}

func familyFromFileName(base string) string {
	family := strings.NewReplacer("-", " ", "_", " ").Replace(base)
	lower := strings.ToLower(family)
	for _, suffix := range []string{" bold", " regular", "bold", "regular"} {
		if strings.HasSuffix(lower, suffix) {
			family = strings.TrimSpace(family[:len(family)-len(suffix)])
			break
		}
	}
	if family == "" {
		family = base
	}
	return family
}
