package redirect

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

var pageTemplate = template.Must(template.New("redirect").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Redirecting…</title>
<meta name="robots" content="noindex">
<link rel="canonical" href="{{.To}}">
<meta http-equiv="refresh" content="0; url={{.To}}">
</head>
<body>
<p>This page has moved to <a href="{{.To}}">{{.To}}</a>.</p>
</body>
</html>
`))

// Generate writes <dir>/<from>/index.html for every rule and returns the
// number of pages written.
func Generate(dir string, rules []Rule) (int, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, r := range rules {
		rel := strings.Trim(CleanPath(r.From), "/")
		if rel == "" || strings.Contains(rel, "..") {
			return written, fmt.Errorf("refusing to write redirect for %q", r.From)
		}

		target := filepath.Join(root, filepath.FromSlash(rel), "index.html")
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, err
		}

		f, err := os.Create(target)
		if err != nil {
			return written, err
		}
		err = pageTemplate.Execute(f, r)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written++
	}
	return written, nil
}
