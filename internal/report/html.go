package report

import (
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"migration-coverage/internal/tree"
)

const (
	// PageFileName is the listing page written into every mirrored directory.
	PageFileName = "index.html"
	// JSONFileName is the machine readable report in the output root.
	JSONFileName = "coverage.json"
)

// OutputName maps a scanned directory name to its mirrored directory name.
// Names that would clash with a report file, and names already starting with
// "_", get one more leading "_", so the mapping stays one to one.
func OutputName(name string) string {
	if name == PageFileName || name == JSONFileName || strings.HasPrefix(name, "_") {
		return "_" + name
	}
	return name
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Migration coverage: {{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Coverage: {{.Coverage}}</p>
{{if .HasParent}}<p><a href="../` + PageFileName + `">..</a></p>{{end}}
<table>
<thead><tr><th>Name</th><th>Coverage</th></tr></thead>
<tbody>
{{range .Directories}}<tr><td><a href="{{.Link}}">{{.Name}}/</a></td><td>{{.Coverage}}</td></tr>
{{end}}</tbody>
</table>
<table>
<thead><tr><th>File</th><th>Family</th></tr></thead>
<tbody>
{{range .Files}}<tr><td>{{.Name}}</td><td>{{.Family}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type directoryRow struct {
	Name     string
	Link     string
	Coverage string
}

type fileRow struct {
	Name   string
	Family string
}

type page struct {
	Title       string
	Coverage    string
	HasParent   bool
	Directories []directoryRow
	Files       []fileRow
}

// RenderHTML writes one listing page per directory of t under outDir,
// mirroring the scanned layout. Existing directories are reused.
func RenderHTML(t *tree.FileTree, outDir string) error {
	return render(t, outDir, ".")
}

func render(t *tree.FileTree, dir, rel string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	p := page{
		Title:     rel,
		Coverage:  FormatCoverage(t),
		HasParent: rel != ".",
	}
	for _, name := range sortedKeys(t.Directories) {
		p.Directories = append(p.Directories, directoryRow{
			Name:     name,
			Link:     path.Join(OutputName(name), PageFileName),
			Coverage: FormatCoverage(t.Directories[name]),
		})
	}
	for _, name := range sortedKeys(t.Files) {
		p.Files = append(p.Files, fileRow{Name: name, Family: Classification(t.Files[name])})
	}

	f, err := os.Create(filepath.Join(dir, PageFileName))
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	if err := pageTemplate.Execute(f, p); err != nil {
		f.Close()
		return fmt.Errorf("failed to render page for %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	for _, name := range sortedKeys(t.Directories) {
		if err := render(t.Directories[name], filepath.Join(dir, OutputName(name)), path.Join(rel, name)); err != nil {
			return err
		}
	}
	return nil
}
