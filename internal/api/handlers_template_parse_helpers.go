package api

import (
	"fmt"
	"html/template"
	"path/filepath"
)

func parsePageTemplates(templateDir string, funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		files := make([]string, 0, len(sharedTemplateFiles)+2)
		files = append(files, filepath.Join(templateDir, "base.html"))
		for _, shared := range sharedTemplateFiles {
			files = append(files, filepath.Join(templateDir, shared))
		}
		files = append(files, filepath.Join(templateDir, page+".html"))

		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}
