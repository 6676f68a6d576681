package mail

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	texttemplate "text/template"
)

// ErrTemplateNotFound is returned when no body exists for a template name.
var ErrTemplateNotFound = errors.New("mail: template not found")

// Content is a rendered mail body.
type Content struct {
	HTML string
	Text string
}

// Renderer renders mail bodies from "<name>.html" and "<name>.txt" files.
// Either file may be missing, but not both.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses every *.html and *.txt file at the root of fsys.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{}

	if files, _ := fs.Glob(fsys, "*.html"); len(files) > 0 {
		t, err := htmltemplate.New("").Option("missingkey=error").ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("mail: parse html templates: %w", err)
		}
		r.html = t
	}

	if files, _ := fs.Glob(fsys, "*.txt"); len(files) > 0 {
		t, err := texttemplate.New("").Option("missingkey=error").ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("mail: parse text templates: %w", err)
		}
		r.text = t
	}

	return r, nil
}

func (r *Renderer) Render(name string, data any) (Content, error) {
	var out Content
	var found bool

	if r.html != nil {
		if t := r.html.Lookup(name + ".html"); t != nil {
			var buf bytes.Buffer
			if err := t.Execute(&buf, data); err != nil {
				return Content{}, fmt.Errorf("mail: render %s.html: %w", name, err)
			}
			out.HTML, found = buf.String(), true
		}
	}

	if r.text != nil {
		if t := r.text.Lookup(name + ".txt"); t != nil {
			var buf bytes.Buffer
			if err := t.Execute(&buf, data); err != nil {
				return Content{}, fmt.Errorf("mail: render %s.txt: %w", name, err)
			}
			out.Text, found = buf.String(), true
		}
	}

	if !found {
		return Content{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return out, nil
}
