// Package render turns posts into the markup of the post list.
package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/IlianBuh/Blog-service/internal/config/frontend"
	"github.com/IlianBuh/Blog-service/internal/domain/models"
)

const postsTemplate = `{{range .}}<article class="post">
    <h2>{{.Title}}</h2>
    <div class="post-meta">
        <span class="author">By {{.Author}}</span>
        <span class="date">{{date .}}</span>
    </div>
    <div class="post-content">
        {{markup .Body}}
    </div>
</article>
{{end}}`

type Renderer struct {
	tmpl     *template.Template
	layout   string
	location *time.Location
}

// New creates renderer formatting dates with layout in loc. Empty layout
// falls back to the en-US short date, nil loc to local time
func New(layout string, loc *time.Location) *Renderer {
	if layout == "" {
		layout = frontend.DefaultDateLayout
	}
	if loc == nil {
		loc = time.Local
	}

	r := &Renderer{
		layout:   layout,
		location: loc,
	}
	r.tmpl = template.Must(template.New("posts").Funcs(template.FuncMap{
		"date": r.Date,
		// body is editor markup and is shown as is
		"markup": func(body string) template.HTML {
			return template.HTML(body)
		},
	}).Parse(postsTemplate))

	return r
}

// Date formats the creation day of post
func (r *Renderer) Date(post models.Post) string {
	return post.CreatedAt().In(r.location).Format(r.layout)
}

// Posts renders posts in the given order
func (r *Renderer) Posts(posts []models.Post) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, posts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
