package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"schoolactivities/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Embedded templates are parsed once; a parse failure is a build defect.
var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates.
// A template named "x" is made of x_subject.txt, x.html and x.txt.
type templateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{html: htmlTemplates, text: textTemplates}
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err = r.text.ExecuteTemplate(&buf, templateName+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", templateName, err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err = r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", templateName, err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err = r.text.ExecuteTemplate(&buf, templateName+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", templateName, err)
	}
	return subject, htmlBody, buf.String(), nil
}
