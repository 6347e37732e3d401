package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/briancoit/starfield/contact"
)

//go:embed templates/*.html
var templateFS embed.FS

// ShellTemplate is the name of the page template.
const ShellTemplate = "index.html"

// Page is the data rendered into the shell.
type Page struct {
	Title string
	Name  string
	Role  string
	Intro []string
	Jobs  []Job
	// Form carries the contact form's field names so the markup matches
	// what the endpoint reads.
	Form FormNames
	// Status is the contact form status to render, normally idle.
	Status string
}

// FormNames are the posted field names of the contact form.
type FormNames struct {
	FormName, FormNameValue, Bot, Name, Email, Message string
}

// DefaultPage returns the portfolio page.
func DefaultPage() Page {
	return Page{
		Title:  "Brian Coit",
		Name:   "brian",
		Role:   "Principal Software Engineer. Let's get to work.",
		Intro:  Intro,
		Jobs:   EmploymentHistory,
		Form:   contactFormNames(),
		Status: contact.StatusIdle.String(),
	}
}

func contactFormNames() FormNames {
	return FormNames{
		FormName:      contact.FieldFormName,
		FormNameValue: contact.FormName,
		Bot:           contact.FieldBot,
		Name:          contact.FieldName,
		Email:         contact.FieldEmail,
		Message:       contact.FieldMessage,
	}
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Render writes the shell for p to w.
func Render(w io.Writer, p Page) error {
	t, err := Templates()
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, ShellTemplate, p); err != nil {
		return fmt.Errorf("render %s: %w", ShellTemplate, err)
	}
	return nil
}
