package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

const (
	PageStatusPending = "pending"
	PageStatusLoaded  = "loaded"
	PageStatusFailed  = "failed"
)

type Page struct {
	Title         string
	Status        string
	Message       string
	Cards         []Card
	WebSocketPath string
}

func LoadingPage(wsPath string) Page {
	return Page{Title: "Users", Status: PageStatusPending, WebSocketPath: wsPath}
}

func ErrorPage(message string) Page {
	return Page{Title: "Users", Status: PageStatusFailed, Message: message}
}

func CardsPage(cards []Card) Page {
	return Page{Title: "Users", Status: PageStatusLoaded, Cards: cards}
}

func WritePage(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}
