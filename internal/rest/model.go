package rest

import (
	"html/template"
	"time"

	"github.com/daniilsolovey/news-admin/internal/newsportal"
)

// NewsFilter is the query of GET /news.
type NewsFilter struct {
	Limit int
}

type News struct {
	ID      int
	Title   string
	Body    template.HTML
	Created time.Time
	Path    string
}

type Alert struct {
	Severity string
	Message  string
}

type homePage struct {
	News []News
}

type newsPage struct {
	News     []News
	LoggedIn bool
	Alerts   []Alert
}

type newsItemPage struct {
	News     News
	LoggedIn bool
}

type adminPage struct {
	Username string
	News     []News
	Alerts   []Alert
}

type signinPage struct {
	Alerts []Alert
}

// editorPage is embedded into a script block by the editor template.
type editorPage struct {
	ID            int
	Title         string
	Body          string
	CorrelationID string
}

func newEditorPage(n *newsportal.News) editorPage {
	return editorPage{
		ID:            n.ID,
		Title:         n.Title,
		Body:          n.Body,
		CorrelationID: n.CorrelationID,
	}
}
