package api

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/bimalism/portal/internal/domain"
)

// ─── Portal Pages ───────────────────────────────────────────────────────────
// Page content lives on disk in the configured pages directory; the server
// wraps it in the app layout (header, sidebar with live coin badge). A
// missing page file renders an "under construction" placeholder rather than
// a 404, so the navigation never dead-ends.

// pageRoute maps a portal path to a content file and page title.
type pageRoute struct {
	Path    string
	Aliases []string
	File    string
	Title   string
}

// pageRoutes is the portal's navigation table.
var pageRoutes = []pageRoute{
	{Path: "/neet", Aliases: []string{"/neet.html"}, File: "neet.html", Title: "NEET Preparation"},
	{Path: "/jee", Aliases: []string{"/jee.html"}, File: "jee.html", Title: "JEE Preparation"},
	{Path: "/game", Aliases: []string{"/g.html"}, File: "g.html", Title: "Educational Games"},
	{Path: "/settings", Aliases: []string{"/settings.html"}, File: "settings.html", Title: "Settings"},
	{Path: "/tips", Aliases: []string{"/tips.html"}, File: "tips.html", Title: "Study Tips"},
	{Path: "/table", Aliases: []string{"/table.html"}, File: "table.html", Title: "Study Resources"},
	{Path: "/calculator", Aliases: []string{"/calculator.html"}, File: "calculator.html", Title: "Calculator"},
	{Path: "/bio-data-pop-up", Aliases: []string{"/bio-data-pop-up.html"}, File: "bio-data-pop-up.html", Title: "Student Profile"},
	{Path: "/h.html", File: "h.html", Title: "हिंदी"},
	{Path: "/t.html", File: "t.html", Title: "தமிழ்"},
}

// recordReader is the slice of the accounting service the pages need.
type recordReader interface {
	Query() domain.Record
}

// PageSet renders the portal pages.
type PageSet struct {
	dir       string
	goal      int64
	accounts  recordReader
	layout    *template.Template
	challenge *template.Template
	static    http.Handler
}

// NewPageSet creates the page renderer. dir is the pages directory on disk;
// goal is the study-challenge coin target.
func NewPageSet(dir string, goal int64, accounts recordReader) (*PageSet, error) {
	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, err
	}
	challenge, err := template.New("challenge").Parse(challengeTemplate)
	if err != nil {
		return nil, err
	}
	return &PageSet{
		dir:       dir,
		goal:      goal,
		accounts:  accounts,
		layout:    layout,
		challenge: challenge,
		static:    http.FileServer(http.Dir(dir)),
	}, nil
}

// Mount registers all page routes on the router.
func (p *PageSet) Mount(r chi.Router) {
	r.Get("/", p.handleHome)
	r.Get("/index.html", p.handleHome)
	r.Get("/registration", p.handleChallenge)
	r.Get("/registration.html", p.handleChallenge)

	for _, route := range pageRoutes {
		h := p.pageHandler(route)
		r.Get(route.Path, h)
		for _, alias := range route.Aliases {
			r.Get(alias, h)
		}
	}

	// Everything else falls through to static files in the pages dir.
	r.Get("/*", p.handleStatic)
}

// layoutData feeds the app layout template.
type layoutData struct {
	Title   string
	Coins   int64
	Content template.HTML
}

// handleHome serves the homepage content inside the layout.
func (p *PageSet) handleHome(w http.ResponseWriter, r *http.Request) {
	p.renderPage(w, "index.html", "Bimalism")
}

// pageHandler serves one routed page inside the layout.
func (p *PageSet) pageHandler(route pageRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.renderPage(w, route.File, route.Title)
	}
}

func (p *PageSet) renderPage(w http.ResponseWriter, file, title string) {
	content := p.pageContent(file, title)
	rec := p.accounts.Query()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = p.layout.Execute(w, layoutData{
		Title:   title,
		Coins:   rec.Coins,
		Content: content,
	})
}

// pageContent reads the page body from disk, or builds the placeholder.
// Page files are trusted local content, not user input.
func (p *PageSet) pageContent(file, title string) template.HTML {
	raw, err := os.ReadFile(filepath.Join(p.dir, file))
	if err != nil {
		return template.HTML(
			`<div class="placeholder"><h1>` + template.HTMLEscapeString(title) + `</h1>` +
				`<p>This page is under construction.</p>` +
				`<a href="/">&larr; Back to Home</a></div>`)
	}
	return template.HTML(raw)
}

// challengeData feeds the study-challenge page template.
type challengeData struct {
	Coins       int64
	StudyLabel  string
	Goal        int64
	Remaining   int64
	ProgressPct float64
}

// handleChallenge renders the study-challenge page from the current record.
func (p *PageSet) handleChallenge(w http.ResponseWriter, r *http.Request) {
	rec := p.accounts.Query()

	remaining := p.goal - rec.Coins
	if remaining < 0 {
		remaining = 0
	}
	pct := float64(rec.Coins) / float64(p.goal) * 100
	if pct > 100 {
		pct = 100
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = p.challenge.Execute(w, challengeData{
		Coins:       rec.Coins,
		StudyLabel:  domain.FormatStudyTime(rec.StudyTime),
		Goal:        p.goal,
		Remaining:   remaining,
		ProgressPct: pct,
	})
}

// handleStatic serves raw assets (CSS, JS, images) from the pages dir.
func (p *PageSet) handleStatic(w http.ResponseWriter, r *http.Request) {
	p.static.ServeHTTP(w, r)
}
