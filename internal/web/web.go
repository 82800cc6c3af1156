// Package web serves the channel grid as a server-rendered page with a JSON view model.
//
// # Routes
//
//	GET  /                       grid page
//	POST /filter                 toggle online-only
//	POST /refresh                refresh now (rate limited)
//	POST /channels               add channel(s) from the "name" field
//	POST /channels/{name}/delete remove a channel
//	POST /import                 multipart upload, one name per line in "file"
//	GET  /export                 tracked names, ?format=text|json|csv|markdown
//	GET  /api/channels           {"filter": ..., "items": [...]}
//	GET  /health                 liveness
//	GET  /metrics                Prometheus metrics
//
// Every form handler redirects back to the grid, so a reload never resubmits.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/streamgrid/internal/formatter"
	"github.com/desertthunder/streamgrid/internal/metrics"
	"github.com/desertthunder/streamgrid/internal/server"
	"github.com/desertthunder/streamgrid/internal/shared"
	"github.com/desertthunder/streamgrid/internal/tasks"
	"github.com/desertthunder/streamgrid/internal/view"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFiles embed.FS

// maxUploadSize bounds the multipart body accepted by /import.
const maxUploadSize = 1 << 20

var funcs = template.FuncMap{
	"boxStyle": func(c view.ColorPair) template.CSS {
		return template.CSS("color:" + c.Foreground + ";background:" + c.Background)
	},
	"since": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return time.Since(t).Round(time.Second).String() + " ago"
	},
}

// Options configures an [App].
type Options struct {
	Tracker      *tasks.Tracker
	Logger       *log.Logger
	RefreshRate  float64 // manual refreshes per second, 0 disables the limit
	RefreshBurst int
}

// App holds the handlers of the web grid.
type App struct {
	tracker *tasks.Tracker
	logger  *log.Logger
	limiter *rate.Limiter
	tmpl    *template.Template
}

// pageData is the template model of the grid page.
type pageData struct {
	Items       []view.DisplayItem
	Filter      view.Filter
	Tracked     int
	Backend     string
	LastRefresh time.Time
	Summary     tasks.RefreshResult
}

// apiResponse is the JSON view model served on /api/channels.
type apiResponse struct {
	Filter view.Filter        `json:"filter"`
	Items  []view.DisplayItem `json:"items"`
}

// New parses the templates and creates an [App] over opts.Tracker.
func New(opts Options) (*App, error) {
	if opts.Tracker == nil {
		return nil, shared.ErrServiceUnavailable
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if opts.RefreshRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RefreshRate), max(opts.RefreshBurst, 1))
	}

	return &App{
		tracker: opts.Tracker,
		logger:  opts.Logger,
		limiter: limiter,
		tmpl:    tmpl,
	}, nil
}

// Router registers every route on a [server.BasicRouter] with the standard middleware.
func (a *App) Router() *server.BasicRouter {
	r := server.NewBasicRouter()
	r.Use(
		server.RequestID(),
		server.Logging(a.logger),
		server.Recover(a.logger),
		server.Metrics(nil),
	)

	r.Handler(server.NewHealthHandler())
	r.Handle(http.MethodGet, "/metrics", metrics.Handler())

	r.HandleFunc(http.MethodGet, "/{$}", a.index)
	r.HandleFunc(http.MethodGet, "/api/channels", a.apiChannels)
	r.HandleFunc(http.MethodGet, "/export", a.export)
	r.HandleFunc(http.MethodPost, "/filter", a.toggleFilter)
	r.HandleFunc(http.MethodPost, "/channels", a.addChannels)
	r.HandleFunc(http.MethodPost, "/channels/{name}/delete", a.removeChannel)
	r.HandleFunc(http.MethodPost, "/import", a.importNames)

	throttle := server.Throttle(a.limiter, http.HandlerFunc(a.throttled))
	r.Handle(http.MethodPost, "/refresh", throttle(http.HandlerFunc(a.refresh)))

	return r
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	last, summary := a.tracker.LastRefresh()
	data := pageData{
		Items:       a.tracker.Items(),
		Filter:      a.tracker.Filter(),
		Tracked:     a.tracker.Len(),
		Backend:     a.tracker.Backend(),
		LastRefresh: last,
		Summary:     summary,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		a.logger.Error("failed to render page", "error", err)
	}
}

func (a *App) apiChannels(w http.ResponseWriter, r *http.Request) {
	body, err := shared.MarshalJSON(apiResponse{
		Filter: a.tracker.Filter(),
		Items:  a.tracker.Items(),
	}, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (a *App) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	body, err := formatter.ExportNames(a.tracker.Names(), format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch format {
	case formatter.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case formatter.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="channels"`)
	w.Write(body)
}

func (a *App) toggleFilter(w http.ResponseWriter, r *http.Request) {
	f := a.tracker.ToggleFilter()
	a.logger.Debug("filter toggled", "online_only", f.OnlineOnly)
	home(w, r)
}

func (a *App) refresh(w http.ResponseWriter, r *http.Request) {
	if _, err := a.tracker.Refresh(r.Context(), nil); err != nil {
		a.logger.Error("refresh failed", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	home(w, r)
}

func (a *App) throttled(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("refresh throttled")
	home(w, r)
}

// addChannels accepts one or more names separated by whitespace or commas.
func (a *App) addChannels(w http.ResponseWriter, r *http.Request) {
	fields := strings.FieldsFunc(r.FormValue("name"), func(c rune) bool {
		return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
	})

	if added := a.tracker.Add(fields...); len(added) > 0 {
		a.logger.Info("channels added", "names", added)
	}
	home(w, r)
}

func (a *App) removeChannel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if a.tracker.Remove(name) {
		a.logger.Info("channel removed", "name", shared.NormalizeChannelName(name))
	}
	home(w, r)
}

// importNames adds every line of the uploaded file. A request without a file is a no-op.
func (a *App) importNames(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			home(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	added, err := a.tracker.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.logger.Info("channels imported", "count", len(added))
	home(w, r)
}

func home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
