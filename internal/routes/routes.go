package routes

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
	"gitlab.com/ranfdev/dailyreport/internal/models"
	"gitlab.com/ranfdev/dailyreport/internal/render"
	"gitlab.com/ranfdev/dailyreport/web"
)

type ctxKey int

const (
	PrincipalCtxKey ctxKey = iota
	ReportCtxKey
)

const SessionCookie = "token"

type Routes struct {
	envConfig *models.EnvConfig
	tmpls     *render.Templates
	reports   *domain.ReportService
	auth      *domain.AuthService
	validate  *validator.Validate
}

func NewRouter(
	config *models.EnvConfig,
	reports *domain.ReportService,
	auth *domain.AuthService,
	log zerolog.Logger,
	tmpls *render.Templates,
) chi.Router {
	routes := &Routes{
		envConfig: config,
		tmpls:     tmpls,
		reports:   reports,
		auth:      auth,
		validate:  validator.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log))
	r.Use(requestIDLogger)
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Send()
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(routes.SessionCtx)

	// Serve static files
	staticFS, _ := fs.Sub(web.FS, "static")
	staticFileServer := http.StripPrefix("/static", http.FileServer(http.FS(staticFS)))
	r.Get("/static/*", staticFileServer.ServeHTTP)

	r.Get("/", GetHome)
	r.Get("/login", routes.AppHandler(routes.GetLogin))
	r.Post("/login", routes.AppHandler(routes.PostLogin))
	r.Post("/logout", routes.AppHandler(routes.PostLogout))
	r.Route("/reports", routes.ReportsRouter)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		routes.HandleErr(w, r, &ErrNotFound{Thing: "page", Cause: errors.New(r.URL.Path)})
	})

	return r
}

func GetHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}

func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", middleware.GetReqID(r.Context()))
		})
		next.ServeHTTP(w, r)
	})
}

// SessionCtx resolves the principal from the session cookie, if any.
func (routes *Routes) SessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		p, err := routes.auth.Principal(r.Context(), cookie.Value)
		if errors.Is(err, domain.ErrNoSession) {
			next.ServeHTTP(w, r)
			return
		} else if err != nil {
			routes.HandleErr(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalCtxKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EnforcePrincipal sends anonymous requests to the login page.
func (routes *Routes) EnforcePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetPrincipal(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetPrincipal(r *http.Request) *domain.Principal {
	p, _ := r.Context().Value(PrincipalCtxKey).(*domain.Principal)
	return p
}

func GetReport(r *http.Request) *domain.Report {
	report, _ := r.Context().Value(ReportCtxKey).(*domain.Report)
	return report
}

// page holds what every rendered view needs.
type page struct {
	LoggedInUserName string
	Errors           map[string]string
}

func newPage(r *http.Request) page {
	p := page{Errors: map[string]string{}}
	if principal := GetPrincipal(r); principal != nil {
		p.LoggedInUserName = principal.Name
	}
	return p
}

func (p *page) addError(msg domain.ErrorMessage) {
	p.Errors[msg.Name] = msg.Value
}
