package render

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"gitlab.com/ranfdev/dailyreport/internal/models"
	"gitlab.com/ranfdev/dailyreport/internal/utils"
)

const templatesGlob = "templates/*.html"

type Templates struct {
	templates *template.Template
	envConfig *models.EnvConfig
	log       zerolog.Logger
}

func (tmpls *Templates) RenderHTML(w http.ResponseWriter, tmplName string, data interface{}) {
	tmpls.RenderHTMLStatus(w, http.StatusOK, tmplName, data)
}

func (tmpls *Templates) RenderHTMLStatus(w http.ResponseWriter, status int, tmplName string, data interface{}) {
	// Reload templates every time when developing locally.
	if tmpls.envConfig.Debug {
		if err := tmpls.load(os.DirFS("web")); err != nil {
			tmpls.log.Warn().Err(err).Msg("Reloading templates")
		}
	}
	buff := bytes.NewBuffer([]byte{})
	err := tmpls.templates.ExecuteTemplate(buff, tmplName, data)
	if err != nil && tmplName != "error" {
		tmpls.log.Error().Err(err).Str("template", tmplName).Msg("Rendering template")
		tmpls.RenderHTMLStatus(w, http.StatusInternalServerError, "error", struct {
			Status  int
			Message string
		}{http.StatusInternalServerError, "Internal server error"})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buff.Bytes())
}

func markdown(s string) template.HTML {
	var b bytes.Buffer
	goldmark.Convert([]byte(s), &b)
	return template.HTML(b.String())
}
func markdownPreview(s string) template.HTML {
	i := strings.Index(s, "\n")
	maxLen := len(s)
	if 120 < maxLen {
		maxLen = 120
	}
	if i < 0 || i > maxLen {
		i = maxLen
	}
	// Don't cut a multi-byte rune in half
	for i > 0 && i < len(s) && !utf8Start(s[i]) {
		i--
	}
	return markdown(s[0:i])
}
func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}
func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func (tmpls *Templates) load(fsys fs.FS) error {
	t, err := template.New("").Funcs(template.FuncMap{
		"markdown":        markdown,
		"markdownPreview": markdownPreview,
		"formatDate":      utils.FormatDate,
		"formatTime":      formatTime,
	}).ParseFS(fsys, templatesGlob)
	if err != nil {
		return err
	}
	tmpls.templates = t
	return nil
}

func GetTemplates(envConfig *models.EnvConfig, fsys fs.FS, log zerolog.Logger) (*Templates, error) {
	tmpls := &Templates{envConfig: envConfig, log: log}
	if err := tmpls.load(fsys); err != nil {
		return nil, err
	}
	return tmpls, nil
}
