package routes

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
	"gitlab.com/ranfdev/dailyreport/internal/export"
)

func (routes *Routes) ReportsRouter(r chi.Router) {
	r.Use(routes.EnforcePrincipal)
	r.Get("/", routes.AppHandler(routes.GetReports))
	r.Get("/export.xlsx", routes.AppHandler(routes.GetReportsExport))
	r.Get("/add", routes.AppHandler(routes.GetNewReport))
	r.Post("/add", routes.AppHandler(routes.PostNewReport))

	specificReport := r.With(routes.ReportCtx)
	specificReport.Get("/{reportID}/", routes.AppHandler(routes.GetReportDetail))
	specificReport.Get("/{reportID}", routes.AppHandler(routes.GetReportDetail))
	specificReport.Get("/{reportID}/update", routes.AppHandler(routes.GetUpdateReport))
	specificReport.Post("/{reportID}/update", routes.AppHandler(routes.PostUpdateReport))
	specificReport.Post("/{reportID}/delete", routes.AppHandler(routes.PostDeleteReport))
}

// ReportCtx loads the report named in the url, checking that the
// principal may access it.
func (routes *Routes) ReportCtx(next http.Handler) http.Handler {
	return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) AppError {
		reportID, err := strconv.ParseInt(chi.URLParam(r, "reportID"), 10, 64)
		if err != nil {
			return &ErrNotFound{Thing: "report", Cause: err}
		}
		report, err := routes.reports.Read(r.Context(), *GetPrincipal(r), reportID)
		if err != nil {
			return toAppError(err)
		}
		ctx := context.WithValue(r.Context(), ReportCtxKey, report)
		next.ServeHTTP(w, r.WithContext(ctx))
		return nil
	})
}

type reportListPage struct {
	page
	ListSize   int
	ReportList []domain.Report
}

type reportPage struct {
	page
	Report *domain.Report
}

type reportFormPage struct {
	page
	Form        reportForm
	FieldErrors map[string]string
}

func (routes *Routes) GetReports(w http.ResponseWriter, r *http.Request) AppError {
	reports, err := routes.reports.ListFor(r.Context(), *GetPrincipal(r))
	if err != nil {
		return toAppError(err)
	}
	routes.tmpls.RenderHTML(w, "reports", reportListPage{
		page:       newPage(r),
		ListSize:   len(reports),
		ReportList: reports,
	})
	return nil
}

func (routes *Routes) GetReportsExport(w http.ResponseWriter, r *http.Request) AppError {
	reports, err := routes.reports.ListFor(r.Context(), *GetPrincipal(r))
	if err != nil {
		return toAppError(err)
	}
	var buf bytes.Buffer
	err = export.WriteReports(&buf, reports)
	if err != nil {
		return &ErrInternal{Message: "Error exporting reports", Cause: err}
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="reports.xlsx"`)
	w.Write(buf.Bytes())
	return nil
}

func (routes *Routes) GetReportDetail(w http.ResponseWriter, r *http.Request) AppError {
	routes.tmpls.RenderHTML(w, "report", reportPage{
		page:   newPage(r),
		Report: GetReport(r),
	})
	return nil
}

func (routes *Routes) GetNewReport(w http.ResponseWriter, r *http.Request) AppError {
	routes.tmpls.RenderHTML(w, "newReport", reportFormPage{page: newPage(r)})
	return nil
}

func (routes *Routes) PostNewReport(w http.ResponseWriter, r *http.Request) AppError {
	return routes.submitReport(w, r, "newReport", 0, routes.reports.Save)
}

func (routes *Routes) GetUpdateReport(w http.ResponseWriter, r *http.Request) AppError {
	routes.tmpls.RenderHTML(w, "updateReport", reportFormPage{
		page: newPage(r),
		Form: formOf(GetReport(r)),
	})
	return nil
}

func (routes *Routes) PostUpdateReport(w http.ResponseWriter, r *http.Request) AppError {
	return routes.submitReport(w, r, "updateReport", GetReport(r).ID, routes.reports.Update)
}

type saveFunc func(ctx context.Context, p domain.Principal, report *domain.Report) error

// submitReport validates the form, calls save and either redirects to the
// list or renders tmplName again with the submitted values and the errors.
func (routes *Routes) submitReport(w http.ResponseWriter, r *http.Request, tmplName string, id int64, save saveFunc) AppError {
	form, fieldErrs, err := routes.parseReportForm(r)
	if err != nil {
		return &ErrBadRequest{Cause: err}
	}
	form.ID = id
	data := reportFormPage{page: newPage(r), Form: form}

	if fieldErrs != nil {
		data.FieldErrors = fieldErrs
		routes.tmpls.RenderHTMLStatus(w, http.StatusUnprocessableEntity, tmplName, data)
		return nil
	}

	report, err := form.toReport()
	if err != nil {
		return &ErrBadRequest{Cause: err, Motivation: "Invalid report date"}
	}
	err = save(r.Context(), *GetPrincipal(r), report)
	if domain.IsBusinessErr(err) {
		msg, _ := domain.MessageFor(err)
		data.addError(msg)
		routes.tmpls.RenderHTMLStatus(w, http.StatusConflict, tmplName, data)
		return nil
	} else if err != nil {
		return toAppError(err)
	}

	http.Redirect(w, r, "/reports", http.StatusSeeOther)
	return nil
}

func (routes *Routes) PostDeleteReport(w http.ResponseWriter, r *http.Request) AppError {
	report := GetReport(r)
	err := routes.reports.Delete(r.Context(), *GetPrincipal(r), report.ID)
	if err != nil {
		msg, ok := domain.MessageFor(err)
		if !ok {
			return toAppError(err)
		}
		data := reportPage{page: newPage(r), Report: report}
		data.addError(msg)
		routes.tmpls.RenderHTMLStatus(w, toAppError(err).Status(), "report", data)
		return nil
	}
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
	return nil
}
