package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
	"gitlab.com/ranfdev/dailyreport/internal/utils"
)

// reportForm holds the submitted fields of the add/update forms.
// The owner is never part of it.
type reportForm struct {
	ID         int64
	ReportDate string `validate:"required,datetime=2006-01-02"`
	Title      string `validate:"required,max=100"`
	Content    string `validate:"required,max=600"`
}

func formOf(report *domain.Report) reportForm {
	return reportForm{
		ID:         report.ID,
		ReportDate: utils.FormatDate(report.ReportDate),
		Title:      report.Title,
		Content:    report.Content,
	}
}

// parseReportForm binds and validates the request form. The returned map
// is keyed by field name and is nil when every field is valid.
func (routes *Routes) parseReportForm(r *http.Request) (reportForm, map[string]string, error) {
	form := reportForm{
		ReportDate: strings.TrimSpace(r.FormValue("report_date")),
		Title:      strings.TrimSpace(r.FormValue("title")),
		Content:    strings.TrimSpace(r.FormValue("content")),
	}

	err := routes.validate.Struct(&form)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fieldErrs := map[string]string{}
		for _, fe := range validationErrs {
			fieldErrs[fe.Field()] = fieldMessage(fe)
		}
		return form, fieldErrs, nil
	}
	return form, nil, err
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please enter a value"
	case "max":
		return fmt.Sprintf("Please enter no more than %s characters", fe.Param())
	case "datetime":
		return "Please enter a valid date (YYYY-MM-DD)"
	default:
		return "Invalid value"
	}
}

func (form reportForm) toReport() (*domain.Report, error) {
	date, err := utils.ParseDate(form.ReportDate)
	if err != nil {
		return nil, err
	}
	return &domain.Report{
		ID:         form.ID,
		ReportDate: date,
		Title:      form.Title,
		Content:    form.Content,
	}, nil
}
