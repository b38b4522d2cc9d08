package adapters

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
)

type reportRepo struct {
	db DBTX
}

func NewReportRepo(db DBTX) domain.ReportRepo {
	return &reportRepo{db}
}

var selectReport = psql.
	Select(
		"reports.id",
		"reports.report_date",
		"reports.title",
		"reports.content",
		"reports.employee_code",
		"employees.name AS employee_name",
		"reports.delete_flg",
		"reports.created_at",
		"reports.updated_at",
	).
	From("reports").
	Join("employees ON employees.code = reports.employee_code")

func (r *reportRepo) ExecTx(ctx context.Context, fn func(ctx context.Context, tx domain.ReportRepo) error) error {
	return execTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &reportRepo{tx})
	})
}

func (r *reportRepo) LockEmployee(ctx context.Context, employeeCode string) error {
	sql, args, _ := psql.
		Select("delete_flg").
		From("employees").
		Where(sq.Eq{"code": employeeCode}).
		Suffix("FOR UPDATE").
		ToSql()

	deleted := false
	err := r.db.QueryRow(ctx, sql, args...).Scan(&deleted)
	if err = mapErr(err); err == domain.ErrNotFound || deleted {
		return domain.ErrIntegrity
	}
	return err
}

func (r *reportRepo) Create(ctx context.Context, report *domain.Report) error {
	sql, args, _ := psql.
		Insert("reports").
		Columns("report_date", "title", "content", "employee_code", "delete_flg", "created_at", "updated_at").
		Values(report.ReportDate, report.Title, report.Content, report.EmployeeCode, report.DeleteFlg, report.CreatedAt, report.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()

	err := r.db.QueryRow(ctx, sql, args...).Scan(&report.ID)
	return mapErr(err)
}

func (r *reportRepo) Update(ctx context.Context, report *domain.Report) error {
	sql, args, _ := psql.
		Update("reports").
		SetMap(map[string]interface{}{
			"report_date":   report.ReportDate,
			"title":         report.Title,
			"content":       report.Content,
			"employee_code": report.EmployeeCode,
			"delete_flg":    report.DeleteFlg,
			"created_at":    report.CreatedAt,
			"updated_at":    report.UpdatedAt,
		}).
		Where(sq.Eq{"id": report.ID}).
		ToSql()

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepo) Delete(ctx context.Context, id int64) error {
	sql, args, _ := psql.Delete("reports").Where(sq.Eq{"id": id}).ToSql()
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reportRepo) FindByID(ctx context.Context, id int64) (*domain.Report, error) {
	sql, args, _ := selectReport.
		Where(sq.Eq{"reports.id": id, "reports.delete_flg": false}).
		ToSql()

	report := &domain.Report{}
	err := pgxscan.Get(ctx, r.db, report, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	return report, nil
}

func (r *reportRepo) FindAll(ctx context.Context) ([]domain.Report, error) {
	return r.selectReports(ctx, sq.Eq{"reports.delete_flg": false})
}

func (r *reportRepo) FindByEmployee(ctx context.Context, employeeCode string) ([]domain.Report, error) {
	return r.selectReports(ctx, sq.Eq{
		"reports.delete_flg":    false,
		"reports.employee_code": employeeCode,
	})
}

func (r *reportRepo) selectReports(ctx context.Context, where sq.Eq) ([]domain.Report, error) {
	sql, args, _ := selectReport.
		Where(where).
		OrderBy("reports.id").
		ToSql()

	reports := []domain.Report{}
	err := pgxscan.Select(ctx, r.db, &reports, sql, args...)
	if err != nil {
		return nil, err
	}
	return reports, nil
}
