package adapters

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
)

type sessionRepo struct {
	db DBTX
}

func NewSessionRepo(db DBTX) domain.SessionRepo {
	return &sessionRepo{db}
}

func (r *sessionRepo) Create(ctx context.Context, token string, employeeCode string, expiresAt time.Time) error {
	sql, args, _ := psql.
		Insert("sessions").
		Columns("token", "employee_code", "expires_at").
		Values(token, employeeCode, expiresAt).
		ToSql()

	_, err := r.db.Exec(ctx, sql, args...)
	return mapErr(err)
}

func (r *sessionRepo) FindEmployee(ctx context.Context, token string, now time.Time) (*domain.Employee, error) {
	sql, args, _ := psql.
		Select(
			"employees.code",
			"employees.name",
			"employees.role",
			"employees.delete_flg",
			"employees.created_at",
			"employees.updated_at",
		).
		From("sessions").
		Join("employees ON employees.code = sessions.employee_code").
		Where(sq.Eq{"sessions.token": token}).
		Where(sq.Gt{"sessions.expires_at": now}).
		ToSql()

	employee := &domain.Employee{}
	err := pgxscan.Get(ctx, r.db, employee, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	return employee, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	sql, args, _ := psql.Delete("sessions").Where(sq.Eq{"token": token}).ToSql()
	_, err := r.db.Exec(ctx, sql, args...)
	return err
}
