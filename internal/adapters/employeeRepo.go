package adapters

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
)

type employeeRepo struct {
	db DBTX
}

func NewEmployeeRepo(db DBTX) domain.EmployeeRepo {
	return &employeeRepo{db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *domain.Employee, passwdHash []byte) error {
	sql, args, _ := psql.
		Insert("employees").
		Columns("code", "name", "role", "passwd_hash", "delete_flg", "created_at", "updated_at").
		Values(employee.Code, employee.Name, string(employee.Role), passwdHash, false, employee.CreatedAt, employee.UpdatedAt).
		ToSql()

	_, err := r.db.Exec(ctx, sql, args...)
	return mapErr(err)
}

func (r *employeeRepo) FindByCode(ctx context.Context, code string) (*domain.Employee, error) {
	sql, args, _ := psql.
		Select("code", "name", "role", "delete_flg", "created_at", "updated_at").
		From("employees").
		Where(sq.Eq{"code": code, "delete_flg": false}).
		ToSql()

	employee := &domain.Employee{}
	err := pgxscan.Get(ctx, r.db, employee, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	return employee, nil
}

func (r *employeeRepo) ReadPasswdHash(ctx context.Context, code string) ([]byte, error) {
	sql, args, _ := psql.
		Select("passwd_hash").
		From("employees").
		Where(sq.Eq{"code": code, "delete_flg": false}).
		ToSql()

	var hash []byte
	err := r.db.QueryRow(ctx, sql, args...).Scan(&hash)
	if err != nil {
		return nil, mapErr(err)
	}
	return hash, nil
}
