package domain

import (
	"context"
	"time"
)

type ReportRepo interface {
	// ExecTx runs fn inside one transaction. fn must use tx, not the receiver.
	ExecTx(ctx context.Context, fn func(ctx context.Context, tx ReportRepo) error) error
	// LockEmployee takes a row lock on the employee until the transaction ends.
	// A missing or soft-deleted employee yields ErrIntegrity.
	LockEmployee(ctx context.Context, employeeCode string) error
	Create(ctx context.Context, report *Report) error
	Update(ctx context.Context, report *Report) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Report, error)
	FindAll(ctx context.Context) ([]Report, error)
	FindByEmployee(ctx context.Context, employeeCode string) ([]Report, error)
}

type EmployeeRepo interface {
	Create(ctx context.Context, employee *Employee, passwdHash []byte) error
	FindByCode(ctx context.Context, code string) (*Employee, error)
	ReadPasswdHash(ctx context.Context, code string) ([]byte, error)
}

type SessionRepo interface {
	Create(ctx context.Context, token string, employeeCode string, expiresAt time.Time) error
	FindEmployee(ctx context.Context, token string, now time.Time) (*Employee, error)
	Delete(ctx context.Context, token string) error
}
