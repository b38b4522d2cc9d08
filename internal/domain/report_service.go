package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type ReportService struct {
	repo ReportRepo
	now  func() time.Time
}

func NewReportService(repo ReportRepo) *ReportService {
	return &ReportService{
		repo: repo,
		now:  time.Now,
	}
}

// SetClock replaces the time source used for created-at/updated-at.
func (s *ReportService) SetClock(now func() time.Time) {
	s.now = now
}

// Save creates report on behalf of p. The owner always comes from p,
// whatever the caller put in report.EmployeeCode.
func (s *ReportService) Save(ctx context.Context, p Principal, report *Report) error {
	report.EmployeeCode = p.EmployeeCode
	report.ReportDate = DateOf(report.ReportDate)

	err := s.repo.ExecTx(ctx, func(ctx context.Context, tx ReportRepo) error {
		err := tx.LockEmployee(ctx, report.EmployeeCode)
		if err != nil {
			return err
		}
		err = checkDate(ctx, tx, report.EmployeeCode, report.ReportDate, 0)
		if err != nil {
			return err
		}

		now := s.now()
		report.DeleteFlg = false
		report.CreatedAt = now
		report.UpdatedAt = now
		return tx.Create(ctx, report)
	})
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	zerolog.Ctx(ctx).Debug().
		Int64("report_id", report.ID).
		Str("employee", report.EmployeeCode).
		Msg("Report created")
	return nil
}

// Update overwrites date, title and content of the stored report with the same ID.
// Owner and created-at are carried over from the stored row.
func (s *ReportService) Update(ctx context.Context, p Principal, report *Report) error {
	report.ReportDate = DateOf(report.ReportDate)

	err := s.repo.ExecTx(ctx, func(ctx context.Context, tx ReportRepo) error {
		stored, err := tx.FindByID(ctx, report.ID)
		if err != nil {
			return err
		}
		if !p.CanAccess(stored.EmployeeCode) {
			return ErrPermDenied
		}
		err = tx.LockEmployee(ctx, stored.EmployeeCode)
		if err != nil {
			return err
		}
		err = checkDate(ctx, tx, stored.EmployeeCode, report.ReportDate, report.ID)
		if err != nil {
			return err
		}

		report.EmployeeCode = stored.EmployeeCode
		report.EmployeeName = stored.EmployeeName
		report.CreatedAt = stored.CreatedAt
		report.DeleteFlg = false
		report.UpdatedAt = s.now()
		if report.UpdatedAt.Before(report.CreatedAt) {
			report.UpdatedAt = report.CreatedAt
		}
		return tx.Update(ctx, report)
	})
	if err != nil {
		return fmt.Errorf("updating report %d: %w", report.ID, err)
	}
	zerolog.Ctx(ctx).Debug().
		Int64("report_id", report.ID).
		Str("employee", report.EmployeeCode).
		Msg("Report updated")
	return nil
}

// Delete removes the report row. A missing report yields ErrNotFound.
func (s *ReportService) Delete(ctx context.Context, p Principal, id int64) error {
	err := s.repo.ExecTx(ctx, func(ctx context.Context, tx ReportRepo) error {
		stored, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.CanAccess(stored.EmployeeCode) {
			return ErrPermDenied
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting report %d: %w", id, err)
	}
	zerolog.Ctx(ctx).Debug().Int64("report_id", id).Msg("Report deleted")
	return nil
}

func (s *ReportService) FindAll(ctx context.Context) ([]Report, error) {
	return s.repo.FindAll(ctx)
}

// FindByCode returns ErrNotFound when no visible report has this id.
func (s *ReportService) FindByCode(ctx context.Context, id int64) (*Report, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReportService) FindByEmployee(ctx context.Context, employeeCode string) ([]Report, error) {
	return s.repo.FindByEmployee(ctx, employeeCode)
}

// ListFor lists the reports p is allowed to see: every report for admins,
// only their own for general employees.
func (s *ReportService) ListFor(ctx context.Context, p Principal) ([]Report, error) {
	switch p.Role {
	case RoleAdmin:
		return s.FindAll(ctx)
	case RoleGeneral:
		return s.FindByEmployee(ctx, p.EmployeeCode)
	default:
		return nil, ErrPermDenied
	}
}

// Read is FindByCode restricted to what p may access.
func (s *ReportService) Read(ctx context.Context, p Principal, id int64) (*Report, error) {
	report, err := s.FindByCode(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(report.EmployeeCode) {
		return nil, ErrPermDenied
	}
	return report, nil
}

// checkDate fails with ErrDateDuplicate if the employee already has a report
// on date, ignoring the report with id exceptID.
func checkDate(ctx context.Context, repo ReportRepo, employeeCode string, date time.Time, exceptID int64) error {
	existing, err := repo.FindByEmployee(ctx, employeeCode)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.ID == exceptID {
			continue
		}
		if SameDate(r.ReportDate, date) {
			return ErrDateDuplicate
		}
	}
	return nil
}

// IsBusinessErr reports whether err is a recoverable outcome that should be
// shown to the user instead of failing the request.
func IsBusinessErr(err error) bool {
	return errors.Is(err, ErrDateDuplicate) || errors.Is(err, ErrIntegrity)
}
