// Package domaintest provides in-memory implementations of the domain
// repositories, with the same constraints the postgres schema enforces.
package domaintest

import (
	"context"
	"sync"
	"time"

	"gitlab.com/ranfdev/dailyreport/internal/domain"
)

type employeeRow struct {
	domain.Employee
	passwdHash []byte
}

type sessionRow struct {
	employeeCode string
	expiresAt    time.Time
}

type Store struct {
	mu        sync.Mutex
	employees map[string]employeeRow
	reports   []domain.Report
	sessions  map[string]sessionRow
	nextID    int64
}

func NewStore() *Store {
	return &Store{
		employees: map[string]employeeRow{},
		sessions:  map[string]sessionRow{},
		nextID:    1,
	}
}

func (s *Store) Reports() domain.ReportRepo {
	return &reportRepo{store: s}
}
func (s *Store) Employees() domain.EmployeeRepo {
	return &employeeRepo{store: s}
}
func (s *Store) Sessions() domain.SessionRepo {
	return &sessionRepo{store: s}
}

// AddEmployee registers an employee without a password.
func (s *Store) AddEmployee(code, name string, role domain.Role) domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := domain.Employee{Code: code, Name: name, Role: role}
	s.employees[code] = employeeRow{Employee: e}
	return e
}

// RemoveEmployee sets the delete flag on the employee.
func (s *Store) RemoveEmployee(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.employees[code]
	row.DeleteFlg = true
	s.employees[code] = row
}

// SoftDeleteReport sets the delete flag on a report row, the way other
// parts of the system retire records.
func (s *Store) SoftDeleteReport(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reports {
		if s.reports[i].ID == id {
			s.reports[i].DeleteFlg = true
		}
	}
}

// Count returns the number of report rows, deleted ones included.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

type reportRepo struct {
	store *Store
	inTx  bool
}

func (r *reportRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *reportRepo) ExecTx(ctx context.Context, fn func(ctx context.Context, tx domain.ReportRepo) error) error {
	if r.inTx {
		return fn(ctx, r)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := make([]domain.Report, len(r.store.reports))
	copy(snapshot, r.store.reports)
	nextID := r.store.nextID

	err := fn(ctx, &reportRepo{store: r.store, inTx: true})
	if err != nil {
		r.store.reports = snapshot
		r.store.nextID = nextID
	}
	return err
}

func (r *reportRepo) activeEmployee(code string) (employeeRow, bool) {
	e, ok := r.store.employees[code]
	if !ok || e.DeleteFlg {
		return e, false
	}
	return e, true
}

func (r *reportRepo) LockEmployee(ctx context.Context, employeeCode string) error {
	defer r.lock()()
	if _, ok := r.activeEmployee(employeeCode); !ok {
		return domain.ErrIntegrity
	}
	return nil
}

// conflicts mirrors the partial unique index on (employee_code, report_date).
func (r *reportRepo) conflicts(report *domain.Report) bool {
	for _, other := range r.store.reports {
		if other.DeleteFlg || other.ID == report.ID {
			continue
		}
		if other.EmployeeCode == report.EmployeeCode && domain.SameDate(other.ReportDate, report.ReportDate) {
			return true
		}
	}
	return false
}

func (r *reportRepo) Create(ctx context.Context, report *domain.Report) error {
	defer r.lock()()
	e, ok := r.activeEmployee(report.EmployeeCode)
	if !ok {
		return domain.ErrIntegrity
	}
	report.ID = 0
	if r.conflicts(report) {
		return domain.ErrDateDuplicate
	}
	report.ID = r.store.nextID
	r.store.nextID++
	report.EmployeeName = e.Name
	r.store.reports = append(r.store.reports, *report)
	return nil
}

func (r *reportRepo) Update(ctx context.Context, report *domain.Report) error {
	defer r.lock()()
	e, ok := r.activeEmployee(report.EmployeeCode)
	if !ok {
		return domain.ErrIntegrity
	}
	if r.conflicts(report) {
		return domain.ErrDateDuplicate
	}
	for i := range r.store.reports {
		if r.store.reports[i].ID == report.ID && !r.store.reports[i].DeleteFlg {
			report.EmployeeName = e.Name
			r.store.reports[i] = *report
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *reportRepo) Delete(ctx context.Context, id int64) error {
	defer r.lock()()
	for i := range r.store.reports {
		if r.store.reports[i].ID == id {
			r.store.reports = append(r.store.reports[:i:i], r.store.reports[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *reportRepo) FindByID(ctx context.Context, id int64) (*domain.Report, error) {
	defer r.lock()()
	for _, report := range r.store.reports {
		if report.ID == id && !report.DeleteFlg {
			found := report
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *reportRepo) FindAll(ctx context.Context) ([]domain.Report, error) {
	defer r.lock()()
	res := []domain.Report{}
	for _, report := range r.store.reports {
		if !report.DeleteFlg {
			res = append(res, report)
		}
	}
	return res, nil
}

func (r *reportRepo) FindByEmployee(ctx context.Context, employeeCode string) ([]domain.Report, error) {
	defer r.lock()()
	res := []domain.Report{}
	for _, report := range r.store.reports {
		if !report.DeleteFlg && report.EmployeeCode == employeeCode {
			res = append(res, report)
		}
	}
	return res, nil
}

type employeeRepo struct {
	store *Store
}

func (r *employeeRepo) Create(ctx context.Context, employee *domain.Employee, passwdHash []byte) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.employees[employee.Code]; ok {
		return domain.ErrIntegrity
	}
	r.store.employees[employee.Code] = employeeRow{Employee: *employee, passwdHash: passwdHash}
	return nil
}

func (r *employeeRepo) FindByCode(ctx context.Context, code string) (*domain.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.employees[code]
	if !ok || row.DeleteFlg {
		return nil, domain.ErrNotFound
	}
	e := row.Employee
	return &e, nil
}

func (r *employeeRepo) ReadPasswdHash(ctx context.Context, code string) ([]byte, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.employees[code]
	if !ok || row.DeleteFlg || row.passwdHash == nil {
		return nil, domain.ErrNotFound
	}
	return row.passwdHash, nil
}

type sessionRepo struct {
	store *Store
}

func (r *sessionRepo) Create(ctx context.Context, token string, employeeCode string, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.employees[employeeCode]; !ok {
		return domain.ErrIntegrity
	}
	r.store.sessions[token] = sessionRow{employeeCode, expiresAt}
	return nil
}

func (r *sessionRepo) FindEmployee(ctx context.Context, token string, now time.Time) (*domain.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sess, ok := r.store.sessions[token]
	if !ok || !now.Before(sess.expiresAt) {
		return nil, domain.ErrNotFound
	}
	row, ok := r.store.employees[sess.employeeCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e := row.Employee
	return &e, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, token)
	return nil
}
