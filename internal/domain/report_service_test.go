package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
	"gitlab.com/ranfdev/dailyreport/internal/domain/domaintest"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func mockReport(day string) *domain.Report {
	return &domain.Report{
		ReportDate: date(day),
		Title:      "Daily work",
		Content:    "Fixed the login page and reviewed two merge requests.",
	}
}

type fixture struct {
	store   *domaintest.Store
	service *domain.ReportService
	general domain.Principal
	other   domain.Principal
	admin   domain.Principal
}

func setup() fixture {
	store := domaintest.NewStore()
	service := domain.NewReportService(store.Reports())
	clock := &fakeClock{t: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	service.SetClock(clock.Now)

	return fixture{
		store:   store,
		service: service,
		general: domain.PrincipalOf(store.AddEmployee("A001", "Alice", domain.RoleGeneral)),
		other:   domain.PrincipalOf(store.AddEmployee("C003", "Carol", domain.RoleGeneral)),
		admin:   domain.PrincipalOf(store.AddEmployee("B002", "Bob", domain.RoleAdmin)),
	}
}

func TestSave(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	err := f.service.Save(ctx, f.general, report)
	require.NoError(err)
	require.NotZero(report.ID)
	require.Equal("A001", report.EmployeeCode)
	require.False(report.DeleteFlg)
	require.Equal(report.CreatedAt, report.UpdatedAt)

	stored, err := f.service.FindByCode(ctx, report.ID)
	require.NoError(err)
	require.Equal("Alice", stored.EmployeeName)

	// Same date again
	err = f.service.Save(ctx, f.general, mockReport("2024-01-10"))
	require.True(errors.Is(err, domain.ErrDateDuplicate))

	reports, err := f.service.FindByEmployee(ctx, "A001")
	require.NoError(err)
	require.Len(reports, 1)

	// Another employee may use the same date
	err = f.service.Save(ctx, f.other, mockReport("2024-01-10"))
	require.NoError(err)
}

func TestSaveIgnoresSubmittedOwner(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	report.EmployeeCode = "C003"
	require.NoError(f.service.Save(ctx, f.general, report))

	stored, err := f.service.FindByCode(ctx, report.ID)
	require.NoError(err)
	require.Equal("A001", stored.EmployeeCode)

	mine, _ := f.service.FindByEmployee(ctx, "C003")
	require.Empty(mine)
}

func TestSaveTruncatesTime(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	report.ReportDate = report.ReportDate.Add(15 * time.Hour)
	require.NoError(f.service.Save(ctx, f.general, report))

	err := f.service.Save(ctx, f.general, mockReport("2024-01-10"))
	require.True(errors.Is(err, domain.ErrDateDuplicate))
}

func TestSaveRemovedEmployee(t *testing.T) {
	require := require.New(t)
	f := setup()
	f.store.RemoveEmployee("A001")

	err := f.service.Save(context.Background(), f.general, mockReport("2024-01-10"))
	require.True(errors.Is(err, domain.ErrIntegrity))
	require.Zero(f.store.Count())
}

func TestUpdate(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	require.NoError(f.service.Save(ctx, f.general, report))
	createdAt := report.CreatedAt

	// Same date, new content: must not collide with itself
	edit := &domain.Report{
		ID:           report.ID,
		ReportDate:   date("2024-01-10"),
		Title:        "Daily work (edited)",
		Content:      "Only the content changed.",
		EmployeeCode: "C003",
		CreatedAt:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(f.service.Update(ctx, f.general, edit))

	stored, err := f.service.FindByCode(ctx, report.ID)
	require.NoError(err)
	require.Equal("A001", stored.EmployeeCode)
	require.Equal(createdAt, stored.CreatedAt)
	require.True(stored.UpdatedAt.After(createdAt))
	require.Equal("Only the content changed.", stored.Content)
	require.Equal("Daily work (edited)", stored.Title)
}

func TestUpdateDuplicateDate(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	first := mockReport("2024-01-10")
	require.NoError(f.service.Save(ctx, f.general, first))
	second := mockReport("2024-01-11")
	require.NoError(f.service.Save(ctx, f.general, second))

	edit := mockReport("2024-01-11")
	edit.ID = first.ID
	edit.Content = "moved"
	err := f.service.Update(ctx, f.general, edit)
	require.True(errors.Is(err, domain.ErrDateDuplicate))

	stored, err := f.service.FindByCode(ctx, first.ID)
	require.NoError(err)
	require.True(stored.ReportDate.Equal(date("2024-01-10")))
	require.Equal(first.Content, stored.Content)
	require.Equal(first.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateAccess(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	require.NoError(f.service.Save(ctx, f.general, report))

	edit := mockReport("2024-01-12")
	edit.ID = report.ID
	err := f.service.Update(ctx, f.other, edit)
	require.True(errors.Is(err, domain.ErrPermDenied))

	// Admins may edit, ownership stays with the author
	require.NoError(f.service.Update(ctx, f.admin, edit))
	stored, err := f.service.FindByCode(ctx, report.ID)
	require.NoError(err)
	require.Equal("A001", stored.EmployeeCode)
	require.True(stored.ReportDate.Equal(date("2024-01-12")))
}

func TestUpdateMissing(t *testing.T) {
	f := setup()
	edit := mockReport("2024-01-10")
	edit.ID = 42
	err := f.service.Update(context.Background(), f.general, edit)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	require.NoError(f.service.Save(ctx, f.general, report))
	require.NoError(f.service.Save(ctx, f.general, mockReport("2024-01-11")))

	err := f.service.Delete(ctx, f.other, report.ID)
	require.True(errors.Is(err, domain.ErrPermDenied))

	require.NoError(f.service.Delete(ctx, f.general, report.ID))
	_, err = f.service.FindByCode(ctx, report.ID)
	require.True(errors.Is(err, domain.ErrNotFound))

	reports, err := f.service.FindByEmployee(ctx, "A001")
	require.NoError(err)
	require.Len(reports, 1)

	err = f.service.Delete(ctx, f.general, report.ID)
	require.True(errors.Is(err, domain.ErrNotFound))

	// The date is free again
	require.NoError(f.service.Save(ctx, f.general, mockReport("2024-01-10")))
}

func TestFindByCodeHidesDeleted(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	require.NoError(f.service.Save(ctx, f.general, report))
	f.store.SoftDeleteReport(report.ID)

	_, err := f.service.FindByCode(ctx, report.ID)
	require.True(errors.Is(err, domain.ErrNotFound))

	// Soft deleted rows don't block the date
	require.NoError(f.service.Save(ctx, f.general, mockReport("2024-01-10")))
}

func TestListFor(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	require.NoError(f.service.Save(ctx, f.general, mockReport("2024-01-10")))
	require.NoError(f.service.Save(ctx, f.general, mockReport("2024-01-11")))
	require.NoError(f.service.Save(ctx, f.other, mockReport("2024-01-10")))
	require.NoError(f.service.Save(ctx, f.admin, mockReport("2024-01-09")))

	mine, err := f.service.ListFor(ctx, f.general)
	require.NoError(err)
	require.Len(mine, 2)
	for _, r := range mine {
		require.Equal("A001", r.EmployeeCode)
	}

	all, err := f.service.ListFor(ctx, f.admin)
	require.NoError(err)
	require.Len(all, 4)
	ids := map[int64]bool{}
	for _, r := range all {
		ids[r.ID] = true
	}
	for _, r := range mine {
		require.True(ids[r.ID])
	}

	// Insertion order
	require.True(all[0].ReportDate.Equal(date("2024-01-10")))
	require.Equal("B002", all[3].EmployeeCode)

	_, err = f.service.ListFor(ctx, domain.Principal{EmployeeCode: "X", Role: "GUEST"})
	require.True(errors.Is(err, domain.ErrPermDenied))
}

func TestRead(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	report := mockReport("2024-01-10")
	require.NoError(f.service.Save(ctx, f.general, report))

	_, err := f.service.Read(ctx, f.general, report.ID)
	require.NoError(err)
	_, err = f.service.Read(ctx, f.admin, report.ID)
	require.NoError(err)
	_, err = f.service.Read(ctx, f.other, report.ID)
	require.True(errors.Is(err, domain.ErrPermDenied))
	_, err = f.service.Read(ctx, f.general, report.ID+100)
	require.True(errors.Is(err, domain.ErrNotFound))
}

func TestConcurrentSaveSameDate(t *testing.T) {
	require := require.New(t)
	f := setup()
	ctx := context.Background()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			errs <- f.service.Save(ctx, f.general, mockReport("2024-02-01"))
		}()
	}
	ok := 0
	for i := 0; i < n; i++ {
		err := <-errs
		if err == nil {
			ok++
			continue
		}
		require.True(errors.Is(err, domain.ErrDateDuplicate))
	}
	require.Equal(1, ok)
	require.Equal(1, f.store.Count())
}

func TestMessageFor(t *testing.T) {
	require := require.New(t)

	msg, ok := domain.MessageFor(errors.New("wrapped: " + domain.ErrDateDuplicate.Error()))
	require.False(ok)
	require.Empty(msg.Name)

	msg, ok = domain.MessageFor(wrap(domain.ErrDateDuplicate))
	require.True(ok)
	require.Equal("reportDateError", msg.Name)

	msg, ok = domain.MessageFor(wrap(domain.ErrIntegrity))
	require.True(ok)
	require.Equal("duplicateError", msg.Name)

	require.True(domain.IsBusinessErr(wrap(domain.ErrIntegrity)))
	require.False(domain.IsBusinessErr(wrap(domain.ErrNotFound)))
}

func wrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
