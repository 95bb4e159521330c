package orchestrators_test

import (
	"context"
	"testing"

	bookingStore "gymdesk/internal/adapters/storage/booking"
	categoryStore "gymdesk/internal/adapters/storage/category"
	lessonStore "gymdesk/internal/adapters/storage/lesson"
	sStore "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/adapters/storage/table"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/student"
)

type stores struct {
	lessons    *lessonStore.CSVStore
	students   *sStore.CSVStore
	bookings   *bookingStore.CSVStore
	categories *categoryStore.CSVStore
}

func newStores(t *testing.T) stores {
	t.Helper()
	files := table.NewFiles(t.TempDir())
	err := files.EnsureFiles(lessonStore.Schema, sStore.Schema, bookingStore.Schema, categoryStore.Schema)
	if err != nil {
		t.Fatal(err)
	}
	return stores{
		lessons:    lessonStore.NewCSVStore(files),
		students:   sStore.NewCSVStore(files),
		bookings:   bookingStore.NewCSVStore(files),
		categories: categoryStore.NewCSVStore(files),
	}
}

// TestFlow_SubmitApprove runs the booking intake end to end over the real
// flat-file stores: submit a request, approve it, and see both the approved
// status and the created lesson.
func TestFlow_SubmitApprove(t *testing.T) {
	ctx := context.Background()
	st := newStores(t)

	result, err := orchestrators.ExecuteSubmitRequest(ctx,
		orchestrators.SubmitRequestInput{
			TargetDate: "2025-03-01", Time: "10:00", Requester: "Amy", Note: "trial",
		},
		orchestrators.SubmitRequestDeps{BookingStore: st.bookings})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	err = orchestrators.ExecuteApproveRequest(ctx,
		orchestrators.ApproveRequestInput{RequestID: result.Request.ID, Category: "MA Physique"},
		orchestrators.ApproveRequestDeps{BookingStore: st.bookings, LessonStore: st.lessons})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	got, err := st.bookings.GetByID(ctx, result.Request.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != booking.StatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}

	day, err := projections.QueryGetDaySchedule(ctx,
		projections.GetDayScheduleQuery{Date: "2025-03-01"},
		projections.GetDayScheduleDeps{LessonStore: st.lessons})
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Lessons) != 1 {
		t.Fatalf("lessons on target date = %d, want 1", len(day.Lessons))
	}
	l := day.Lessons[0]
	if l.Time != "10:00" || l.Student != "Amy" || l.Category != "MA Physique" {
		t.Errorf("lesson = %+v", l)
	}
}

// TestFlow_Credits runs the credit ledger end to end: buy 10, take 3,
// 7 remain.
func TestFlow_Credits(t *testing.T) {
	ctx := context.Background()
	st := newStores(t)

	err := orchestrators.ExecuteUpdateRoster(ctx,
		orchestrators.UpdateRosterInput{Rows: []orchestrators.RosterRow{
			{Name: "Amy", Purchased: "10"},
		}},
		orchestrators.UpdateRosterDeps{StudentStore: st.students})
	if err != nil {
		t.Fatal(err)
	}

	deps := orchestrators.AddLessonDeps{
		LessonStore:   st.lessons,
		StudentStore:  st.students,
		CategoryStore: st.categories,
	}
	for _, day := range []string{"2025-03-01", "2025-03-08", "2025-03-15"} {
		err := orchestrators.ExecuteAddLesson(ctx, orchestrators.AddLessonInput{
			Date: day, Time: "10:00", Student: "Amy", Category: "MA Physique",
		}, deps)
		if err != nil {
			t.Fatalf("add %s: %v", day, err)
		}
	}

	got, err := projections.QueryGetCredits(ctx,
		projections.GetCreditsQuery{StudentName: "Amy"},
		projections.GetCreditsDeps{StudentStore: st.students, LessonStore: st.lessons})
	if err != nil {
		t.Fatal(err)
	}
	want := student.Credits{Purchased: 10, Used: 3, Remaining: 7}
	if got != want {
		t.Errorf("credits = %+v, want %+v", got, want)
	}
}

// TestFlow_BoundCategoryLock runs the category lock end to end against the
// seeded registry.
func TestFlow_BoundCategoryLock(t *testing.T) {
	ctx := context.Background()
	st := newStores(t)

	err := orchestrators.ExecuteUpdateRoster(ctx,
		orchestrators.UpdateRosterInput{Rows: []orchestrators.RosterRow{
			{Name: "Amy", Purchased: "10", BoundCategory: "MA Physique"},
		}},
		orchestrators.UpdateRosterDeps{StudentStore: st.students})
	if err != nil {
		t.Fatal(err)
	}

	deps := projections.GetAllowedCategoriesDeps{
		StudentStore:  st.students,
		CategoryStore: st.categories,
		LessonStore:   st.lessons,
	}

	amy, err := projections.QueryAllowedCategories(ctx,
		projections.GetAllowedCategoriesQuery{StudentName: "Amy"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(amy) != 1 || amy[0] != "MA Physique" {
		t.Errorf("allowed for Amy = %v, want locked to MA Physique", amy)
	}

	unknown, err := projections.QueryAllowedCategories(ctx,
		projections.GetAllowedCategoriesQuery{StudentName: "Unknown"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if len(unknown) != 2 {
		t.Errorf("allowed for unknown = %v, want the seeded registry", unknown)
	}
}
