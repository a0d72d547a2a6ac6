package habits

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/stats"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, Out: out}
	if err := ctx.Prepare("tester", "UTC"); err != nil {
		t.Fatalf("failed to prepare context: %v", err)
	}
	return ctx, out
}

func addHabit(t *testing.T, ctx *cli.Context, cmd HabitAddCmd) models.Habit {
	t.Helper()
	if cmd.Type == "" {
		cmd.Type = "daily"
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add %q failed: %v", cmd.Name, err)
	}
	habit, err := ctx.Store.GetHabitByName(ctx.UserID, cmd.Name)
	if err != nil {
		t.Fatalf("GetHabitByName(%q) failed: %v", cmd.Name, err)
	}
	return habit
}

func TestHabitAdd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     HabitAddCmd
		want    string
		wantErr bool
	}{
		{"daily", HabitAddCmd{Name: "Read"}, "every day", false},
		{"weekly", HabitAddCmd{Name: "Gym", Type: "weekly", Days: "fri,mon"}, "weekly on mon,fri", false},
		{"one-off", HabitAddCmd{Name: "Dentist", Type: "date", Date: "2024-06-15"}, "on jun 15, 2024", false},
		{"weekly without days", HabitAddCmd{Name: "Swim", Type: "weekly"}, "", true},
		{"bad date", HabitAddCmd{Name: "Trip", Type: "date", Date: "15/06/2024"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			cmd := tt.cmd
			if cmd.Type == "" {
				cmd.Type = "daily"
			}
			err := cmd.Run(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("add failed: %v", err)
			}
			if !strings.Contains(out.String(), "Added habit: "+cmd.Name) {
				t.Errorf("unexpected output: %q", out.String())
			}
			if !strings.Contains(strings.ToLower(out.String()), tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, out.String())
			}
		})
	}
}

func TestHabitAdd_DuplicateName(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	err := (&HabitAddCmd{Name: "Read", Type: "daily"}).Run(ctx)
	if !errors.Is(err, tracker.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestHabitList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("expected empty message, got %q", out.String())
	}

	addHabit(t, ctx, HabitAddCmd{Name: "Read", Category: "mind"})
	walk := addHabit(t, ctx, HabitAddCmd{Name: "Walk"})
	if err := ctx.Tracker.DeleteHabit(ctx.UserID, walk.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Read [mind]") || strings.Contains(out.String(), "Walk") {
		t.Errorf("unexpected active list: %q", out.String())
	}

	out.Reset()
	if err := (&HabitListCmd{Deleted: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Walk [DELETED]") {
		t.Errorf("expected deleted habit in list: %q", out.String())
	}
}

func TestHabitEdit(t *testing.T) {
	ctx, out := setupTestContext(t)
	habit := addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	name, kind, days := "Read more", "weekly", "sat,sun"
	cmd := &HabitEditCmd{Habit: "Read", Name: &name, Type: &kind, Days: &days}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, err := ctx.Store.GetHabit(ctx.UserID, habit.ID)
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != "Read more" {
		t.Errorf("expected renamed habit, got %q", got.Name)
	}
	w, ok := got.Recurrence.(models.WeeklyOn)
	if !ok || strings.Join(w.Days, ",") != "sunday,saturday" {
		t.Errorf("unexpected recurrence %#v", got.Recurrence)
	}

	out.Reset()
	if err := (&HabitEditCmd{Habit: habit.ID}).Run(ctx); err != nil {
		t.Fatalf("edit without flags failed: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHabitDeleteAndRestore(t *testing.T) {
	ctx, out := setupTestContext(t)
	habit := addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	if err := (&HabitDeleteCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !strings.Contains(out.String(), "habitual habit restore "+habit.ID) {
		t.Errorf("expected restore hint, got %q", out.String())
	}
	if _, err := ctx.Store.GetHabitByName(ctx.UserID, "Read"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected deleted habit to be hidden, got %v", err)
	}

	if err := (&HabitRestoreCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("restore by name failed: %v", err)
	}
	got, err := ctx.Store.GetHabit(ctx.UserID, habit.ID)
	if err != nil || !got.Active {
		t.Fatalf("expected restored habit, got %+v (%v)", got, err)
	}

	if err := (&HabitRestoreCmd{Habit: habit.ID}).Run(ctx); err == nil {
		t.Error("expected error restoring an active habit")
	}
	if err := (&HabitRestoreCmd{Habit: "Nope"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTodayCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	if !strings.Contains(out.String(), "No habits due today.") {
		t.Errorf("expected empty state, got %q", out.String())
	}

	addHabit(t, ctx, HabitAddCmd{Name: "Read"})
	addHabit(t, ctx, HabitAddCmd{Name: "Walk"})
	if err := (&MarkCmd{Habit: "Read", Count: 1}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	out.Reset()
	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	for _, want := range []string{"1/2 done (50%)", "✓ Read", "○ Walk"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got %q", want, out.String())
		}
	}

	if err := (&MarkCmd{Habit: "Walk", Count: 1}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	out.Reset()
	if err := (&TodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}
	if !strings.Contains(out.String(), "All done for today!") {
		t.Errorf("expected all-done banner, got %q", out.String())
	}
}

func TestMarkCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	habit := addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	if err := (&MarkCmd{Habit: "Read", Count: 1}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current streak: 1 day") {
		t.Errorf("expected streak in output, got %q", out.String())
	}

	tomorrow := ctx.Tracker.Today().AddDays(1).String()
	if err := (&MarkCmd{Habit: "Read", Count: 1, Date: tomorrow}).Run(ctx); err == nil {
		t.Error("expected error for a future date")
	}
	if err := (&MarkCmd{Habit: "Read", Count: -2}).Run(ctx); !errors.Is(err, tracker.ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount, got %v", err)
	}

	if err := (&MarkCmd{Habit: "Read", Undo: true}).Run(ctx); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	completions, err := ctx.Store.ListCompletions(ctx.UserID, habit.ID)
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected no completions after undo, got %d", len(completions))
	}
}

func TestStatsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})
	addHabit(t, ctx, HabitAddCmd{Name: "Walk"})

	for i := 0; i < 2; i++ {
		if err := (&MarkCmd{Habit: "Read", Count: 1}).Run(ctx); err != nil {
			t.Fatalf("mark failed: %v", err)
		}
	}

	out.Reset()
	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"HABIT", "Read", "Walk", "7%"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in table, got:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := (&StatsCmd{Habit: "Read", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("stats --json failed: %v", err)
	}
	for _, want := range []string{`"name": "Read"`, `"current_streak": 1`, `"total_completions": 2`, `"completion_rate": 7`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %s in JSON, got:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), "Walk") {
		t.Errorf("expected only the selected habit, got:\n%s", out.String())
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	for _, day := range []string{"2024-06-03", "2024-06-04"} {
		if err := (&MarkCmd{Habit: "Read", Count: 1, Date: day}).Run(ctx); err != nil {
			t.Fatalf("mark %s failed: %v", day, err)
		}
	}

	out.Reset()
	if err := (&CalendarCmd{Habit: "Read", Month: "2024-06"}).Run(ctx); err != nil {
		t.Fatalf("calendar failed: %v", err)
	}
	if !strings.Contains(out.String(), "June 2024") || !strings.Contains(out.String(), "Completed 2 of 30 days") {
		t.Errorf("unexpected calendar output:\n%s", out.String())
	}

	if err := (&CalendarCmd{Habit: "Read", Month: "June"}).Run(ctx); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestRenderMonth_LeadingCells(t *testing.T) {
	// June 1 2024 is a Saturday
	cells := stats.MonthGrid(nil, 2024, time.June)
	today := calendar.New(2030, time.January, 1)

	tests := []struct {
		first  time.Weekday
		header string
		lead   int
	}{
		{time.Sunday, "  Su  Mo", 6},
		{time.Monday, "  Mo  Tu", 5},
	}
	for _, tt := range tests {
		lines := strings.Split(renderMonth(cells, tt.first, today), "\n")
		if !strings.HasPrefix(lines[0], tt.header) {
			t.Errorf("first=%s: header %q, want prefix %q", tt.first, lines[0], tt.header)
		}
		want := strings.Repeat(" ", tt.lead*cellWidth) + "  1"
		if !strings.HasPrefix(lines[1], want) {
			t.Errorf("first=%s: first week %q, want prefix %q", tt.first, lines[1], want)
		}
	}
}
