package service

import (
	"context"
	"errors"
	"pokerclock/internal/cache"
	"pokerclock/internal/clock"
	"pokerclock/internal/game"
	"pokerclock/internal/model"
	"pokerclock/internal/repository/repotest"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type tableFixture struct {
	svc      *TableService
	repo     *repotest.StructureRepo
	events   *repotest.EventRepo
	bc       *fakeBroadcaster
	clk      *clock.Manual
	structID string
}

func newTableFixture(t *testing.T) *tableFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f := &tableFixture{
		repo:   repotest.NewStructureRepo(),
		events: repotest.NewEventRepo(),
		bc:     &fakeBroadcaster{},
		clk:    clock.NewManual(time.Unix(0, 0)),
	}
	f.svc = NewTableService(f.repo, f.events, cache.NewTableCache(rdb), cache.NewSnapshotCache(rdb, time.Hour), 10*time.Millisecond)
	f.svc.newClock = func() clock.Serial { return f.clk }
	f.svc.SetBroadcaster(f.bc)

	id, err := f.repo.Create(context.Background(), &model.BlindStructure{
		HostID: "host",
		Title:  "Quick",
		Levels: []model.BlindLevel{
			{Minutes: 100.0 / 60000, SmallBlind: 1, BigBlind: 2},
			{Minutes: 200.0 / 60000, SmallBlind: 2, BigBlind: 4},
		},
	})
	if err != nil {
		t.Fatalf("seed structure: %v", err)
	}
	f.structID = id
	return f
}

func (f *tableFixture) open(t *testing.T) string {
	t.Helper()
	state, err := f.svc.OpenTable(context.Background(), "host", f.structID, "")
	if err != nil {
		t.Fatalf("OpenTable failed: %v", err)
	}
	return state.Table.Code
}

// sync waits until the publisher has broadcast the table's current version.
func (f *tableFixture) sync(t *testing.T, code string) {
	t.Helper()
	snap, err := f.svc.Snapshot(context.Background(), code)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	want := snap.Version
	waitFor(t, "publisher", func() bool {
		f.bc.mu.Lock()
		defer f.bc.mu.Unlock()
		for _, m := range f.bc.messages {
			if s, ok := m.payload.(game.Snapshot); ok && m.code == code && s.Version >= want {
				return true
			}
		}
		return false
	})
}

func TestOpenTable(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	state, err := f.svc.OpenTable(ctx, "host", f.structID, "Friday")
	if err != nil {
		t.Fatalf("OpenTable failed: %v", err)
	}
	if state.Table.Code == "" || state.Table.Title != "Friday" || state.Table.Status != model.TableLive {
		t.Errorf("unexpected table: %+v", state.Table)
	}
	if state.Snapshot == nil || len(state.Snapshot.Blinds) != 2 || state.Snapshot.ActiveBlindIndex != 0 {
		t.Fatalf("unexpected snapshot: %+v", state.Snapshot)
	}
	if state.Snapshot.Running {
		t.Error("expected a new table to be paused")
	}

	tables, err := f.svc.Tables(ctx)
	if err != nil || len(tables) != 1 {
		t.Fatalf("expected one table, got %v, %v", tables, err)
	}
	if got := f.events.Types(state.Table.Code); !reflect.DeepEqual(got, []model.TableEventType{model.EventTableOpened}) {
		t.Errorf("unexpected events %v", got)
	}
}

func TestOpenTableErrors(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()

	if _, err := f.svc.OpenTable(ctx, "host", "missing", ""); !errors.Is(err, ErrStructureNotFound) {
		t.Errorf("expected ErrStructureNotFound, got %v", err)
	}
	if _, err := f.svc.OpenTable(ctx, "someone-else", f.structID, ""); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestTableRunsThroughLevels(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	code := f.open(t)

	snap, err := f.svc.Execute(ctx, code, "host", model.Command{Action: model.ActionStart})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !snap.Running {
		t.Fatal("expected clock to run after start")
	}
	f.sync(t, code)

	f.clk.Advance(100 * time.Millisecond)
	f.sync(t, code)

	snap, _ = f.svc.Snapshot(ctx, code)
	if snap.ActiveBlindIndex != 1 || !snap.Running {
		t.Fatalf("expected second level running, got index %d running %v", snap.ActiveBlindIndex, snap.Running)
	}

	f.clk.Advance(200 * time.Millisecond)
	f.sync(t, code)

	snap, _ = f.svc.Snapshot(ctx, code)
	if snap.ActiveBlindIndex != 0 || snap.Running || snap.Complete {
		t.Fatalf("expected game to reset after the last level, got %+v", snap)
	}

	if err := f.svc.Close(ctx, code, "host"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := []model.TableEventType{
		model.EventTableOpened,
		model.EventLevelStarted,
		model.EventLevelStarted,
		model.EventGameReset,
		model.EventTableClosed,
	}
	if got := f.events.Types(code); !reflect.DeepEqual(got, want) {
		t.Errorf("expected events %v, got %v", want, got)
	}

	latest, _ := f.svc.Events(ctx, code, 1)
	if len(latest) != 1 || latest[0].Type != model.EventTableClosed {
		t.Errorf("expected newest event to be table_closed, got %+v", latest)
	}
}

func TestExecuteCommands(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	code := f.open(t)

	tests := []struct {
		name    string
		cmd     model.Command
		wantErr error
		index   int
		running bool
	}{
		{name: "next", cmd: model.Command{Action: model.ActionNext}, index: 1},
		{name: "next on last", cmd: model.Command{Action: model.ActionNext}, wantErr: game.ErrNoNextBlind},
		{name: "activate first", cmd: model.Command{Action: model.ActionActivate, Level: 1}, index: 0},
		{name: "start", cmd: model.Command{Action: model.ActionStart}, index: 0, running: true},
		{name: "jump", cmd: model.Command{Action: model.ActionJump, Level: 2}, index: 1},
		{name: "end", cmd: model.Command{Action: model.ActionEnd}, index: 0},
		{name: "level out of range", cmd: model.Command{Action: model.ActionActivate, Level: 3}, wantErr: game.ErrUnknownBlind},
		{name: "unknown action", cmd: model.Command{Action: "shuffle"}, wantErr: ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := f.svc.Execute(ctx, code, "host", tt.cmd)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if snap.ActiveBlindIndex != tt.index || snap.Running != tt.running {
				t.Errorf("expected index %d running %v, got %d %v", tt.index, tt.running, snap.ActiveBlindIndex, snap.Running)
			}
		})
	}
}

func TestExecuteRequiresHost(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	code := f.open(t)

	if _, err := f.svc.Execute(ctx, code, "intruder", model.Command{Action: model.ActionStart}); !errors.Is(err, ErrNotTableHost) {
		t.Errorf("expected ErrNotTableHost, got %v", err)
	}
	if _, err := f.svc.Execute(ctx, "no-such-table", "host", model.Command{Action: model.ActionStart}); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
	if err := f.svc.Close(ctx, code, "intruder"); !errors.Is(err, ErrNotTableHost) {
		t.Errorf("expected ErrNotTableHost on close, got %v", err)
	}
}

func TestClosedTableServedFromCache(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	code := f.open(t)

	if _, err := f.svc.Execute(ctx, code, "host", model.Command{Action: model.ActionNext}); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if err := f.svc.Close(ctx, code, "host"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	state, err := f.svc.Get(ctx, code)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if state.Table.Status != model.TableClosed {
		t.Errorf("expected closed status, got %s", state.Table.Status)
	}
	if state.Snapshot == nil || state.Snapshot.ActiveBlindIndex != 1 {
		t.Errorf("expected final snapshot on level 2, got %+v", state.Snapshot)
	}

	if _, err := f.svc.Execute(ctx, code, "host", model.Command{Action: model.ActionStart}); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected closed table to reject commands, got %v", err)
	}
	if f.bc.count(MsgTableClosed) != 1 || len(f.bc.disconnected) != 1 {
		t.Errorf("expected close to be broadcast once and clients disconnected")
	}
	if _, err := f.svc.Get(ctx, "never-opened"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

// statusFailingCache is a table cache whose status writes fail.
type statusFailingCache struct {
	cache.TableCache
}

func (c statusFailingCache) SetStatus(ctx context.Context, code string, status model.TableStatus) error {
	return errors.New("redis down")
}

func TestCloseSurvivesStatusWriteFailure(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	code := f.open(t)

	f.svc.tableCache = statusFailingCache{f.svc.tableCache}

	if err := f.svc.Close(ctx, code, "host"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if f.bc.count(MsgTableClosed) != 1 || len(f.bc.disconnected) != 1 {
		t.Errorf("expected viewers to be told and disconnected, got %d closes and %v", f.bc.count(MsgTableClosed), f.bc.disconnected)
	}

	state, err := f.svc.Get(ctx, code)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if state.Table.Status != model.TableClosed {
		t.Errorf("expected table reported closed, got %s", state.Table.Status)
	}
	tables, _ := f.svc.Tables(ctx)
	if len(tables) != 1 || tables[0].Status != model.TableClosed {
		t.Errorf("expected table listed as closed, got %+v", tables)
	}
	types := f.events.Types(code)
	if len(types) == 0 || types[len(types)-1] != model.EventTableClosed {
		t.Errorf("expected table_closed to be recorded, got %v", types)
	}
}

func TestCommandAfterCloseIsRejected(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	code := f.open(t)

	// A command that looked the table up just before it was closed.
	stale := f.svc.live(code)
	if err := f.svc.Close(ctx, code, "host"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := stale.execute(model.Command{Action: model.ActionStart}); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
	if n := f.clk.Active(); n != 0 {
		t.Errorf("expected no ticking after close, got %d active tickers", n)
	}
}

func TestPurgeTable(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	live := f.open(t)
	closed := f.open(t)

	if err := f.svc.Close(ctx, closed, "host"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := f.svc.Purge(ctx, closed, "intruder"); !errors.Is(err, ErrNotTableHost) {
		t.Errorf("expected ErrNotTableHost, got %v", err)
	}

	for _, code := range []string{live, closed} {
		if err := f.svc.Purge(ctx, code, "host"); err != nil {
			t.Fatalf("Purge %s failed: %v", code, err)
		}
		if _, err := f.svc.Get(ctx, code); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected %s to be gone, got %v", code, err)
		}
		if snap, _ := f.svc.snapshots.Get(ctx, code); snap != nil {
			t.Errorf("expected snapshot of %s to be dropped", code)
		}
	}

	tables, err := f.svc.Tables(ctx)
	if err != nil || len(tables) != 0 {
		t.Errorf("expected no tables left, got %v, %v", tables, err)
	}
	if got := f.events.Types(live); len(got) == 0 {
		t.Error("expected history to survive a purge")
	}
	if err := f.svc.Purge(ctx, live, "host"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound on second purge, got %v", err)
	}
}

func TestShutdownClosesAllTables(t *testing.T) {
	f := newTableFixture(t)
	ctx := context.Background()
	a := f.open(t)
	b := f.open(t)

	f.svc.Shutdown(ctx)

	for _, code := range []string{a, b} {
		state, err := f.svc.Get(ctx, code)
		if err != nil {
			t.Fatalf("Get %s failed: %v", code, err)
		}
		if state.Table.Status != model.TableClosed {
			t.Errorf("expected %s closed, got %s", code, state.Table.Status)
		}
	}
}

func TestEventTracker(t *testing.T) {
	blinds := func(remaining ...int64) []game.BlindSnapshot {
		out := make([]game.BlindSnapshot, len(remaining))
		for i, r := range remaining {
			out[i] = game.BlindSnapshot{
				Level:      i + 1,
				SmallBlind: int64(i + 1),
				BigBlind:   int64(2 * (i + 1)),
				Timer:      game.TimerSnapshot{DurationMs: 100, RemainingMs: r},
			}
		}
		return out
	}

	initial := game.Snapshot{Blinds: blinds(100, 100)}
	tracker := newEventTracker(initial)

	steps := []struct {
		name string
		snap game.Snapshot
		want []model.TableEventType
	}{
		{"paused", initial, nil},
		{"started", game.Snapshot{Running: true, Blinds: blinds(100, 100)}, []model.TableEventType{model.EventLevelStarted}},
		{"ticking", game.Snapshot{Running: true, Blinds: blinds(50, 100)}, nil},
		{"paused mid level", game.Snapshot{Blinds: blinds(50, 100)}, nil},
		{"resumed", game.Snapshot{Running: true, Blinds: blinds(40, 100)}, nil},
		{"next level", game.Snapshot{Running: true, ActiveBlindIndex: 1, Blinds: blinds(0, 100)}, []model.TableEventType{model.EventLevelStarted}},
		{"reset", initial, []model.TableEventType{model.EventGameReset}},
		{"restarted", game.Snapshot{Running: true, Blinds: blinds(90, 100)}, []model.TableEventType{model.EventLevelStarted}},
	}

	for _, step := range steps {
		var got []model.TableEventType
		for _, ev := range tracker.observe(step.snap) {
			got = append(got, ev.Type)
		}
		if !reflect.DeepEqual(got, step.want) {
			t.Errorf("%s: expected %v, got %v", step.name, step.want, got)
		}
	}
}
