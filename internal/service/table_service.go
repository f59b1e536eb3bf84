package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"pokerclock/internal/cache"
	"pokerclock/internal/clock"
	"pokerclock/internal/game"
	"pokerclock/internal/model"
	"pokerclock/internal/repository"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrNotTableHost  = errors.New("unauthorized: not table host")
	ErrUnknownAction = errors.New("unknown command action")
)

// Message types sent to table subscribers
const (
	MsgSnapshot    = "snapshot"
	MsgTableClosed = "table_closed"
)

// persistEvery bounds how often a running clock is written to Redis.
// Changes to the active level or the running state are always written.
const persistEvery = time.Second

// TableState is a table together with its latest clock snapshot
type TableState struct {
	Table    *model.Table   `json:"table"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
}

// TableService runs the live blind clocks
type TableService struct {
	structureRepo repository.StructureRepo
	eventRepo     repository.EventRepo
	tableCache    cache.TableCache
	snapshots     cache.SnapshotCache
	broadcaster   Broadcaster

	tickInterval time.Duration
	newClock     func() clock.Serial

	mu     sync.RWMutex
	tables map[string]*liveTable
}

type liveTable struct {
	meta    model.Table
	clock   clock.Serial
	game    *game.Game
	unsub   func()
	updates chan game.Snapshot
	done    chan struct{}

	// closed is set on the clock's thread once the table has been shut down.
	closed bool
}

// NewTableService creates a new table service
func NewTableService(
	structureRepo repository.StructureRepo,
	eventRepo repository.EventRepo,
	tableCache cache.TableCache,
	snapshots cache.SnapshotCache,
	tickInterval time.Duration,
) *TableService {
	return &TableService{
		structureRepo: structureRepo,
		eventRepo:     eventRepo,
		tableCache:    tableCache,
		snapshots:     snapshots,
		tickInterval:  tickInterval,
		newClock:      func() clock.Serial { return clock.NewLoop() },
		tables:        make(map[string]*liveTable),
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *TableService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// OpenTable starts a paused clock for a structure owned by hostID. An empty
// title falls back to the structure title.
func (s *TableService) OpenTable(ctx context.Context, hostID, structureID, title string) (*TableState, error) {
	st, err := s.structureRepo.GetByID(ctx, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get structure: %w", err)
	}
	if st == nil {
		return nil, ErrStructureNotFound
	}
	if st.HostID != hostID {
		return nil, ErrNotOwner
	}
	if title == "" {
		title = st.Title
	}

	code, err := s.generateTableCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate table code: %w", err)
	}

	clk := s.newClock()
	g, err := game.New(clk, title, st.GameLevels(), game.WithTickInterval(s.tickInterval))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	t := &liveTable{
		meta: model.Table{
			Code:        code,
			Title:       title,
			StructureID: structureID,
			HostID:      hostID,
			Status:      model.TableLive,
			CreatedAt:   time.Now(),
		},
		clock:   clk,
		game:    g,
		updates: make(chan game.Snapshot, 1),
		done:    make(chan struct{}),
	}

	if err := s.tableCache.SetMeta(ctx, &t.meta); err != nil {
		return nil, fmt.Errorf("failed to cache table: %w", err)
	}

	var snap game.Snapshot
	clk.Do(func() {
		snap = g.Snapshot()
		t.unsub = g.Subscribe(t.offer)
	})
	if err := s.snapshots.Set(ctx, code, snap); err != nil {
		log.Printf("Failed to store snapshot for table %s: %v", code, err)
	}

	s.mu.Lock()
	s.tables[code] = t
	s.mu.Unlock()

	go s.publish(t, snap)

	s.record(ctx, &model.TableEvent{TableCode: code, Type: model.EventTableOpened, Level: 1})
	log.Printf("Table %s opened by %s (%d levels)", code, hostID, len(st.Levels))

	meta := t.meta
	return &TableState{Table: &meta, Snapshot: &snap}, nil
}

// Get returns a table and its clock. Live tables are read directly; any
// other known table is reported closed with its last cached clock.
func (s *TableService) Get(ctx context.Context, code string) (*TableState, error) {
	if t := s.live(code); t != nil {
		meta := t.meta
		snap := t.snapshot()
		return &TableState{Table: &meta, Snapshot: &snap}, nil
	}

	meta, err := s.tableCache.GetMeta(ctx, code)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, ErrTableNotFound
	}
	// Only this process runs clocks, so a table it does not hold is over.
	meta.Status = model.TableClosed
	snap, err := s.snapshots.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return &TableState{Table: meta, Snapshot: snap}, nil
}

// Snapshot returns the current clock of a table
func (s *TableService) Snapshot(ctx context.Context, code string) (*game.Snapshot, error) {
	state, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if state.Snapshot == nil {
		return nil, ErrTableNotFound
	}
	return state.Snapshot, nil
}

// Execute applies a host command to a live table and returns the clock
// after the command has settled.
func (s *TableService) Execute(ctx context.Context, code, hostID string, cmd model.Command) (*game.Snapshot, error) {
	t := s.live(code)
	if t == nil {
		return nil, ErrTableNotFound
	}
	if t.meta.HostID != hostID {
		return nil, ErrNotTableHost
	}

	return t.execute(cmd)
}

func (t *liveTable) execute(cmd model.Command) (*game.Snapshot, error) {
	var (
		snap game.Snapshot
		err  error
	)
	t.clock.Do(func() {
		if t.closed {
			err = ErrTableNotFound
			return
		}
		err = ApplyCommand(t.game, cmd)
		snap = t.game.Snapshot()
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Close stops a live table. Its last snapshot stays readable until it
// expires from the cache.
func (s *TableService) Close(ctx context.Context, code, hostID string) error {
	t := s.live(code)
	if t == nil {
		return ErrTableNotFound
	}
	if t.meta.HostID != hostID {
		return ErrNotTableHost
	}
	return s.close(ctx, t)
}

// Purge closes a table if it is still live and drops its cached metadata
// and clock. Its event history is kept.
func (s *TableService) Purge(ctx context.Context, code, hostID string) error {
	if s.live(code) != nil {
		if err := s.Close(ctx, code, hostID); err != nil {
			return err
		}
	} else {
		meta, err := s.tableCache.GetMeta(ctx, code)
		if err != nil {
			return err
		}
		if meta == nil {
			return ErrTableNotFound
		}
		if meta.HostID != hostID {
			return ErrNotTableHost
		}
	}

	if err := s.snapshots.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if err := s.tableCache.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	log.Printf("Table %s purged", code)
	return nil
}

// Shutdown closes every live table
func (s *TableService) Shutdown(ctx context.Context) {
	s.mu.RLock()
	tables := make([]*liveTable, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t)
	}
	s.mu.RUnlock()

	for _, t := range tables {
		if err := s.close(ctx, t); err != nil {
			log.Printf("Failed to close table %s: %v", t.meta.Code, err)
		}
	}
}

// Tables lists every known table, live or recently closed
func (s *TableService) Tables(ctx context.Context) ([]*model.Table, error) {
	tables, err := s.tableCache.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		if s.live(t.Code) == nil {
			t.Status = model.TableClosed
		}
	}
	return tables, nil
}

// Events returns the newest events of a table
func (s *TableService) Events(ctx context.Context, code string, limit int) ([]*model.TableEvent, error) {
	return s.eventRepo.ListByTable(ctx, code, limit)
}

func (s *TableService) close(ctx context.Context, t *liveTable) error {
	s.mu.Lock()
	if s.tables[t.meta.Code] != t {
		s.mu.Unlock()
		return ErrTableNotFound
	}
	delete(s.tables, t.meta.Code)
	s.mu.Unlock()

	var snap game.Snapshot
	t.clock.Do(func() {
		t.closed = true
		t.unsub()
		t.game.PauseGame()
		snap = t.game.Snapshot()
	})
	// No more producers once unsubscribed on the clock's thread.
	close(t.updates)
	<-t.done

	code := t.meta.Code
	if err := s.snapshots.Set(ctx, code, snap); err != nil {
		log.Printf("Failed to store final snapshot for table %s: %v", code, err)
	}
	// Viewers are told and disconnected even when the status write fails.
	if err := s.tableCache.SetStatus(ctx, code, model.TableClosed); err != nil {
		log.Printf("Failed to mark table %s closed: %v", code, err)
	}
	s.record(ctx, &model.TableEvent{TableCode: code, Type: model.EventTableClosed})

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTable(code, MsgTableClosed, snap)
		s.broadcaster.DisconnectTable(code)
	}
	log.Printf("Table %s closed", code)
	return nil
}

func (s *TableService) live(code string) *liveTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables[code]
}

// publish drains snapshots of one table until it is closed. History is
// recorded before a snapshot is broadcast.
func (s *TableService) publish(t *liveTable, initial game.Snapshot) {
	defer close(t.done)

	tracker := newEventTracker(initial)
	lastPersist := time.Now()
	prev := initial

	for snap := range t.updates {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if snap.ActiveBlindIndex != prev.ActiveBlindIndex || snap.Running != prev.Running ||
			time.Since(lastPersist) >= persistEvery {
			if err := s.snapshots.Set(ctx, t.meta.Code, snap); err != nil {
				log.Printf("Failed to store snapshot for table %s: %v", t.meta.Code, err)
			}
			lastPersist = time.Now()
		}

		for _, ev := range tracker.observe(snap) {
			ev.TableCode = t.meta.Code
			s.record(ctx, ev)
		}

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToTable(t.meta.Code, MsgSnapshot, snap)
		}

		cancel()
		prev = snap
	}
}

func (s *TableService) record(ctx context.Context, ev *model.TableEvent) {
	if err := s.eventRepo.Record(ctx, ev); err != nil {
		log.Printf("Failed to record %s for table %s: %v", ev.Type, ev.TableCode, err)
	}
}

// generateTableCode picks a readable code such as "brave-otter"
func (s *TableService) generateTableCode(ctx context.Context) (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		words := 2
		if attempts >= 5 {
			words = 3
		}
		code := petname.Generate(words, "-")

		exists, err := s.tableCache.Exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists && s.live(code) == nil {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique table code")
}

// offer hands snap to the publisher, replacing one it has not taken yet.
// It runs on the game's thread, which is the only sender.
func (t *liveTable) offer(snap game.Snapshot) {
	select {
	case t.updates <- snap:
		return
	default:
	}
	select {
	case <-t.updates:
	default:
	}
	t.updates <- snap
}

func (t *liveTable) snapshot() game.Snapshot {
	var snap game.Snapshot
	t.clock.Do(func() {
		snap = t.game.Snapshot()
	})
	return snap
}
