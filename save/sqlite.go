package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go driver

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
)

// DBName is the database file inside the configured directory
const DBName = "outpost.sqlite"

const schemaVersion = 1

// SQLiteStore keeps the snapshot across normalized tables, one row set per slot
type SQLiteStore struct {
	DB *sql.DB
}

// NewSQLiteStore opens or creates the database at path and migrates the schema
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("save: create dir: %w", err)
	}
	db, err := openSQLite(path, 5*time.Second)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{DB: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: migration failed: %w", err)
	}
	return s, nil
}

// openSQLite applies the pragmas through the DSN so every pooled connection gets them
func openSQLite(path string, busy time.Duration) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path, busy.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("save: sqlite open failed: %w", err)
	}
	// Single writer; the game saves from one goroutine
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("save: sqlite ping failed: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) migrate() error {
	var current int
	if err := s.DB.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return err
	}
	if current >= schemaVersion {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	schema := `
	CREATE TABLE IF NOT EXISTS session (
		slot INTEGER PRIMARY KEY CHECK (slot = 1),
		id TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		tick INTEGER NOT NULL,
		oxygen INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		life INTEGER NOT NULL,
		change_oxygen INTEGER NOT NULL,
		change_energy INTEGER NOT NULL,
		change_life INTEGER NOT NULL,
		player_x INTEGER NOT NULL,
		player_y INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		info_text TEXT NOT NULL,
		effect TEXT NOT NULL,
		delta_oxygen INTEGER NOT NULL,
		delta_energy INTEGER NOT NULL,
		delta_life INTEGER NOT NULL,
		machine TEXT NOT NULL,
		state TEXT NOT NULL,
		remaining INTEGER NOT NULL,
		popup TEXT NOT NULL,
		message TEXT NOT NULL,
		restore TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS machines (
		seq INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		state TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS inventory (
		seq INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		info_text TEXT NOT NULL,
		image TEXT NOT NULL,
		amount INTEGER NOT NULL
	);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearSlot(ctx, tx); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO session (slot, id, saved_at, tick, oxygen, energy, life,
		change_oxygen, change_energy, change_life, player_x, player_y)
	VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.SavedAt.UTC().Format(time.RFC3339Nano), int64(snap.Tick),
		snap.Levels.Oxygen, snap.Levels.Energy, snap.Levels.Life,
		snap.Change.Oxygen, snap.Change.Energy, snap.Change.Life,
		snap.Player.X, snap.Player.Y,
	)
	if err != nil {
		return fmt.Errorf("save: insert session: %w", err)
	}

	for i, r := range snap.Events {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO events (seq, kind, name, info_text, effect, delta_oxygen, delta_energy, delta_life,
			machine, state, remaining, popup, message, restore)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, r.Kind.String(), r.Name, r.InfoText, r.Effect,
			r.Delta.Oxygen, r.Delta.Energy, r.Delta.Life,
			r.Machine, r.State.String(), r.Remaining, r.Popup.String(), r.Message, r.Restore.String(),
		)
		if err != nil {
			return fmt.Errorf("save: insert event %d: %w", i, err)
		}
	}

	for i, m := range snap.Machines {
		if _, err := tx.ExecContext(ctx, `INSERT INTO machines (seq, name, state) VALUES (?, ?, ?)`,
			i, m.Name, m.State.String()); err != nil {
			return fmt.Errorf("save: insert machine %s: %w", m.Name, err)
		}
	}

	for i, it := range snap.Inventory {
		if _, err := tx.ExecContext(ctx, `INSERT INTO inventory (seq, name, info_text, image, amount) VALUES (?, ?, ?, ?, ?)`,
			i, it.Name, it.InfoText, it.Image, it.Amount); err != nil {
			return fmt.Errorf("save: insert item %s: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save: commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	var (
		snap    Snapshot
		savedAt string
		tick    int64
	)
	err := s.DB.QueryRowContext(ctx, `
	SELECT id, saved_at, tick, oxygen, energy, life, change_oxygen, change_energy, change_life, player_x, player_y
	FROM session WHERE slot = 1`).Scan(
		&snap.ID, &savedAt, &tick,
		&snap.Levels.Oxygen, &snap.Levels.Energy, &snap.Levels.Life,
		&snap.Change.Oxygen, &snap.Change.Energy, &snap.Change.Life,
		&snap.Player.X, &snap.Player.Y,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("save: query session: %w", err)
	}
	snap.Tick = uint64(tick)
	if snap.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return nil, fmt.Errorf("save: parse saved_at: %w", err)
	}

	if snap.Events, err = loadEvents(ctx, s.DB); err != nil {
		return nil, err
	}
	if snap.Machines, err = loadMachines(ctx, s.DB); err != nil {
		return nil, err
	}
	if snap.Inventory, err = loadInventory(ctx, s.DB); err != nil {
		return nil, err
	}
	return &snap, nil
}

func loadEvents(ctx context.Context, db *sql.DB) ([]event.Record, error) {
	rows, err := db.QueryContext(ctx, `
	SELECT kind, name, info_text, effect, delta_oxygen, delta_energy, delta_life,
		machine, state, remaining, popup, message, restore
	FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("save: query events: %w", err)
	}
	defer rows.Close()

	var out []event.Record
	for rows.Next() {
		var (
			r                           event.Record
			kind, state, popup, restore string
		)
		if err := rows.Scan(&kind, &r.Name, &r.InfoText, &r.Effect,
			&r.Delta.Oxygen, &r.Delta.Energy, &r.Delta.Life,
			&r.Machine, &state, &r.Remaining, &popup, &r.Message, &restore); err != nil {
			return nil, fmt.Errorf("save: scan event: %w", err)
		}
		if err := r.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, err
		}
		if err := r.State.UnmarshalText([]byte(state)); err != nil {
			return nil, err
		}
		if err := r.Popup.UnmarshalText([]byte(popup)); err != nil {
			return nil, err
		}
		if err := r.Restore.UnmarshalText([]byte(restore)); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func loadMachines(ctx context.Context, db *sql.DB) ([]machine.Machine, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, state FROM machines ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("save: query machines: %w", err)
	}
	defer rows.Close()

	var out []machine.Machine
	for rows.Next() {
		var m machine.Machine
		var state string
		if err := rows.Scan(&m.Name, &state); err != nil {
			return nil, fmt.Errorf("save: scan machine: %w", err)
		}
		if m.State, err = machine.ParseState(state); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func loadInventory(ctx context.Context, db *sql.DB) ([]resource.Item, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, info_text, image, amount FROM inventory ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("save: query inventory: %w", err)
	}
	defer rows.Close()

	var out []resource.Item
	for rows.Next() {
		var it resource.Item
		if err := rows.Scan(&it.Name, &it.InfoText, &it.Image, &it.Amount); err != nil {
			return nil, fmt.Errorf("save: scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearSlot(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func clearSlot(ctx context.Context, tx *sql.Tx) error {
	for _, table := range []string{"session", "events", "machines", "inventory"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("save: clear %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
