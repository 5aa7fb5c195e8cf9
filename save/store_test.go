package save

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/screen"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		ID:      uuid.NewString(),
		SavedAt: time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC),
		Tick:    123456,
		Levels:  resource.Levels{Oxygen: 81, Energy: 0, Life: 40},
		Change:  resource.Delta{Oxygen: -6, Energy: -6, Life: 0},
		Player:  Position{X: 12, Y: 7},
		Events: []event.Record{
			{
				Kind: event.KindSandstorm, Name: "sandstorm", InfoText: "dust",
				Effect: event.EffectResource, Delta: event.SandstormDelta,
				Remaining: 340, Popup: screen.PopupWarning, Message: "Sandstorm!",
				Restore: event.RestoreOnExpiry,
			},
			{
				Kind: event.KindCometImpact, Name: "comet-impact", InfoText: "boom",
				Effect: event.EffectMachine, Machine: machine.Hole, State: machine.Idle,
				Remaining: 20, Popup: screen.PopupWarning, Message: "Comet!",
				Restore: event.NoRestore,
			},
		},
		Machines: []machine.Machine{
			{Name: machine.Hole, State: machine.Idle},
			{Name: machine.Generator, State: machine.Broken},
			{Name: machine.OxygenPlant, State: machine.Running},
		},
		Inventory: []resource.Item{
			{Name: "duct tape", InfoText: "fixes anything", Amount: 3},
			{Name: "battery", InfoText: "charged", Image: "battery.png", Amount: -1},
		},
	}
}

// backends returns a fresh instance of every store under test
func backends(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	db, err := NewSQLiteStore(filepath.Join(t.TempDir(), DBName))
	require.NoError(t, err)

	stores := map[string]Store{
		BackendFile:   file,
		BackendSQLite: db,
		BackendMemory: NewMemoryStore(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load(ctx)
			require.ErrorIs(t, err, ErrNoSave)

			want := sampleSnapshot()
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
			}

			next := sampleSnapshot()
			next.Tick++
			next.Events = nil
			require.NoError(t, store.Save(ctx, next))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, next.Tick, got.Tick, "save replaces the slot")
			assert.Empty(t, got.Events)

			require.NoError(t, store.Delete(ctx))
			_, err = store.Load(ctx)
			assert.ErrorIs(t, err, ErrNoSave)
			assert.NoError(t, store.Delete(ctx), "deleting an empty slot is fine")
		})
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	snap := sampleSnapshot()
	require.NoError(t, s.Save(ctx, snap))

	snap.Machines[0].State = machine.Running
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, machine.Idle, got.Machines[0].State)
}

func TestFileStoreWritesYAML(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: sandstorm")
	assert.Contains(t, string(data), "restore: none")

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStoreCorrupt(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), []byte("events: {not: [a list"), 0o600))

	_, err = s.Load(context.Background())
	assert.ErrorContains(t, err, "decode")
	assert.NotErrorIs(t, err, ErrNoSave)
}

func TestSQLiteMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBName)
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, sampleSnapshot()))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.DB.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, schemaVersion, version)

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Events, 2, "data survives reopen")
}

func TestNewStore(t *testing.T) {
	log := zerolog.Nop()

	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory, ""} {
		s, err := NewStore(backend, t.TempDir(), log)
		require.NoError(t, err, backend)
		require.NoError(t, s.Save(context.Background(), sampleSnapshot()))
		require.NoError(t, s.Close())
	}

	_, err := NewStore("floppy", t.TempDir(), log)
	assert.ErrorContains(t, err, "unknown backend")
}

func TestObservedPassesNoSaveThrough(t *testing.T) {
	s, err := NewStore(BackendMemory, "", zerolog.Nop())
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSave)
}
