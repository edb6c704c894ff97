package oatable

import (
	"errors"
	"fmt"
	"hash/fnv"
	"testing"
)

// fnvHash is a realistic primary hash for tests that do not need to
// control slot placement.
func fnvHash(key string, n uint64) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64() % n
}

// zeroHash sends every key to slot 0, forcing one linear cluster.
func zeroHash(_ string, _ uint64) uint64 {
	return 0
}

func newTestTable(t *testing.T, cfg Config[int]) *Table[int] {
	t.Helper()
	if cfg.PrimaryHash == nil {
		cfg.PrimaryHash = fnvHash
	}
	tbl, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

func TestNewRoundsToPrime(t *testing.T) {
	tests := []struct {
		requested uint64
		wantSize  uint64
	}{
		{0, 7}, // default initial size, already prime
		{1, 2},
		{7, 7},
		{10, 11},
		{14, 17},
		{100, 101},
	}

	for _, tt := range tests {
		tbl := newTestTable(t, Config[int]{InitialSize: tt.requested})
		if got := tbl.Stats().TableSize; got != tt.wantSize {
			t.Errorf("New(InitialSize=%d) table size = %d, want %d",
				tt.requested, got, tt.wantSize)
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config[int]
	}{
		{"nil primary hash", Config[int]{}},
		{"load factor above 1", Config[int]{PrimaryHash: fnvHash, MaxLoadFactor: 1.5}},
		{"negative load factor", Config[int]{PrimaryHash: fnvHash, MaxLoadFactor: -0.5}},
		{"growth factor below 1", Config[int]{PrimaryHash: fnvHash, GrowthFactor: 0.9}},
		{"unknown policy", Config[int]{PrimaryHash: fnvHash, Policy: Policy(9)}},
		{"negative max key length", Config[int]{PrimaryHash: fnvHash, MaxKeyLen: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestInsertAndFind(t *testing.T) {
	// 97 slots at load factor 0.5: room for 48 unique keys without growth.
	tbl := newTestTable(t, Config[int]{InitialSize: 97})

	for i := 0; i < 48; i++ {
		key := fmt.Sprintf("key-%03d", i)
		if err := tbl.Insert(key, i); err != nil {
			t.Fatalf("Insert(%q) error = %v", key, err)
		}
	}

	if got := tbl.Stats().Expansions; got != 0 {
		t.Fatalf("expansions = %d, want 0", got)
	}

	for i := 0; i < 48; i++ {
		key := fmt.Sprintf("key-%03d", i)
		val, err := tbl.Find(key)
		if err != nil {
			t.Errorf("Find(%q) error = %v", key, err)
			continue
		}
		if val != i {
			t.Errorf("Find(%q) = %d, want %d", key, val, i)
		}
	}
}

func TestInsertInvalidKey(t *testing.T) {
	tbl := newTestTable(t, Config[int]{MaxKeyLen: 8})

	if err := tbl.Insert("", 1); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Insert(empty) error = %v, want ErrInvalidKey", err)
	}
	if err := tbl.Insert("way-too-long-key", 1); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Insert(long) error = %v, want ErrInvalidKey", err)
	}
	if got := tbl.Count(); got != 0 {
		t.Errorf("Count() after failed inserts = %d, want 0", got)
	}
}

func TestFindMissing(t *testing.T) {
	tbl := newTestTable(t, Config[int]{})

	if _, err := tbl.Find("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(absent) error = %v, want ErrNotFound", err)
	}
	if _, err := tbl.Find(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(empty) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveMissing(t *testing.T) {
	tbl := newTestTable(t, Config[int]{})
	if err := tbl.Insert("present", 1); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := tbl.Remove("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(absent) error = %v, want ErrNotFound", err)
	}
	if err := tbl.Remove(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(empty) error = %v, want ErrNotFound", err)
	}
	if got := tbl.Count(); got != 1 {
		t.Errorf("Count() after failed removes = %d, want 1", got)
	}
}

func TestRemoveThenFind(t *testing.T) {
	for _, policy := range []Policy{Mark, Pack} {
		t.Run(policy.String(), func(t *testing.T) {
			tbl := newTestTable(t, Config[int]{InitialSize: 31, Policy: policy})

			for i := 0; i < 10; i++ {
				key := fmt.Sprintf("k%d", i)
				if err := tbl.Insert(key, i); err != nil {
					t.Fatalf("Insert(%q) error = %v", key, err)
				}
			}

			if err := tbl.Remove("k4"); err != nil {
				t.Fatalf("Remove(k4) error = %v", err)
			}
			if _, err := tbl.Find("k4"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Find(k4) after remove error = %v, want ErrNotFound", err)
			}
			if got := tbl.Count(); got != 9 {
				t.Errorf("Count() = %d, want 9", got)
			}

			// Everything else stays findable.
			for i := 0; i < 10; i++ {
				if i == 4 {
					continue
				}
				key := fmt.Sprintf("k%d", i)
				if _, err := tbl.Find(key); err != nil {
					t.Errorf("Find(%q) error = %v", key, err)
				}
			}
		})
	}
}

func TestCountTracksInsertsAndRemoves(t *testing.T) {
	tbl := newTestTable(t, Config[int]{InitialSize: 53, Policy: Pack})

	for i := 0; i < 20; i++ {
		if err := tbl.Insert(fmt.Sprintf("k%d", i), i); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	for i := 0; i < 20; i += 2 {
		if err := tbl.Remove(fmt.Sprintf("k%d", i)); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
	}

	if got := tbl.Count(); got != 10 {
		t.Errorf("Count() = %d, want 10 (20 inserts, 10 removes)", got)
	}
}

func TestDuplicateKeyOverwrites(t *testing.T) {
	var released []int
	tbl := newTestTable(t, Config[int]{
		Release: func(v int) { released = append(released, v) },
	})

	if err := tbl.Insert("k", 1); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := tbl.Insert("k", 2); err != nil {
		t.Fatalf("Insert() overwrite error = %v", err)
	}

	if got := tbl.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	val, err := tbl.Find("k")
	if err != nil || val != 2 {
		t.Errorf("Find(k) = (%d, %v), want (2, nil)", val, err)
	}
	if len(released) != 1 || released[0] != 1 {
		t.Errorf("released = %v, want [1]", released)
	}
}

func TestReleaseOnRemoveAndClear(t *testing.T) {
	var released []int
	tbl := newTestTable(t, Config[int]{
		Release: func(v int) { released = append(released, v) },
	})

	for i := 1; i <= 3; i++ {
		if err := tbl.Insert(fmt.Sprintf("k%d", i), i*10); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	if err := tbl.Remove("k2"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(released) != 1 || released[0] != 20 {
		t.Fatalf("released after remove = %v, want [20]", released)
	}

	tbl.Clear()
	if len(released) != 3 {
		t.Errorf("released after clear = %v, want 3 values", released)
	}
	if got := tbl.Count(); got != 0 {
		t.Errorf("Count() after clear = %d, want 0", got)
	}
}

func TestGrowthScenario(t *testing.T) {
	// Capacity 7, max load 0.5, growth 2.0: three inserts fit, the fourth
	// projects 4/7 > 0.5 and grows to the nearest prime >= 14, which is 17.
	tbl := newTestTable(t, Config[int]{
		InitialSize:   7,
		MaxLoadFactor: 0.5,
		GrowthFactor:  2.0,
	})

	for i := 0; i < 3; i++ {
		if err := tbl.Insert(fmt.Sprintf("k%d", i), i); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	stats := tbl.Stats()
	if stats.Expansions != 0 || stats.TableSize != 7 {
		t.Fatalf("after 3 inserts: size=%d expansions=%d, want size=7 expansions=0",
			stats.TableSize, stats.Expansions)
	}

	if err := tbl.Insert("k3", 3); err != nil {
		t.Fatalf("Insert(k3) error = %v", err)
	}
	stats = tbl.Stats()
	if stats.TableSize != 17 {
		t.Errorf("table size after growth = %d, want 17", stats.TableSize)
	}
	if stats.Expansions != 1 {
		t.Errorf("expansions = %d, want 1", stats.Expansions)
	}

	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("k%d", i)
		val, err := tbl.Find(key)
		if err != nil || val != i {
			t.Errorf("Find(%q) = (%d, %v), want (%d, nil)", key, val, err, i)
		}
	}
}

func TestResizePreservesEntries(t *testing.T) {
	tbl := newTestTable(t, Config[int]{InitialSize: 7, MaxLoadFactor: 0.7})

	want := make(map[string]int)
	for i := 0; i < 40; i++ {
		key := fmt.Sprintf("entry-%02d", i)
		want[key] = i * 3
		if err := tbl.Insert(key, i*3); err != nil {
			t.Fatalf("Insert(%q) error = %v", key, err)
		}
	}

	stats := tbl.Stats()
	if stats.Expansions == 0 {
		t.Fatal("expected at least one expansion")
	}
	if stats.Count != len(want) {
		t.Fatalf("Count = %d, want %d", stats.Count, len(want))
	}

	// Set equality via the physical snapshot.
	got := make(map[string]int)
	for _, slot := range tbl.Snapshot() {
		if slot.State == Occupied {
			got[slot.Key] = slot.Value
		}
	}
	if len(got) != len(want) {
		t.Fatalf("snapshot has %d occupied slots, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("snapshot[%q] = %d, want %d", k, got[k], v)
		}
	}
}

func TestMaxLoadFactorOneDefersGrowth(t *testing.T) {
	tbl := newTestTable(t, Config[int]{InitialSize: 7, MaxLoadFactor: 1})

	for i := 0; i < 7; i++ {
		if err := tbl.Insert(fmt.Sprintf("k%d", i), i); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	if got := tbl.Stats().Expansions; got != 0 {
		t.Fatalf("expansions with full table = %d, want 0", got)
	}

	// The eighth insert finds count == size and must grow first.
	if err := tbl.Insert("k7", 7); err != nil {
		t.Fatalf("Insert(k7) error = %v", err)
	}
	stats := tbl.Stats()
	if stats.Expansions != 1 {
		t.Errorf("expansions = %d, want 1", stats.Expansions)
	}
	if stats.Count != 8 {
		t.Errorf("Count = %d, want 8", stats.Count)
	}
}

func TestTombstoneReusePriority(t *testing.T) {
	// All keys collide at slot 0 with stride 1: a linear cluster.
	tbl := newTestTable(t, Config[int]{
		InitialSize:   7,
		MaxLoadFactor: 1,
		Policy:        Mark,
		PrimaryHash:   zeroHash,
	})

	for i, key := range []string{"a", "b", "c"} {
		if err := tbl.Insert(key, i); err != nil {
			t.Fatalf("Insert(%q) error = %v", key, err)
		}
	}

	if err := tbl.Remove("b"); err != nil {
		t.Fatalf("Remove(b) error = %v", err)
	}
	snap := tbl.Snapshot()
	if snap[1].State != Deleted {
		t.Fatalf("slot 1 state = %v, want deleted", snap[1].State)
	}

	// The walk passes the tombstone at 1, reaches the gap at 3, and the
	// tombstone wins.
	if err := tbl.Insert("d", 9); err != nil {
		t.Fatalf("Insert(d) error = %v", err)
	}
	snap = tbl.Snapshot()
	if snap[1].State != Occupied || snap[1].Key != "d" {
		t.Errorf("slot 1 = {%v %q}, want occupied %q", snap[1].State, snap[1].Key, "d")
	}
	if snap[3].State != Unoccupied {
		t.Errorf("slot 3 state = %v, want unoccupied", snap[3].State)
	}
}

func TestMarkTombstoneKeepsChainWalkable(t *testing.T) {
	tbl := newTestTable(t, Config[int]{
		InitialSize:   7,
		MaxLoadFactor: 1,
		Policy:        Mark,
		PrimaryHash:   zeroHash,
	})

	for i, key := range []string{"a", "b", "c", "d"} {
		if err := tbl.Insert(key, i); err != nil {
			t.Fatalf("Insert(%q) error = %v", key, err)
		}
	}
	if err := tbl.Remove("b"); err != nil {
		t.Fatalf("Remove(b) error = %v", err)
	}

	// c and d sit past the tombstone and must stay reachable.
	for _, key := range []string{"a", "c", "d"} {
		if _, err := tbl.Find(key); err != nil {
			t.Errorf("Find(%q) error = %v", key, err)
		}
	}
}

func TestPackCompactsCluster(t *testing.T) {
	tbl := newTestTable(t, Config[int]{
		InitialSize:   7,
		MaxLoadFactor: 1,
		Policy:        Pack,
		PrimaryHash:   zeroHash,
	})

	for i, key := range []string{"a", "b", "c", "d"} {
		if err := tbl.Insert(key, i); err != nil {
			t.Fatalf("Insert(%q) error = %v", key, err)
		}
	}

	// Removing from the middle of the cluster backfills the hole: the
	// cluster stays contiguous from slot 0 and nothing is stranded.
	if err := tbl.Remove("b"); err != nil {
		t.Fatalf("Remove(b) error = %v", err)
	}

	snap := tbl.Snapshot()
	for i := 0; i < 3; i++ {
		if snap[i].State != Occupied {
			t.Errorf("slot %d state = %v, want occupied", i, snap[i].State)
		}
	}
	if snap[3].State != Unoccupied {
		t.Errorf("slot 3 state = %v, want unoccupied", snap[3].State)
	}

	for _, key := range []string{"a", "c", "d"} {
		if _, err := tbl.Find(key); err != nil {
			t.Errorf("Find(%q) error = %v", key, err)
		}
	}
	if got := tbl.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestPackWithStride(t *testing.T) {
	// Same primary slot and same stride base for every key, so the whole
	// cluster shares one probe sequence: 0, 2, 4, 6, 1 on a 7-slot table.
	tbl := newTestTable(t, Config[int]{
		InitialSize:   7,
		MaxLoadFactor: 1,
		Policy:        Pack,
		PrimaryHash:   zeroHash,
		SecondaryHash: func(_ string, _ uint64) uint64 { return 1 },
	})

	for i, key := range []string{"a", "b", "c", "d"} {
		if err := tbl.Insert(key, i); err != nil {
			t.Fatalf("Insert(%q) error = %v", key, err)
		}
	}
	snap := tbl.Snapshot()
	for _, idx := range []int{0, 2, 4, 6} {
		if snap[idx].State != Occupied {
			t.Fatalf("slot %d state = %v, want occupied", idx, snap[idx].State)
		}
	}

	if err := tbl.Remove("c"); err != nil {
		t.Fatalf("Remove(c) error = %v", err)
	}
	for _, key := range []string{"a", "b", "d"} {
		val, err := tbl.Find(key)
		if err != nil {
			t.Errorf("Find(%q) error = %v", key, err)
			continue
		}
		want := map[string]int{"a": 0, "b": 1, "d": 3}[key]
		if val != want {
			t.Errorf("Find(%q) = %d, want %d", key, val, want)
		}
	}
}

func TestProbesMonotonic(t *testing.T) {
	tbl := newTestTable(t, Config[int]{InitialSize: 31})

	last := tbl.Stats().Probes
	step := func(op string) {
		t.Helper()
		now := tbl.Stats().Probes
		if now <= last {
			t.Errorf("probes after %s = %d, want > %d", op, now, last)
		}
		last = now
	}

	tbl.Insert("k1", 1)
	step("insert")
	tbl.Find("k1")
	step("find hit")
	tbl.Find("missing")
	step("find miss")
	tbl.Remove("k1")
	step("remove")
	tbl.Remove("missing")
	step("remove miss")
}

func TestClearKeepsCapacityAndCounters(t *testing.T) {
	tbl := newTestTable(t, Config[int]{InitialSize: 7, MaxLoadFactor: 0.5})

	for i := 0; i < 6; i++ {
		if err := tbl.Insert(fmt.Sprintf("k%d", i), i); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	before := tbl.Stats()
	if before.Expansions == 0 {
		t.Fatal("expected an expansion before clear")
	}

	tbl.Clear()
	after := tbl.Stats()

	if after.Count != 0 {
		t.Errorf("Count after clear = %d, want 0", after.Count)
	}
	if after.TableSize != before.TableSize {
		t.Errorf("TableSize after clear = %d, want %d", after.TableSize, before.TableSize)
	}
	if after.Probes != before.Probes {
		t.Errorf("Probes after clear = %d, want %d", after.Probes, before.Probes)
	}
	if after.Expansions != before.Expansions {
		t.Errorf("Expansions after clear = %d, want %d", after.Expansions, before.Expansions)
	}
	for i, slot := range tbl.Snapshot() {
		if slot.State != Unoccupied {
			t.Errorf("slot %d state = %v, want unoccupied", i, slot.State)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tbl := newTestTable(t, Config[int]{})
	if err := tbl.Insert("k", 1); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	snap := tbl.Snapshot()
	for i := range snap {
		snap[i] = Slot[int]{State: Occupied, Key: "poison", Value: -1}
	}

	val, err := tbl.Find("k")
	if err != nil || val != 1 {
		t.Errorf("Find(k) after snapshot mutation = (%d, %v), want (1, nil)", val, err)
	}
	if _, err := tbl.Find("poison"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(poison) error = %v, want ErrNotFound", err)
	}
}

func TestStatsReportsHashFuncs(t *testing.T) {
	linear := newTestTable(t, Config[int]{})
	if linear.Stats().PrimaryHash == nil {
		t.Error("PrimaryHash in stats is nil")
	}
	if linear.Stats().SecondaryHash != nil {
		t.Error("SecondaryHash in stats should be nil under linear probing")
	}

	double := newTestTable(t, Config[int]{
		SecondaryHash: func(_ string, _ uint64) uint64 { return 0 },
	})
	if double.Stats().SecondaryHash == nil {
		t.Error("SecondaryHash in stats is nil")
	}
}

func TestPlaceReportsExhaustion(t *testing.T) {
	// The public path grows before the table can fill, so exhaustion is
	// provoked directly against the probe-insert.
	tbl := newTestTable(t, Config[int]{InitialSize: 3, MaxLoadFactor: 1})
	for i := range tbl.slots {
		tbl.slots[i] = Slot[int]{State: Occupied, Key: fmt.Sprintf("f%d", i)}
	}
	tbl.count = len(tbl.slots)

	if err := tbl.place("overflow", 1); !errors.Is(err, ErrTableFull) {
		t.Errorf("place() on full table error = %v, want ErrTableFull", err)
	}
}

func BenchmarkInsertFind(b *testing.B) {
	tbl, err := New(Config[int]{InitialSize: 1024, PrimaryHash: fnvHash})
	if err != nil {
		b.Fatal(err)
	}

	keys := make([]string, 512)
	for i := range keys {
		keys[i] = fmt.Sprintf("bench-key-%04d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := keys[i%len(keys)]
		tbl.Insert(key, i)
		tbl.Find(key)
	}
}
