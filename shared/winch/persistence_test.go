package winch

import (
	"testing"

	"WinchWorks/shared/catalog"
	"WinchWorks/shared/config"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "teste")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	be := newTestWinch(3, "waterportion")
	be.TryStartTurning("ana", false)
	for i := 0; i < 5; i++ {
		be.ContinueTurning(0.1)
	}
	if err := store.Save(be); err != nil {
		t.Fatal(err)
	}
	// Salvar de novo é upsert.
	if err := store.Save(be); err != nil {
		t.Fatal(err)
	}

	all, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("esperado 1 guincho, veio %d", len(all))
	}
	sw := all[0]
	if sw.Pos != be.Pos || sw.Facing != be.Facing {
		t.Fatalf("posição/face incorretas: %+v", sw)
	}

	restored := NewBlockEntity(sw.Pos, sw.Facing, config.DefaultWinchTuning(), catalog.Default(), fakeShaft{depth: 3})
	restored.Restore(sw)
	got, want := restored.Snapshot(), be.Snapshot()
	if got.BucketDepth != want.BucketDepth || got.AngleRad != want.AngleRad || !got.Slot.SameAs(want.Slot) {
		t.Fatalf("estado restaurado difere: %+v vs %+v", got, want)
	}
	if got.RotatingPlayer != "" || got.IsTurningManually {
		t.Fatal("o giro em andamento não deve ser persistido")
	}
}

func TestStoreMetadataErrors(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "meta")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var version WorldMetadata
	if err := store.DB.Where(&WorldMetadata{Key: "FormatVersion"}).First(&version).Error; err != nil || version.Value != "1" {
		t.Fatalf("versão do formato não gravada: %+v, %v", version, err)
	}

	if err := store.DB.Migrator().DropTable(&WorldMetadata{}); err != nil {
		t.Fatal(err)
	}
	if err := writeMetadata(store.DB, "meta"); err == nil {
		t.Fatal("falha ao gravar metadados deveria ser reportada")
	}
}

func TestRestoreClampsToShaft(t *testing.T) {
	be := newTestWinch(1, "")
	be.Restore(&SavedWinch{state: savedState{BucketDepth: 10}})
	if d := be.Snapshot().BucketDepth; d != 1 {
		t.Fatalf("profundidade deveria ser limitada ao poço, veio %v", d)
	}
}
