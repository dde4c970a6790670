package cart

import (
	"testing"

	"github.com/rp-labs/storefront-api/models"
)

func testProduct(id, title string, price float64) models.Product {
	return models.Product{ID: id, Title: title, Price: price, Image: "/img/" + id + ".jpg"}
}

func TestAddMergesQuantities(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 2)
	items := store.Add(testProduct("p1", "Headphones", 59.99), 3)

	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Qty != 5 {
		t.Fatalf("expected merged qty 5, got %d", items[0].Qty)
	}
}

func TestAddSnapshotsProductFields(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 1)

	// A later price change must not affect the stored snapshot.
	store.Add(testProduct("p2", "Keyboard", 20), 1)
	items := store.Items()
	if items[0].Price != 59.99 || items[0].Title != "Headphones" {
		t.Fatalf("line item snapshot changed: %+v", items[0])
	}
}

func TestUpdateQtyRemovesOnNonPositive(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 2)
	store.Add(testProduct("p2", "Keyboard", 20), 1)

	items := store.UpdateQty("p1", 0)
	for _, item := range items {
		if item.ID == "p1" {
			t.Fatalf("expected p1 removed, still present with qty %d", item.Qty)
		}
	}
	if got := store.Count(); got != 1 {
		t.Fatalf("expected count 1 after removal, got %d", got)
	}
}

func TestUpdateQtyUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 2)
	items := store.UpdateQty("missing", 7)
	if len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("unexpected items after no-op update: %+v", items)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 2)
	store.Add(testProduct("p2", "Keyboard", 20), 3)
	store.Add(testProduct("p3", "Mouse", 10), 1)
	store.UpdateQty("p3", 0)

	if got := store.Count(); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
}

func TestCorruptStorageFailsOpen(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	if err := storage.Set(storageKey, "{not json", "someone-else"); err != nil {
		t.Fatal(err)
	}

	store := New(storage)
	defer store.Close()

	items := store.Items()
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty cart on corrupt storage, got %+v", items)
	}
	if got := store.Count(); got != 0 {
		t.Fatalf("expected count 0 on corrupt storage, got %d", got)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 2)
	store.Clear()
	if got := len(store.Items()); got != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", got)
	}
}

func TestSubtotal(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryStorage())
	defer store.Close()

	store.Add(testProduct("p1", "Headphones", 59.99), 2)
	store.Add(testProduct("p2", "Keyboard", 20.50), 1)

	if got := store.Subtotal().StringFixed(2); got != "140.48" {
		t.Fatalf("expected subtotal 140.48, got %s", got)
	}
}

func TestChangeNotificationSkipsWriter(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	writer := New(storage)
	defer writer.Close()
	observer := New(storage)
	defer observer.Close()

	writerFired := 0
	observerFired := 0
	writer.OnChange(func() { writerFired++ })
	observer.OnChange(func() { observerFired++ })

	writer.Add(testProduct("p1", "Headphones", 59.99), 1)

	if writerFired != 0 {
		t.Fatalf("writer heard its own write %d times", writerFired)
	}
	if observerFired != 1 {
		t.Fatalf("expected observer notified once, got %d", observerFired)
	}

	// The observer re-reads and sees the write.
	if got := observer.Count(); got != 1 {
		t.Fatalf("observer sees count %d, want 1", got)
	}
}

func TestOnChangeUnsubscribe(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	writer := New(storage)
	defer writer.Close()
	observer := New(storage)
	defer observer.Close()

	fired := 0
	unsubscribe := observer.OnChange(func() { fired++ })
	unsubscribe()

	writer.Add(testProduct("p1", "Headphones", 59.99), 1)
	if fired != 0 {
		t.Fatalf("unsubscribed listener fired %d times", fired)
	}
}
