package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"phonebook/internal/models"
)

// testContactRepository runs the behaviour every backend must share.
func testContactRepository(t *testing.T, newRepo func(t *testing.T) models.ContactRepository) {
	ctx := context.Background()

	t.Run("CreateAssignsIDAndDefaults", func(t *testing.T) {
		repo := newRepo(t)

		contact, err := repo.Create(ctx, models.ContactFields{Name: "Alice", Phone: "+123456789"})
		if err != nil {
			t.Fatalf("Failed to create contact: %v", err)
		}
		if contact.ID != 1 {
			t.Errorf("Expected id 1, got %d", contact.ID)
		}

		contacts, err := repo.List(ctx, models.SortByID)
		if err != nil {
			t.Fatalf("Failed to list contacts: %v", err)
		}
		want := models.Contact{ID: 1, Name: "Alice", Phone: "+123456789"}
		if len(contacts) != 1 || *contacts[0] != want {
			t.Errorf("Expected [%+v], got %+v", want, contacts)
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo := newRepo(t)

		contacts, err := repo.List(ctx, models.SortByNameSurname)
		if err != nil {
			t.Fatalf("Failed to list contacts: %v", err)
		}
		if contacts == nil || len(contacts) != 0 {
			t.Errorf("Expected empty non-nil list, got %#v", contacts)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := newRepo(t)

		if _, err := repo.Get(ctx, 42); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateRewritesEveryField", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, models.ContactFields{
			Name: "Bob", Surname: "Stone", Company: "Acme", Phone: "555", Address: "Elm St",
		})
		if err != nil {
			t.Fatalf("Failed to create contact: %v", err)
		}

		updated, err := repo.Update(ctx, created.ID, models.ContactFields{Name: "Bob", Phone: "556"})
		if err != nil {
			t.Fatalf("Failed to update contact: %v", err)
		}

		got, err := repo.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Failed to get contact: %v", err)
		}
		want := models.Contact{ID: created.ID, Name: "Bob", Phone: "556"}
		if *got != want || *updated != want {
			t.Errorf("Expected %+v, got stored %+v returned %+v", want, got, updated)
		}
	})

	t.Run("UpdateSameValues", func(t *testing.T) {
		repo := newRepo(t)

		fields := models.ContactFields{Name: "Carol", Phone: "1"}
		created, err := repo.Create(ctx, fields)
		if err != nil {
			t.Fatalf("Failed to create contact: %v", err)
		}
		if _, err := repo.Update(ctx, created.ID, fields); err != nil {
			t.Errorf("Update with unchanged values failed: %v", err)
		}
	})

	t.Run("UpdateMissingDoesNotInsert", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Update(ctx, 99, models.ContactFields{Name: "Ghost", Phone: "0"})
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		contacts, _ := repo.List(ctx, models.SortByID)
		if len(contacts) != 0 {
			t.Errorf("Update of a missing id inserted %+v", contacts)
		}
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Create(ctx, models.ContactFields{Name: "Dan", Phone: "2"})
		if err != nil {
			t.Fatalf("Failed to create contact: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Failed to delete contact: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("IDsNotReused", func(t *testing.T) {
		repo := newRepo(t)

		first, _ := repo.Create(ctx, models.ContactFields{Name: "A", Phone: "1"})
		second, _ := repo.Create(ctx, models.ContactFields{Name: "B", Phone: "2"})
		if err := repo.Delete(ctx, second.ID); err != nil {
			t.Fatalf("Failed to delete contact: %v", err)
		}

		third, err := repo.Create(ctx, models.ContactFields{Name: "C", Phone: "3"})
		if err != nil {
			t.Fatalf("Failed to create contact: %v", err)
		}
		if third.ID == first.ID || third.ID == second.ID {
			t.Errorf("Id %d was reused", third.ID)
		}
	})

	t.Run("Ordering", func(t *testing.T) {
		repo := newRepo(t)

		for _, f := range []models.ContactFields{
			{Name: "Zed", Phone: "1"},
			{Name: "Amy", Surname: "Young", Phone: "2"},
			{Name: "Amy", Phone: "3"},
			{Name: "Amy", Surname: "Young", Phone: "4"},
		} {
			if _, err := repo.Create(ctx, f); err != nil {
				t.Fatalf("Failed to create contact: %v", err)
			}
		}

		byName, err := repo.List(ctx, models.SortByNameSurname)
		if err != nil {
			t.Fatalf("Failed to list contacts: %v", err)
		}
		assertPhones(t, byName, "3", "2", "4", "1")

		byID, err := repo.List(ctx, models.SortByID)
		if err != nil {
			t.Fatalf("Failed to list contacts: %v", err)
		}
		assertPhones(t, byID, "1", "2", "3", "4")
	})

	t.Run("OrderingIsCaseSensitive", func(t *testing.T) {
		repo := newRepo(t)

		for _, f := range []models.ContactFields{
			{Name: "bob", Phone: "1"},
			{Name: "Bob", Phone: "2"},
			{Name: "alice", Phone: "3"},
			{Name: "Carl", Phone: "4"},
		} {
			if _, err := repo.Create(ctx, f); err != nil {
				t.Fatalf("Failed to create contact: %v", err)
			}
		}

		contacts, err := repo.List(ctx, models.SortByNameSurname)
		if err != nil {
			t.Fatalf("Failed to list contacts: %v", err)
		}
		assertPhones(t, contacts, "2", "4", "3", "1")
	})

	t.Run("ConcurrentCreatesGetDistinctIDs", func(t *testing.T) {
		repo := newRepo(t)

		const n = 32
		ids := make(chan int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c, err := repo.Create(ctx, models.ContactFields{Name: "Same", Phone: "000"})
				if err != nil {
					t.Errorf("Failed to create contact: %v", err)
					return
				}
				ids <- c.ID
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			if seen[id] {
				t.Errorf("Id %d assigned twice", id)
			}
			seen[id] = true
		}
		if len(seen) != n {
			t.Errorf("Expected %d ids, got %d", n, len(seen))
		}
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}

func assertPhones(t *testing.T, contacts []*models.Contact, phones ...string) {
	t.Helper()
	if len(contacts) != len(phones) {
		t.Fatalf("Expected %d contacts, got %d", len(phones), len(contacts))
	}
	for i, c := range contacts {
		if c.Phone != phones[i] {
			t.Errorf("Position %d: expected phone %s, got %s", i, phones[i], c.Phone)
		}
	}
}
