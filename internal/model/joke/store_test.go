package joke

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestSeedJokesAreValid(t *testing.T) {
	for _, j := range Seed() {
		if !j.Valid() {
			t.Fatalf("seed joke %q is incomplete", j.ID)
		}
	}
}

func TestCatalogFindByID(t *testing.T) {
	c := NewCatalog(Seed())

	got, ok := c.FindByID("lettuce")
	if !ok {
		t.Fatal("expected lettuce joke")
	}
	if got.Setup != "Lettuce" {
		t.Fatalf("unexpected setup: %s", got.Setup)
	}

	if _, ok := c.FindByID("missing"); ok {
		t.Fatal("expected missing joke to be absent")
	}
}

func TestCatalogPickIsFromCatalog(t *testing.T) {
	seeds := Seed()
	c := NewCatalogWithRand(seeds, rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		j, err := c.Pick(context.Background())
		if err != nil {
			t.Fatalf("Pick err: %v", err)
		}
		if _, ok := c.FindByID(j.ID); !ok {
			t.Fatalf("picked joke %q not in catalog", j.ID)
		}
	}
}

func TestCatalogPickEmpty(t *testing.T) {
	c := NewCatalog(nil)
	if _, err := c.Pick(context.Background()); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestCatalogListIsCopy(t *testing.T) {
	c := NewCatalog(Seed())
	list := c.List()
	list[0].Setup = "changed"

	if got, _ := c.FindByID(list[0].ID); got.Setup == "changed" {
		t.Fatal("List must not expose internal slice")
	}
}
