package sqlite_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/artpar/admingate/adapters/sqlite"
	"github.com/artpar/admingate/ports"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	f, err := os.CreateTemp("", "admingate-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := sqlite.Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})

	schema := `
		CREATE TABLE posts (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT,
			views INTEGER,
			rating REAL,
			published_at DATETIME
		);
		CREATE TABLE tags (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	seed := `
		INSERT INTO posts (id, title, body, views, rating, published_at) VALUES
			(1, 'Charlie', 'c-body', 30, 4.5, '2025-01-03'),
			(2, 'Alpha',   'a-body', 10, 3.0, '2025-01-01'),
			(3, 'Bravo',   'b-body', 20, 5.0, '2025-01-02');
	`
	if _, err := db.Exec(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}

func postsResource(t *testing.T, db *sqlite.DB) ports.Resource {
	t.Helper()

	adapter := sqlite.NewAdapter(db, "blog")
	resources, err := adapter.Resources(context.Background())
	if err != nil {
		t.Fatalf("Resources: %v", err)
	}
	for _, r := range resources {
		if r.ID() == "posts" {
			return r
		}
	}
	t.Fatal("posts resource not found")
	return nil
}

func TestResourcesIntrospection(t *testing.T) {
	db := setupTestDB(t)
	adapter := sqlite.NewAdapter(db, "blog")

	resources, err := adapter.Resources(context.Background())
	if err != nil {
		t.Fatalf("Resources: %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("got %d resources, want 2", len(resources))
	}

	// Tables come back in name order.
	if resources[0].ID() != "posts" || resources[1].ID() != "tags" {
		t.Errorf("order = [%s, %s], want [posts, tags]", resources[0].ID(), resources[1].ID())
	}
	if resources[0].DatabaseName() != "blog" {
		t.Errorf("DatabaseName = %q, want blog", resources[0].DatabaseName())
	}
	if resources[0].DatabaseType() != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", resources[0].DatabaseType())
	}
}

func TestPropertyIntrospection(t *testing.T) {
	db := setupTestDB(t)
	res := postsResource(t, db)

	props := res.Properties()
	byName := make(map[string]ports.Property, len(props))
	for _, p := range props {
		byName[p.Name()] = p
	}

	tests := []struct {
		name    string
		typ     ports.PropertyType
		isID    bool
		isTitle bool
	}{
		{"id", ports.PropertyTypeNumber, true, false},
		{"title", ports.PropertyTypeString, false, true},
		{"body", ports.PropertyTypeString, false, false},
		{"views", ports.PropertyTypeNumber, false, false},
		{"rating", ports.PropertyTypeFloat, false, false},
		{"published_at", ports.PropertyTypeDatetime, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := byName[tt.name]
			if !ok {
				t.Fatalf("property %q missing", tt.name)
			}
			if p.Type() != tt.typ {
				t.Errorf("Type = %q, want %q", p.Type(), tt.typ)
			}
			if p.IsID() != tt.isID {
				t.Errorf("IsID = %v, want %v", p.IsID(), tt.isID)
			}
			if p.IsTitle() != tt.isTitle {
				t.Errorf("IsTitle = %v, want %v", p.IsTitle(), tt.isTitle)
			}
			if !p.IsSortable() {
				t.Error("sqlite columns should be sortable")
			}
		})
	}
}

func TestFind(t *testing.T) {
	db := setupTestDB(t)
	res := postsResource(t, db)
	ctx := context.Background()

	rec, err := res.Find(ctx, "2")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec.Param("title") != "Alpha" {
		t.Errorf("title = %v, want Alpha", rec.Param("title"))
	}
	if rec.ID() != "2" {
		t.Errorf("ID = %q, want 2", rec.ID())
	}

	if _, err := res.Find(ctx, "999"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("Find(999) = %v, want ErrNotFound", err)
	}
}

func TestListSortAndPaginate(t *testing.T) {
	db := setupTestDB(t)
	res := postsResource(t, db)
	ctx := context.Background()

	records, err := res.List(ctx, ports.ListParams{SortBy: "title"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	titles := make([]string, len(records))
	for i, r := range records {
		titles[i] = r.Param("title").(string)
	}
	want := []string{"Alpha", "Bravo", "Charlie"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}

	page, err := res.List(ctx, ports.ListParams{SortBy: "views", Direction: "desc", Limit: 2})
	if err != nil {
		t.Fatalf("List paged: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("limit 2 returned %d records", len(page))
	}
	if page[0].Param("title") != "Charlie" {
		t.Errorf("first by views desc = %v, want Charlie", page[0].Param("title"))
	}

	rest, err := res.List(ctx, ports.ListParams{SortBy: "views", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List offset: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("offset 2 returned %d records, want 1", len(rest))
	}
}

func TestListRejectsUnknownSortColumn(t *testing.T) {
	db := setupTestDB(t)
	res := postsResource(t, db)

	_, err := res.List(context.Background(), ports.ListParams{SortBy: "title; DROP TABLE posts"})
	if err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestCount(t *testing.T) {
	db := setupTestDB(t)
	res := postsResource(t, db)

	n, err := res.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}
