package memory

import (
	"fmt"
	"time"

	"github.com/artpar/admingate/adapters/idgen"
	"github.com/artpar/admingate/ports"
)

// NewDemoAdapter returns an adapter pre-seeded with a small blog
// dataset. The memory driver serves this, so a panel configured
// without a real database still has something to show.
func NewDemoAdapter() (*Adapter, error) {
	gen := idgen.UUID{}

	users := NewResource("users", "user", "demo", []PropertySpec{
		{Name: "id", IsID: true, IsSortable: true},
		{Name: "name", IsTitle: true, IsSortable: true},
		{Name: "email", IsSortable: true},
		{Name: "role"},
		{Name: "created_at", Type: ports.PropertyTypeDatetime, IsSortable: true},
	}, gen)

	posts := NewResource("posts", "post", "demo", []PropertySpec{
		{Name: "id", IsID: true, IsSortable: true},
		{Name: "title", IsTitle: true, IsSortable: true},
		{Name: "body"},
		{Name: "published", Type: ports.PropertyTypeBoolean, IsSortable: true},
		{Name: "created_at", Type: ports.PropertyTypeDatetime, IsSortable: true},
	}, gen)

	now := time.Now().UTC().Format(time.RFC3339)
	seed := []struct {
		res    *Resource
		params map[string]any
	}{
		{users, map[string]any{"name": "Ada Lovelace", "email": "ada@example.com", "role": "admin", "created_at": now}},
		{users, map[string]any{"name": "Grace Hopper", "email": "grace@example.com", "role": "editor", "created_at": now}},
		{users, map[string]any{"name": "Alan Turing", "email": "alan@example.com", "role": "viewer", "created_at": now}},
		{posts, map[string]any{"title": "Hello, admingate", "body": "The demo dataset is served from memory.", "published": true, "created_at": now}},
		{posts, map[string]any{"title": "Configuring resources", "body": "Override names and visibility in admingate.yaml.", "published": true, "created_at": now}},
		{posts, map[string]any{"title": "Draft notes", "body": "Unpublished scratch post.", "published": false, "created_at": now}},
	}
	for _, s := range seed {
		if _, err := s.res.AddRecord(s.params); err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.res.ID(), err)
		}
	}

	a := NewAdapter()
	a.AddResource(users)
	a.AddResource(posts)
	return a, nil
}
