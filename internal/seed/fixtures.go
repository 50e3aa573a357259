package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"atelier/internal/domain/models"
	"atelier/internal/domain/repositories"

	"github.com/google/uuid"
)

// Fixtures is the YAML shape the seed command consumes.
type Fixtures struct {
	Users    []UserFixture    `yaml:"users"`
	Projects []ProjectFixture `yaml:"projects"`
}

type UserFixture struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type ProjectFixture struct {
	Owner       string   `yaml:"owner"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Visibility  string   `yaml:"visibility"`
	Archived    bool     `yaml:"archived"`
	Members     []string `yaml:"members"`
}

// Load reads fixtures from a YAML file.
func Load(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	return &fixtures, nil
}

// Default returns a small development data set: one user of each role in
// the visibility rules (owner, member, outsider) and one project per tier.
func Default() *Fixtures {
	return &Fixtures{
		Users: []UserFixture{
			{ID: "usr-alice", Name: "Alice"},
			{ID: "usr-bob", Name: "Bob"},
			{ID: "usr-carol", Name: "Carol"},
		},
		Projects: []ProjectFixture{
			{
				Owner:       "usr-alice",
				Title:       "Launch checklist",
				Description: "Public release prep",
				Visibility:  "public",
				Members:     []string{"usr-bob"},
			},
			{
				Owner:       "usr-alice",
				Title:       "Hiring notes",
				Description: "Internal coordination",
				Visibility:  "internal",
			},
			{
				Owner:       "usr-bob",
				Title:       "Side experiments",
				Description: "Private scratchpad",
				Visibility:  "private",
			},
			{
				Owner:       "usr-bob",
				Title:       "Retired prototype",
				Description: "Kept around for restore testing",
				Visibility:  "private",
				Archived:    true,
			},
		},
	}
}

// Apply writes the fixtures through the repositories. Users are created
// first so project owner references resolve.
func (f *Fixtures) Apply(ctx context.Context, users repositories.UserRepository, projects repositories.ProjectRepository) error {
	now := time.Now()

	for _, u := range f.Users {
		user := &models.User{
			ID:        u.ID,
			Name:      u.Name,
			CreatedAt: now,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, p := range f.Projects {
		visibility := models.Visibility(p.Visibility)
		if visibility == "" {
			visibility = models.VisibilityPrivate
		}
		if !visibility.Valid() {
			return fmt.Errorf("seed project %q: invalid visibility %q", p.Title, p.Visibility)
		}

		project := &models.Project{
			ID:          uuid.NewString(),
			OwnerID:     p.Owner,
			Title:       p.Title,
			Description: p.Description,
			Visibility:  visibility,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := projects.Create(ctx, project); err != nil {
			return fmt.Errorf("seed project %q: %w", p.Title, err)
		}

		for _, member := range p.Members {
			if err := projects.AddMember(ctx, project.ID, member); err != nil {
				return fmt.Errorf("seed member %s on %q: %w", member, p.Title, err)
			}
		}

		if p.Archived {
			if _, err := projects.Archive(ctx, project.ID); err != nil {
				return fmt.Errorf("seed archive %q: %w", p.Title, err)
			}
		}
	}

	return nil
}
