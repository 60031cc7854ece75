package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"courseapi/internal/app"
	"courseapi/internal/config"
	"courseapi/internal/db"
	apperrors "courseapi/internal/errors"
	"courseapi/internal/logger"
	"courseapi/internal/model"
)

//go:embed seed.json
var seedData []byte

// SeedUser represents one user entry of seed.json with the courses it owns.
type SeedUser struct {
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	EmailAddress string       `json:"emailAddress"`
	Password     string       `json:"password"`
	Courses      []SeedCourse `json:"courses"`
}

type SeedCourse struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	log.Info("Starting seed script...")

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database migrations completed")

	users, err := parseSeed(seedData)
	if err != nil {
		log.Error("Failed to parse seed data", "error", err)
		os.Exit(1)
	}

	a := app.New(cfg, gormDB, nil)
	created, skipped, courses, err := seed(context.Background(), a, users)
	if err != nil {
		log.Error("Failed to seed", "error", err)
		os.Exit(1)
	}

	log.Info("Seed completed successfully!",
		"users_created", created,
		"users_skipped", skipped,
		"courses_created", courses,
	)
}

func parseSeed(data []byte) ([]SeedUser, error) {
	var doc struct {
		Users []SeedUser `json:"users"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc.Users, nil
}

// seed registers every user through the user service and creates their
// courses. Users whose email already exists are skipped with their courses.
func seed(ctx context.Context, a *app.App, users []SeedUser) (created, skipped, courses int, err error) {
	for _, u := range users {
		user, err := a.Users.Register(ctx, u.FirstName, u.LastName, u.EmailAddress, u.Password)
		if errors.Is(err, apperrors.ErrEmailTaken) {
			slog.Info("Skipping existing user", "email", u.EmailAddress)
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, courses, fmt.Errorf("error creating user %s: %w", u.EmailAddress, err)
		}
		created++

		for _, c := range u.Courses {
			course := &model.Course{
				Title:           c.Title,
				Description:     c.Description,
				EstimatedTime:   c.EstimatedTime,
				MaterialsNeeded: c.MaterialsNeeded,
			}
			if _, err := a.Courses.CreateCourse(ctx, user.ID, course); err != nil {
				return created, skipped, courses, fmt.Errorf("error creating course %q: %w", c.Title, err)
			}
			courses++
		}
	}
	return created, skipped, courses, nil
}
