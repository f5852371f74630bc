// Package seed loads the built-in bartending curriculum into an empty
// catalog so a fresh install has something to study.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
)

//go:embed curriculum.json
var seedFS embed.FS

// Catalog is the on-disk seed format.
type Catalog struct {
	Modules []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Position    int    `json:"position"`
		Lessons     []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Position int    `json:"position"`
			Items    []struct {
				ID         string   `json:"id"`
				Type       string   `json:"type"`
				Prompt     string   `json:"prompt"`
				Answer     string   `json:"answer"`
				Difficulty float64  `json:"difficulty"`
				Tags       []string `json:"tags"`
			} `json:"items"`
		} `json:"lessons"`
	} `json:"modules"`
}

// Load imports the curriculum when the catalog is empty. A custom seed file
// path overrides the embedded one.
func Load(ctx context.Context, content repository.ContentRepository, path string) error {
	log := logger.FromContext(ctx).WithPrefix("seed")

	count, err := content.CountItems(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("catalog already populated (%d items), skipping seed", count)
		return nil
	}

	data, err := readSeed(path)
	if err != nil {
		return err
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	var (
		modules []models.Module
		lessons []models.Lesson
		items   []models.Item
	)
	for _, m := range catalog.Modules {
		modules = append(modules, models.Module{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Position:    m.Position,
		})
		for _, l := range m.Lessons {
			lessons = append(lessons, models.Lesson{
				ID:       l.ID,
				ModuleID: m.ID,
				Title:    l.Title,
				Position: l.Position,
			})
			for _, item := range l.Items {
				exerciseType := models.ExerciseType(item.Type)
				if !exerciseType.Valid() {
					return fmt.Errorf("seed item %s has unknown type %q", item.ID, item.Type)
				}
				items = append(items, models.Item{
					ID:         item.ID,
					LessonID:   l.ID,
					Type:       exerciseType,
					Prompt:     item.Prompt,
					Answer:     item.Answer,
					Difficulty: item.Difficulty,
					Tags:       item.Tags,
				})
			}
		}
	}

	if err := content.ImportCatalog(ctx, modules, lessons, items); err != nil {
		return err
	}
	log.Info("seeded catalog: %d modules, %d lessons, %d items", len(modules), len(lessons), len(items))
	return nil
}

func readSeed(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return seedFS.ReadFile("curriculum.json")
}
