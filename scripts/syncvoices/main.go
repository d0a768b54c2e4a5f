package main

import (
	"context"
	"log"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scrumscribe-team/scrumscribe/internal/domain/entities"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/database"
	"github.com/scrumscribe-team/scrumscribe/internal/infrastructure/storage"
	"github.com/scrumscribe-team/scrumscribe/pkg/config"
)

const voicePrefix = "voices/"

// Registers one user per intro voice sample found in object storage.
// Sample naming convention: voices/intro_<name>.mp3 maps to a user with
// display name <Name>. Existing users keep their Jira account id.
func main() {
	log.Println("🚀 Starting voice sample sync...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("📦 Connecting to MinIO...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx := context.Background()
	objects, err := minioClient.ListRecordings(ctx, voicePrefix)
	if err != nil {
		log.Fatalf("Failed to list voice samples: %v", err)
	}

	titler := cases.Title(language.English)
	synced := 0
	for _, object := range objects {
		base := path.Base(object)
		if !strings.HasPrefix(base, "intro_") {
			continue
		}
		name := strings.TrimPrefix(base, "intro_")
		name = strings.TrimSuffix(name, path.Ext(name))
		if name == "" {
			continue
		}
		displayName := titler.String(strings.ReplaceAll(name, "_", " "))

		var user entities.User
		result := db.Where("display_name = ?", displayName).First(&user)
		if result.Error == nil {
			if user.VoiceSampleURL == nil || *user.VoiceSampleURL != object {
				sample := object
				db.Model(&user).Update("voice_sample_url", sample)
				log.Printf("🔄 Updated voice sample for %s: %s", displayName, object)
			}
			continue
		}

		sample := object
		user = entities.User{
			DisplayName:    displayName,
			VoiceSampleURL: &sample,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", displayName, err)
			continue
		}
		log.Printf("✅ Created user %s with voice sample %s", displayName, object)
		synced++
	}

	log.Printf("✅ Voice sync complete (%d new user(s))", synced)
}
