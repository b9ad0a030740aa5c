// Command main runs the database seeder for Agora.
package main

import (
	"flag"
	"log"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	populate := flag.Int("populate", 0, "additionally create N random users with posts and comments")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	if *populate > 0 {
		log.Printf("Populating %d random users...", *populate)
		if err := seed.Populate(db, *populate); err != nil {
			log.Fatalf("❌ Populate failed: %v", err)
		}
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
	log.Println("📧 All demo users have the password: password123")
}
