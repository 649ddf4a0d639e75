// Command main runs the database seeder for SkillSwap.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"
)

func main() {
	randomUsers := flag.Int("users", 0, "Number of extra random users to create")
	wipe := flag.Bool("wipe", true, "Wipe existing data before seeding")
	password := flag.String("password", "", "Password for all seeded users (default Password1234)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: demo marketplace + %d random users, wipe=%v\n", *randomUsers, *wipe)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		Wipe:        *wipe,
		RandomUsers: *randomUsers,
		Password:    *password,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
