package main

import (
	"fmt"
	"log"
	"os"

	"eko-football-api/config"
	"eko-football-api/fixtures"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	fixtureManager := fixtures.NewFixtures(config.DB)

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "generate":
		if err := fixtureManager.GenerateTestData(); err != nil {
			log.Fatal("Failed to generate fixtures:", err)
		}
		fmt.Println("✅ Fixtures generated successfully!")
	case "clear":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.Fatal("Failed to clear fixtures:", err)
		}
		fmt.Println("✅ All fixture data cleared!")
	case "regenerate":
		fmt.Println("Clearing existing data...")
		if err := fixtureManager.ClearAllData(); err != nil {
			log.Fatal("Failed to clear fixtures:", err)
		}
		fmt.Println("Generating new fixtures...")
		if err := fixtureManager.GenerateTestData(); err != nil {
			log.Fatal("Failed to generate fixtures:", err)
		}
		fmt.Println("✅ Fixtures regenerated successfully!")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Seed 21 members and a demo matchday")
	fmt.Println("  go run ./cmd/fixtures clear       - Clear all seeded data")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and reseed")
}
