package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"wordarena/internal/config"
	"wordarena/internal/database"
	"wordarena/internal/repository"
	"wordarena/internal/service"
	"wordarena/internal/validation"
)

func main() {
	// Define subcommands
	addWordCmd := flag.NewFlagSet("addword", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	promoteCmd := flag.NewFlagSet("promote", flag.ExitOnError)
	registrationCmd := flag.NewFlagSet("registration", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: export_YYYYMMDD_HHMMSS.json)")
	promoteUsername := promoteCmd.String("username", "", "Username to promote to administrator (required)")
	demote := promoteCmd.Bool("demote", false, "Revoke administrator rights instead")
	registrationOpen := registrationCmd.Bool("open", false, "Open account registration")
	registrationClosed := registrationCmd.Bool("closed", false, "Close account registration")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	wordRepo := repository.NewWordRepository(db)
	gameRepo := repository.NewGameRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	switch os.Args[1] {
	case "seed":
		handleSeed(wordRepo)

	case "addword":
		addWordCmd.Parse(os.Args[2:])
		if addWordCmd.NArg() == 0 {
			fmt.Println("Error: at least one word is required")
			os.Exit(1)
		}
		handleAddWords(wordRepo, addWordCmd.Args())

	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(service.NewExportService(userRepo, wordRepo, gameRepo), *exportOutput)

	case "promote":
		promoteCmd.Parse(os.Args[2:])
		if *promoteUsername == "" {
			fmt.Println("Error: -username flag is required")
			promoteCmd.PrintDefaults()
			os.Exit(1)
		}
		handlePromote(userRepo, *promoteUsername, !*demote)

	case "registration":
		registrationCmd.Parse(os.Args[2:])
		if *registrationOpen == *registrationClosed {
			fmt.Println("Error: exactly one of -open or -closed is required")
			registrationCmd.PrintDefaults()
			os.Exit(1)
		}
		handleRegistration(settingsRepo, *registrationOpen)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleSeed(wordRepo *repository.WordRepository) {
	added, err := wordRepo.SeedDefaultWords()
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	if added == 0 {
		log.Println("Word pool already seeded, nothing to do")
		return
	}
	log.Printf("Seeded word pool with %d words", added)
}

func handleAddWords(wordRepo *repository.WordRepository, words []string) {
	added := 0
	for _, raw := range words {
		word := validation.NormalizeGuess(raw)
		if err := validation.ValidatePoolWord(word); err != nil {
			log.Printf("Skipping %q: %v", raw, err)
			continue
		}

		existing, err := wordRepo.GetWordByText(word)
		if err != nil {
			log.Fatalf("Failed to check word %s: %v", word, err)
		}
		if existing != nil {
			log.Printf("Skipping %s: already in pool", word)
			continue
		}

		if _, err := wordRepo.CreateWord(word); err != nil {
			log.Fatalf("Failed to add word %s: %v", word, err)
		}
		log.Printf("Added word: %s", word)
		added++
	}
	log.Printf("Done, %d word(s) added", added)
}

func handleExport(exportService *service.ExportService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("export_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	log.Printf("Exporting game data to: %s", outputPath)
	if err := exportService.Export(file); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f KB", float64(fileInfo.Size())/1024)
}

func handlePromote(userRepo *repository.UserRepository, username string, isAdmin bool) {
	user, err := userRepo.GetUserByUsername(username)
	if err != nil {
		log.Fatalf("Failed to look up user: %v", err)
	}
	if user == nil {
		log.Fatalf("User not found: %s", username)
	}

	if err := userRepo.SetAdmin(user.ID, isAdmin); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if isAdmin {
		log.Printf("User %s is now an administrator", username)
	} else {
		log.Printf("User %s is no longer an administrator", username)
	}
}

func handleRegistration(settingsRepo *repository.SettingsRepository, open bool) {
	if err := settingsRepo.SetRegistrationOpen(open); err != nil {
		log.Fatalf("Failed to update registration setting: %v", err)
	}
	if open {
		log.Println("Account registration is now open")
	} else {
		log.Println("Account registration is now closed")
	}
}

func printUsage() {
	fmt.Println("WordArena Admin Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  admin seed                      Seed the word pool with the default words")
	fmt.Println("  admin addword WORD [WORD...]    Add words to the pool")
	fmt.Println("  admin export [options]          Export game data to a JSON file")
	fmt.Println("  admin promote [options]         Grant or revoke administrator rights")
	fmt.Println("  admin registration [options]    Open or close account registration")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: export_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Promote Options:")
	fmt.Println("  -username <name>  Username to promote (required)")
	fmt.Println("  -demote           Revoke administrator rights instead")
	fmt.Println()
	fmt.Println("Registration Options:")
	fmt.Println("  -open             Open account registration")
	fmt.Println("  -closed           Close account registration")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  admin seed")
	fmt.Println("  admin addword CRANE SLATE")
	fmt.Println("  admin export -output words.json")
	fmt.Println("  admin promote -username alice")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH    SQLite database path (default: ./wordarena.db)")
	fmt.Println("  DB_URL     PostgreSQL or MySQL connection URL")
}
