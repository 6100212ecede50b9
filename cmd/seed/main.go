package main

import (
	"context"
	"os"

	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/database"
	"github.com/lshigami/examprep/internal/logger"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/seed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	logger.Init()

	pflag.String("seed-dir", "./seeds", "directory holding the question bank files")
	pflag.String("manifest", "", "optional YAML/JSON file listing subjects under 'subjects'")
	pflag.String("demo-password", "password123", "password set on the demo accounts")
	pflag.Bool("reset", true, "delete existing attempts, questions and tests before seeding")
	pflag.Bool("users-only", false, "only upsert the demo accounts")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind flags")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(&model.User{}, &model.Test{}, &model.Question{}, &model.Attempt{}); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}

	ctx := context.Background()
	seeder := seed.NewSeeder(db)

	log.Info().Msg("Seeding demo users...")
	if err := seeder.UpsertUsers(ctx, seed.DemoUsers(), viper.GetString("demo-password")); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed users")
	}
	if viper.GetBool("users-only") {
		return
	}

	subjects, err := loadManifest(viper.GetString("manifest"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read manifest")
	}

	if viper.GetBool("reset") {
		log.Info().Msg("Clearing existing data (attempts, questions, tests)...")
		if err := seeder.ResetContent(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to clear content")
		}
	}

	total := 0
	dir := viper.GetString("seed-dir")
	for _, subject := range subjects {
		n, err := seeder.SeedSubject(ctx, dir, subject)
		if err != nil {
			log.Error().Err(err).Str("subject", subject.Name).Msg("Seed failed")
			os.Exit(1)
		}
		total += n
	}
	log.Info().Int("tests", total).Msg("Seeding complete")
}

func loadManifest(path string) ([]seed.Subject, error) {
	if path == "" {
		return seed.DefaultSubjects, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var subjects []seed.Subject
	if err := v.UnmarshalKey("subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}
