package main

import (
	"context"
	"fmt"
	"os"

	"quiz-progression/internal/config"
	"quiz-progression/internal/database"
	"quiz-progression/internal/domain"
	"quiz-progression/internal/logger"
	"quiz-progression/internal/repository"
	"quiz-progression/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// seedFile lists per-course settings and pretests.
type seedFile struct {
	Courses []seedCourse `yaml:"courses"`
}

type seedCourse struct {
	CourseID        string       `yaml:"course_id"`
	PretestRequired *bool        `yaml:"pretest_required"`
	Pretest         *seedPretest `yaml:"pretest"`
}

type seedPretest struct {
	Title            string            `yaml:"title"`
	TimeLimitMinutes *int              `yaml:"time_limit_minutes"`
	Questions        []domain.Question `yaml:"questions"`
}

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load course settings and pretests from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		return run(cmd.Context(), path)
	},
}

func init() {
	rootCmd.Flags().String("file", "seed/pretests.yaml", "Path to the seed YAML file")
}

func run(ctx context.Context, path string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Get()

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	pretests := service.NewPretestService(
		repository.NewPretestRepository(db),
		repository.NewPretestAttemptRepository(db),
		repository.NewCourseSettingsRepository(db),
		nil,
		cfg.Assessment,
	)

	tm := repository.NewTransactionManagerAdapter(db)
	for _, c := range seed.Courses {
		err := tm.WithTransaction(ctx, func(txCtx context.Context) error {
			return seedCourseData(txCtx, pretests, c)
		})
		if err != nil {
			log.Error("Error seeding course, transaction rolled back", zap.String("course_id", c.CourseID), zap.Error(err))
			return err
		}
		log.Info("Seeded course", zap.String("course_id", c.CourseID))
	}
	log.Info("Seeding completed", zap.Int("courses", len(seed.Courses)))
	return nil
}

func seedCourseData(ctx context.Context, pretests service.PretestService, c seedCourse) error {
	if c.PretestRequired != nil {
		if err := pretests.SaveCourseSettings(ctx, &domain.CourseSettings{CourseID: c.CourseID, PretestRequired: *c.PretestRequired}); err != nil {
			return fmt.Errorf("course %s settings: %w", c.CourseID, err)
		}
	}
	if c.Pretest == nil {
		return nil
	}
	p := &domain.Pretest{
		CourseID:         c.CourseID,
		Title:            c.Pretest.Title,
		Questions:        c.Pretest.Questions,
		TimeLimitMinutes: c.Pretest.TimeLimitMinutes,
	}
	if err := pretests.SavePretest(ctx, p); err != nil {
		return fmt.Errorf("course %s pretest: %w", c.CourseID, err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
