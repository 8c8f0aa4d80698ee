package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/classtrack/attendance-backend/internal/config"
	"github.com/classtrack/attendance-backend/internal/database"
	"github.com/classtrack/attendance-backend/internal/logger"
	"github.com/classtrack/attendance-backend/internal/model"
	"github.com/classtrack/attendance-backend/internal/repository"
	"github.com/classtrack/attendance-backend/internal/service"
)

// Seeds a handful of students and two weeks of attendance so reports have
// something to chew on during development.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	studentService := service.NewStudentService(studentRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, nil, log)

	seed := []struct {
		name   string
		course string
	}{
		{"Alice Johnson", "CS101"},
		{"Bob Smith", "CS101"},
		{"Carol Davis", "MA205"},
		{"Dan Wright", "MA205"},
		{"Eve Martin", "PH330"},
	}

	fmt.Println("=== Seeding demo students ===")

	var ids []int64
	for _, s := range seed {
		student, err := studentService.Add(ctx, s.name, s.course)
		if err != nil {
			if errors.Is(err, service.ErrDuplicateName) {
				fmt.Printf("skip %s: already seeded\n", s.name)
				continue
			}
			log.Fatal().Err(err).Str("name", s.name).Msg("Failed to seed student")
		}
		ids = append(ids, student.ID)
		fmt.Printf("created %s (id %d)\n", student.Name, student.ID)
	}

	fmt.Println("=== Seeding two weeks of attendance ===")

	today := time.Now()
	recorded := 0
	for offset := 14; offset >= 1; offset-- {
		day := today.AddDate(0, 0, -offset)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		date := day.Format(model.DateFormat)
		for i, id := range ids {
			status := model.StatusPresent
			// Make every third mark an absence so percentages are not flat.
			if (offset+i)%3 == 0 {
				status = model.StatusAbsent
			}
			if _, err := attendanceService.Record(ctx, id, date, status); err != nil {
				log.Fatal().Err(err).Int64("student_id", id).Str("date", date).Msg("Failed to seed attendance")
			}
			recorded++
		}
	}

	fmt.Printf("=== Done: %d students, %d attendance records ===\n", len(ids), recorded)
}
