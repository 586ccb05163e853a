package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/27serj23/schoolreg/internal/config"
	"github.com/27serj23/schoolreg/internal/database"
	"github.com/27serj23/schoolreg/internal/logging"
	"github.com/27serj23/schoolreg/internal/model"
	"github.com/27serj23/schoolreg/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	dbPath    string
	verbosity int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "schoolreg",
		Short:        "Schoolreg - student and course registry",
		Long:         `Schoolreg manages students, courses and enrollments in a local SQLite database.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./school.db", "SQLite database path (or set DB_PATH env var)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(
		versionCmd(),
		seedCmd(),
		statsCmd(),
		studentsCmd(),
		coursesCmd(),
		enrollCmd(),
		maintainCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openService opens the database, runs migrations, and wires logging
// from the settings table. The caller owns the returned close func.
func openService() (*service.Service, func(), error) {
	if dbPath == "./school.db" {
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			dbPath = envDB
		}
	}

	setupLogging(verbosity)

	db, err := database.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := db.InitializeDefaults(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize default settings: %w", err)
	}

	// Settings can raise but never lower the verbosity chosen on the
	// command line.
	loader := config.NewLoader(db)
	if verbosity == 0 {
		logging.Apply(loader.String("log.level", "info"), loader, logging.FilePathForDB(dbPath))
	}

	return service.New(db), func() { db.Close() }, nil
}

func setupLogging(verbosity int) {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}

	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default: // 2+
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("schoolreg %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo fixture into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openService()
			if err != nil {
				return err
			}
			defer closeDB()
			return svc.Seed()
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show student and course counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openService()
			if err != nil {
				return err
			}
			defer closeDB()

			stats, err := svc.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("students: %d\ncourses: %d\n", stats.Students, stats.Courses)
			return nil
		},
	}
}

func studentsCmd() *cobra.Command {
	var city string
	var olderThan int
	var course string

	cmd := &cobra.Command{
		Use:   "students",
		Short: "List students, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openService()
			if err != nil {
				return err
			}
			defer closeDB()

			var students []model.Student
			switch {
			case course != "":
				students, err = svc.StudentsOnCourse(course, city)
			case city != "":
				students, err = svc.StudentsByCity(city)
			case olderThan > 0:
				students, err = svc.StudentsOlderThan(olderThan)
			default:
				students, err = svc.Students()
			}
			if err != nil {
				return err
			}

			printStudents(students)
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "Only students from this city")
	cmd.Flags().IntVar(&olderThan, "older-than", 0, "Only students strictly older than this age")
	cmd.Flags().StringVar(&course, "course", "", "Only students enrolled on this course (combines with --city)")
	return cmd
}

func coursesCmd() *cobra.Command {
	var studentID int64

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List courses, optionally for one student",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openService()
			if err != nil {
				return err
			}
			defer closeDB()

			var courses []model.Course
			if studentID > 0 {
				courses, err = svc.CoursesForStudent(studentID)
			} else {
				courses, err = svc.Courses()
			}
			if err != nil {
				return err
			}

			printCourses(courses)
			return nil
		},
	}

	cmd.Flags().Int64Var(&studentID, "student", 0, "Only courses this student is enrolled on")
	return cmd
}

func enrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <course-id> <student-id>...",
		Short: "Enroll one or more students on a course (best effort)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course id %q: %w", args[0], err)
			}
			studentIDs := make([]int64, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid student id %q: %w", arg, err)
				}
				studentIDs = append(studentIDs, id)
			}

			svc, closeDB, err := openService()
			if err != nil {
				return err
			}
			defer closeDB()

			report, err := svc.EnrollStudents(studentIDs, courseID)
			if err != nil {
				return err
			}

			fmt.Printf("enrolled: %v\n", report.Successful)
			if len(report.AlreadyEnrolled) > 0 {
				fmt.Printf("already enrolled: %v\n", report.AlreadyEnrolled)
			}
			for _, failure := range report.Failures {
				fmt.Printf("failed: student %d: %v\n", failure.StudentID, failure.Err)
			}
			return nil
		},
	}
}

func maintainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Run database maintenance (optimize, vacuum)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "./school.db" {
				if envDB := os.Getenv("DB_PATH"); envDB != "" {
					dbPath = envDB
				}
			}
			setupLogging(verbosity)

			db, err := database.New(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(); err != nil {
				return err
			}

			loader := config.NewLoader(db)
			if loader.Bool("maintenance.optimize", true) {
				if err := db.Optimize(); err != nil {
					return err
				}
				log.Info().Msg("Database optimized")
			}
			if loader.Bool("maintenance.vacuum", true) {
				if err := db.Vacuum(); err != nil {
					return err
				}
				log.Info().Msg("Database vacuumed")
			}
			return nil
		},
	}
}

func printStudents(students []model.Student) {
	if len(students) == 0 {
		fmt.Println("no students")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSURNAME\tAGE\tCITY")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Surname, s.Age, s.City)
	}
	w.Flush()
}

func printCourses(courses []model.Course) {
	if len(courses) == 0 {
		fmt.Println("no courses")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTART\tEND")
	for _, c := range courses {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.TimeStart, c.TimeEnd)
	}
	w.Flush()
}
