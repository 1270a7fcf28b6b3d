package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rhyrak/exam-schedule/internal/csvio"
	"github.com/rhyrak/exam-schedule/pkg/model"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the process-level configuration: input/output locations, the
// solver tunables, and the HTTP and logging settings.
type Config struct {
	Env  string
	Port int

	Input  InputConfig
	Output OutputConfig
	Solver model.SchedulerConfig
	Log    LogConfig
}

// InputConfig locates the input tables. PriorityFile and MachineDaysFile are
// optional.
type InputConfig struct {
	CoursesFile     string
	StudentsFile    string
	CohortsFile     string
	DaysFile        string
	ShiftsFile      string
	RoomsFile       string
	PriorityFile    string
	MachineDaysFile string
	Delimiter       rune
}

type OutputConfig struct {
	ScheduleFile   string
	StudentsFile   string
	ViolationsFile string
}

type LogConfig struct {
	Level  string
	Format string
}

// Paths converts the input locations to the loader's form.
func (c InputConfig) Paths() csvio.Paths {
	return csvio.Paths{
		Courses:     c.CoursesFile,
		Students:    c.StudentsFile,
		Cohorts:     c.CohortsFile,
		Days:        c.DaysFile,
		Shifts:      c.ShiftsFile,
		Rooms:       c.RoomsFile,
		Priority:    c.PriorityFile,
		MachineDays: c.MachineDaysFile,
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	delim := v.GetString("CSV_DELIMITER")
	if delim == "" {
		delim = ";"
	}
	cfg.Input = InputConfig{
		CoursesFile:     v.GetString("COURSES_FILE"),
		StudentsFile:    v.GetString("STUDENTS_FILE"),
		CohortsFile:     v.GetString("COHORTS_FILE"),
		DaysFile:        v.GetString("DAYS_FILE"),
		ShiftsFile:      v.GetString("SHIFTS_FILE"),
		RoomsFile:       v.GetString("ROOMS_FILE"),
		PriorityFile:    v.GetString("PRIORITY_FILE"),
		MachineDaysFile: v.GetString("MACHINE_DAYS_FILE"),
		Delimiter:       rune(delim[0]),
	}

	cfg.Output = OutputConfig{
		ScheduleFile:   v.GetString("SCHEDULE_OUT"),
		StudentsFile:   v.GetString("STUDENTS_OUT"),
		ViolationsFile: v.GetString("VIOLATIONS_OUT"),
	}

	cfg.Solver = model.SchedulerConfig{
		MaxGroupsPerSlot:      v.GetInt("MAX_GROUPS_PER_SLOT"),
		StudentNoClash:        v.GetBool("STUDENT_NO_CLASH"),
		CohortSameDayHard:     v.GetBool("COHORT_SAME_DAY_HARD"),
		ConsecutiveDayPenalty: v.GetInt("CONSECUTIVE_DAY_PENALTY"),
		PhaseTimeout:          parseDuration(v.GetString("PHASE_TIMEOUT"), 60*time.Second),
		Workers:               v.GetInt("SOLVER_WORKERS"),
		DistributeUniformly:   v.GetBool("DISTRIBUTE_UNIFORMLY"),
		SplitThreshold:        v.GetInt("SPLIT_THRESHOLD"),
		SplitMinDayGap:        v.GetInt("SPLIT_MIN_DAY_GAP"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("CSV_DELIMITER", ";")
	v.SetDefault("COURSES_FILE", "data/courses.csv")
	v.SetDefault("STUDENTS_FILE", "data/students.csv")
	v.SetDefault("COHORTS_FILE", "data/cohorts.csv")
	v.SetDefault("DAYS_FILE", "data/days.csv")
	v.SetDefault("SHIFTS_FILE", "data/shifts.csv")
	v.SetDefault("ROOMS_FILE", "data/rooms.csv")
	v.SetDefault("PRIORITY_FILE", "")
	v.SetDefault("MACHINE_DAYS_FILE", "")

	v.SetDefault("SCHEDULE_OUT", "out/schedule.csv")
	v.SetDefault("STUDENTS_OUT", "out/students_out.csv")
	v.SetDefault("VIOLATIONS_OUT", "out/violations.csv")

	def := model.DefaultSchedulerConfig()
	v.SetDefault("MAX_GROUPS_PER_SLOT", def.MaxGroupsPerSlot)
	v.SetDefault("STUDENT_NO_CLASH", def.StudentNoClash)
	v.SetDefault("COHORT_SAME_DAY_HARD", def.CohortSameDayHard)
	v.SetDefault("CONSECUTIVE_DAY_PENALTY", def.ConsecutiveDayPenalty)
	v.SetDefault("PHASE_TIMEOUT", "60s")
	v.SetDefault("SOLVER_WORKERS", def.Workers)
	v.SetDefault("DISTRIBUTE_UNIFORMLY", def.DistributeUniformly)
	v.SetDefault("SPLIT_THRESHOLD", def.SplitThreshold)
	v.SetDefault("SPLIT_MIN_DAY_GAP", def.SplitMinDayGap)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
