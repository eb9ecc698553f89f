package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	DB         DBConfig
	Server     ServerConfig
	Redis      RedisConfig
	LLM        LLMConfig
	Logger     LoggerConfig
	Assessment AssessmentConfig
	Curriculum CurriculumConfig
}

type LoggerConfig struct {
	Env   string
	Level string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DBConfig selects the storage backend. Driver is "oracle" or "sqlite".
type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig configures the quiz content generator.
type LLMConfig struct {
	Provider          string // "ollama" or "openai"
	ServerURL         string
	Model             string
	APIKey            string
	GenerationTimeout time.Duration
}

// AssessmentConfig holds the grading and quiz policy knobs.
type AssessmentConfig struct {
	PretestRequiredDefault bool
	MainQuestions          int
	MainBonusQuestions     int
	RefresherQuestions     int
	DynamicQuestions       int
	MainTimeLimit          int // minutes, 0 means untimed
	RefresherTimeLimit     int
	DynamicTimeLimit       int
	QuizCacheTTL           time.Duration
	SessionIdleTimeout     time.Duration
}

type CurriculumConfig struct {
	Dir string
}

func setDefaults() {
	viper.SetDefault("env", "development")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "file:progression.db?_pragma=busy_timeout(5000)")
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.server", "http://localhost:11434")
	viper.SetDefault("llm.model", "qwen3:0.6b")
	viper.SetDefault("llm.generation_timeout", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("assessment.pretest_required_default", true)
	viper.SetDefault("assessment.main_questions", 8)
	viper.SetDefault("assessment.main_bonus_questions", 2)
	viper.SetDefault("assessment.refresher_questions", 5)
	viper.SetDefault("assessment.dynamic_questions", 6)
	viper.SetDefault("assessment.main_time_limit", 20)
	viper.SetDefault("assessment.refresher_time_limit", 0)
	viper.SetDefault("assessment.dynamic_time_limit", 15)
	viper.SetDefault("assessment.quiz_cache_ttl", 0)
	viper.SetDefault("assessment.session_idle_timeout", 120)
	viper.SetDefault("curriculum.dir", "./curriculum")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		viper.AddConfigPath(path)
	}
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Println("No config file found, using defaults and environment")
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Env: viper.GetString("env"),
		DB: DBConfig{
			Driver:   viper.GetString("db.driver"),
			DSN:      viper.GetString("db.dsn"),
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:          viper.GetString("llm.provider"),
			ServerURL:         viper.GetString("llm.server"),
			Model:             viper.GetString("llm.model"),
			APIKey:            viper.GetString("llm.api_key"),
			GenerationTimeout: viper.GetDuration("llm.generation_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("env"),
			Level: viper.GetString("logger.level"),
		},
		Assessment: AssessmentConfig{
			PretestRequiredDefault: viper.GetBool("assessment.pretest_required_default"),
			MainQuestions:          viper.GetInt("assessment.main_questions"),
			MainBonusQuestions:     viper.GetInt("assessment.main_bonus_questions"),
			RefresherQuestions:     viper.GetInt("assessment.refresher_questions"),
			DynamicQuestions:       viper.GetInt("assessment.dynamic_questions"),
			MainTimeLimit:          viper.GetInt("assessment.main_time_limit"),
			RefresherTimeLimit:     viper.GetInt("assessment.refresher_time_limit"),
			DynamicTimeLimit:       viper.GetInt("assessment.dynamic_time_limit"),
			QuizCacheTTL:           viper.GetDuration("assessment.quiz_cache_ttl") * time.Second,
			SessionIdleTimeout:     viper.GetDuration("assessment.session_idle_timeout") * time.Minute,
		},
		Curriculum: CurriculumConfig{
			Dir: viper.GetString("curriculum.dir"),
		},
	}

	// Override with environment variables if set
	if env := os.Getenv("ENV"); env != "" {
		config.Env = env
		config.Logger.Env = env
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		config.DB.DSN = dsn
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if dir := os.Getenv("CURRICULUM_DIR"); dir != "" {
		config.Curriculum.Dir = dir
	}

	return config, nil
}

// GetDSN returns the connection string for the configured driver.
// An explicit DSN wins over the discrete Oracle fields.
func (c *Config) GetDSN() string {
	if c.DB.DSN != "" && (c.DB.Driver != "oracle" || c.DB.Host == "") {
		return c.DB.DSN
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}

// TimeLimitFor returns the configured time limit in minutes for a quiz variant.
func (a AssessmentConfig) TimeLimitFor(variant string) int {
	switch variant {
	case "main":
		return a.MainTimeLimit
	case "refresher":
		return a.RefresherTimeLimit
	case "dynamic":
		return a.DynamicTimeLimit
	default:
		return 0
	}
}
