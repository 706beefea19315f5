package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ServerConfig defines the local HTTP bridge configuration.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// AnalyzerConfig defines how the external analyzer script is launched.
type AnalyzerConfig struct {
	Interpreter  string `yaml:"interpreter" mapstructure:"interpreter"`
	Script       string `yaml:"script" mapstructure:"script"`
	BatchWorkers int    `yaml:"batch_workers" mapstructure:"batch_workers"`
	MaxFileSize  int64  `yaml:"max_file_size" mapstructure:"max_file_size"`
}

// OllamaConfig defines the model-serving configuration.
type OllamaConfig struct {
	CLI             string `yaml:"cli" mapstructure:"cli"`
	Host            string `yaml:"host" mapstructure:"host"`
	Model           string `yaml:"model" mapstructure:"model"`
	MaxPromptLength int    `yaml:"max_prompt_length" mapstructure:"max_prompt_length"`
}

// LoggingConfig defines the logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Analyzer AnalyzerConfig `yaml:"analyzer" mapstructure:"analyzer"`
	Ollama   OllamaConfig   `yaml:"ollama" mapstructure:"ollama"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// EnvPrefix is prepended to every environment override, e.g. PATCHPILOT_OLLAMA_HOST.
const EnvPrefix = "PATCHPILOT"

// AppConfig holds the loaded configuration.
var AppConfig *Config

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:        8765,
			CORSOrigins: []string{"*"},
		},
		Analyzer: AnalyzerConfig{
			Interpreter:  "python3",
			Script:       "./backend/processor.py",
			BatchWorkers: 1,
			MaxFileSize:  150000,
		},
		Ollama: OllamaConfig{
			CLI:             "ollama",
			Host:            "http://127.0.0.1:11434",
			Model:           "codellama:7b-instruct",
			MaxPromptLength: 7500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("analyzer.interpreter", d.Analyzer.Interpreter)
	v.SetDefault("analyzer.script", d.Analyzer.Script)
	v.SetDefault("analyzer.batch_workers", d.Analyzer.BatchWorkers)
	v.SetDefault("analyzer.max_file_size", d.Analyzer.MaxFileSize)
	v.SetDefault("ollama.cli", d.Ollama.CLI)
	v.SetDefault("ollama.host", d.Ollama.Host)
	v.SetDefault("ollama.model", d.Ollama.Model)
	v.SetDefault("ollama.max_prompt_length", d.Ollama.MaxPromptLength)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
}

// LoadConfig loads the configuration and stores it in AppConfig.
// An empty configPath looks for "config.yaml" in the current working directory;
// a missing default file is not an error, a missing explicit file is.
func LoadConfig(configPath string) error {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("could not decode config: %w", err)
	}

	AppConfig = &cfg
	return nil
}

// WriteDefault writes the built-in configuration as YAML to path.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file '%s' already exists", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("could not encode default config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
