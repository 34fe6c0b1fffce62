package nexus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ConfigError represents a configuration loading failure
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeInvalidType  = "CONFIG_INVALID_TYPE"
	ErrCodeDotEnv       = "CONFIG_DOTENV_FAILED"
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
)

// Validator handles configuration validation
type Validator interface {
	Validate(ctx context.Context, cfg interface{}) error
}

// LoaderOptions contains configuration for the loader
type LoaderOptions struct {
	DotEnvFiles     []string
	FileName        string
	OnlyEnvironment bool
	Defaults        interface{}
	Validator       Validator
}

// LoaderOption is a functional option for configuring the loader
type LoaderOption func(*LoaderOptions)

// WithDotEnv sets the dotenv files exported into the environment before
// reading. Missing files are skipped.
func WithDotEnv(files ...string) LoaderOption {
	return func(o *LoaderOptions) {
		o.DotEnvFiles = files
	}
}

// WithFileName reads a yaml, json, toml or env file before the environment.
func WithFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileName = fileName
	}
}

// WithOnlyEnvironment ignores any configuration file.
func WithOnlyEnvironment() LoaderOption {
	return func(o *LoaderOptions) {
		o.OnlyEnvironment = true
		o.FileName = ""
	}
}

// WithDefaults fills every field still zero after loading from defaults,
// which must be the same pointer type as the target.
func WithDefaults(defaults interface{}) LoaderOption {
	return func(o *LoaderOptions) {
		o.Defaults = defaults
	}
}

// WithValidator sets a custom validator
func WithValidator(v Validator) LoaderOption {
	return func(o *LoaderOptions) {
		o.Validator = v
	}
}

// Loader reads configuration from dotenv files, an optional config file and
// the process environment, in that order of increasing precedence.
type Loader struct {
	options LoaderOptions
}

func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		DotEnvFiles: []string{".env"},
		Validator:   &DefaultValidator{},
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Loader{options: options}
}

// Load loads configuration into cfg, which must be a pointer to a struct.
func (l *Loader) Load(cfg interface{}) error {
	return l.LoadWithContext(context.Background(), cfg)
}

func (l *Loader) LoadWithContext(ctx context.Context, cfg interface{}) error {
	if v := reflect.ValueOf(cfg); v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}

	if err := l.loadDotEnv(); err != nil {
		return &ConfigError{Code: ErrCodeDotEnv, Message: "failed to load dotenv file", Cause: err}
	}

	if err := l.read(cfg); err != nil {
		return err
	}

	if l.options.Defaults != nil {
		if err := mergo.Merge(cfg, l.options.Defaults); err != nil {
			return &ConfigError{Code: ErrCodeMerge, Message: "failed to merge defaults", Cause: err}
		}
	}

	if l.options.Validator != nil {
		if err := l.options.Validator.Validate(ctx, cfg); err != nil {
			return &ConfigError{Code: ErrCodeValidation, Message: "configuration is invalid", Cause: err}
		}
	}

	return nil
}

func (l *Loader) loadDotEnv() error {
	var present []string
	for _, f := range l.options.DotEnvFiles {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func (l *Loader) read(cfg interface{}) error {
	if l.options.OnlyEnvironment || l.options.FileName == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return &ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment", Cause: err}
		}
		return nil
	}

	if _, err := os.Stat(l.options.FileName); errors.Is(err, os.ErrNotExist) {
		return &ConfigError{
			Code:    ErrCodeFileNotFound,
			Message: fmt.Sprintf("config file %s not found", l.options.FileName),
			Cause:   err,
		}
	}
	// ReadConfig applies the environment on top of the file.
	if err := cleanenv.ReadConfig(l.options.FileName, cfg); err != nil {
		return &ConfigError{
			Code:    ErrCodeEnvironment,
			Message: fmt.Sprintf("failed to read %s", l.options.FileName),
			Cause:   err,
		}
	}
	return nil
}

// DefaultValidator validates `validate` struct tags with go-playground/validator
type DefaultValidator struct {
	validator *validator.Validate
}

func (v *DefaultValidator) Validate(_ context.Context, cfg interface{}) error {
	if v.validator == nil {
		v.validator = validator.New()
	}
	return v.validator.Struct(cfg)
}
