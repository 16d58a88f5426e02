package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const DefaultModelPath = "Models/va_model.json"

type Config struct {
	Http struct {
		Port           int           `yaml:"port" validate:"min=1,max=65535"`
		Timeout        time.Duration `yaml:"timeout" validate:"gt=0"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes" validate:"gte=0"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
		Format     string `yaml:"format" validate:"omitempty,oneof=json console"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Model struct {
		Path  string `yaml:"path" validate:"required"`
		Watch bool   `yaml:"watch"`
	} `yaml:"model"`
	Cache struct {
		Size int `yaml:"size" validate:"gte=0"`
	} `yaml:"cache"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Http.Port = 8000
	cfg.Http.Timeout = 30 * time.Second
	cfg.Http.AllowedOrigins = []string{"*"}
	cfg.Http.MaxBodyBytes = 1 << 20
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	cfg.Log.MaxSizeMB = 100
	cfg.Log.MaxBackups = 3
	cfg.Log.MaxAgeDays = 28
	cfg.Model.Path = DefaultModelPath
	cfg.Cache.Size = 1024
	return cfg
}

// Find returns the first existing config file among path and the parent
// directory's copy, so the binary works from the repo root and from cmd/.
func Find(path string) (string, bool) {
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	parent := filepath.Join("..", path)
	if _, err := os.Stat(parent); err == nil {
		return parent, true
	}
	return "", false
}

// Load decodes path over the defaults. A relative model path is resolved
// against the directory holding the config file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Model.Path) {
		cfg.Model.Path = filepath.Join(filepath.Dir(path), cfg.Model.Path)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	})
	return v
}

// Validate reports every out-of-range setting, named by its yaml path.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		// Namespace is "Config.http.port"
		path := strings.SplitN(fe.Namespace(), ".", 2)
		msgs[i] = fmt.Sprintf("%s: failed %s=%s", path[len(path)-1], fe.Tag(), fe.Param())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
