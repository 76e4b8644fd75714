package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/KevinW1998/nightjetter/communication"
	"github.com/KevinW1998/nightjetter/domain/entities/passenger"
	"github.com/KevinW1998/nightjetter/utils"
)

const (
	DefaultConfigFilepath = "./tracker/config/config.yaml"
	defaultAdvanceDays    = 30
	defaultRequestTimeout = 30 * time.Second
	defaultLanguage       = "de"
	defaultCountry        = "at"
	defaultTimezone       = "Europe/Vienna"
	defaultReferer        = "https://www.nightjet.com/de/ticket-buchen"
	defaultOutputDir      = "./data"
)

var (
	ErrNoRoutes           = errors.New("at least one route must be configured")
	ErrMissingStation     = errors.New("route without origin or destination")
	ErrInvalidAdvanceDays = errors.New("advance days must be at least 1")
	ErrNoPassengers       = errors.New("route without passengers")
	ErrMissingBaseURL     = errors.New("base url must be configured")
)

// PassengerConfig one traveler as written in the YAML file
// + Gender: male, female or diverse
// + AgeGroup: adult, kid or small_kid
// + Cards: reduction card names (DB_BAHNCARD_25_2KL, KLIMATICKET, ...) or raw platform ids
type PassengerConfig struct {
	Gender   string   `yaml:"gender"`
	AgeGroup string   `yaml:"age_group"`
	Cards    []string `yaml:"cards"`
}

// RouteConfig one connection to protocol
type RouteConfig struct {
	From        string            `yaml:"from"`
	To          string            `yaml:"to"`
	StartDate   string            `yaml:"start_date"`
	AdvanceDays int               `yaml:"advance_days"`
	Passengers  []PassengerConfig `yaml:"passengers"`
}

// UnmarshalYAML defaults advance_days only when the key is absent, an explicit 0 is left for validation
func (rc *RouteConfig) UnmarshalYAML(value *yaml.Node) error {
	type routeAlias RouteConfig
	route := routeAlias{AdvanceDays: defaultAdvanceDays}
	if err := value.Decode(&route); err != nil {
		return err
	}
	*rc = RouteConfig(route)
	return nil
}

// RabbitMQConfig optional sample publishing. Publishing is disabled when URL is empty
type RabbitMQConfig struct {
	URL        string                                  `yaml:"url"`
	Exchange   communication.ExchangeDeclarationConfig `yaml:"exchange"`
	Publishing communication.PublishingConfig          `yaml:"publishing"`
}

type TrackerConfig struct {
	BaseURL         string         `yaml:"base_url"`
	Referer         string         `yaml:"referer"`
	Language        string         `yaml:"language"`
	Country         string         `yaml:"country"`
	Timezone        string         `yaml:"timezone"`
	RequestTimeout  string         `yaml:"request_timeout"`
	OutputDir       string         `yaml:"output_dir"`
	TimestampFormat string         `yaml:"timestamp_format"`
	NoDataLiteral   string         `yaml:"no_data_literal"`
	MetricsTextfile string         `yaml:"metrics_textfile"`
	RabbitMQ        RabbitMQConfig `yaml:"rabbitmq"`
	Routes          []RouteConfig  `yaml:"routes"`

	location       *time.Location
	requestTimeout time.Duration
}

// LoadConfig loads an optional .env file, reads the YAML config found at CONFIG_PATH (or defaultPath)
// and applies the environment overrides.
func LoadConfig(defaultPath string) (*TrackerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	configFile, err := utils.GetConfigFile(getEnv("CONFIG_PATH", defaultPath))
	if err != nil {
		return nil, err
	}

	trackerConfig, err := parse(configFile)
	if err != nil {
		return nil, err
	}

	if err := trackerConfig.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := trackerConfig.validate(); err != nil {
		return nil, err
	}

	return trackerConfig, nil
}

// Parse decodes and validates a YAML config without looking at the environment
func Parse(content []byte) (*TrackerConfig, error) {
	trackerConfig, err := parse(content)
	if err != nil {
		return nil, err
	}
	if err := trackerConfig.validate(); err != nil {
		return nil, err
	}
	return trackerConfig, nil
}

func parse(content []byte) (*TrackerConfig, error) {
	var trackerConfig TrackerConfig
	if err := yaml.Unmarshal(content, &trackerConfig); err != nil {
		return nil, fmt.Errorf("error parsing tracker config file: %w", err)
	}
	trackerConfig.applyDefaults()
	return &trackerConfig, nil
}

func (tc *TrackerConfig) applyDefaults() {
	if tc.Referer == "" {
		tc.Referer = defaultReferer
	}
	if tc.Language == "" {
		tc.Language = defaultLanguage
	}
	if tc.Country == "" {
		tc.Country = defaultCountry
	}
	if tc.Timezone == "" {
		tc.Timezone = defaultTimezone
	}
	if tc.OutputDir == "" {
		tc.OutputDir = defaultOutputDir
	}
}

func (tc *TrackerConfig) applyEnvOverrides() error {
	tc.BaseURL = getEnv("NIGHTJET_BASE_URL", tc.BaseURL)
	tc.OutputDir = getEnv("OUTPUT_DIR", tc.OutputDir)
	tc.MetricsTextfile = getEnv("METRICS_TEXTFILE", tc.MetricsTextfile)
	tc.RabbitMQ.URL = getEnv("RABBIT_URL", tc.RabbitMQ.URL)

	if advanceDays := os.Getenv("ADVANCE_DAYS"); advanceDays != "" {
		days, err := cast.ToIntE(advanceDays)
		if err != nil {
			return fmt.Errorf("%w: ADVANCE_DAYS=%q", ErrInvalidAdvanceDays, advanceDays)
		}
		for idx := range tc.Routes {
			tc.Routes[idx].AdvanceDays = days
		}
	}
	return nil
}

func (tc *TrackerConfig) validate() error {
	if strings.TrimSpace(tc.BaseURL) == "" {
		return ErrMissingBaseURL
	}

	location, err := time.LoadLocation(tc.Timezone)
	if err != nil {
		return fmt.Errorf("error loading timezone %s: %w", tc.Timezone, err)
	}
	tc.location = location

	tc.requestTimeout = defaultRequestTimeout
	if tc.RequestTimeout != "" {
		timeout, err := cast.ToDurationE(tc.RequestTimeout)
		if err != nil || timeout <= 0 {
			return fmt.Errorf("invalid request timeout %q", tc.RequestTimeout)
		}
		tc.requestTimeout = timeout
	}

	if len(tc.Routes) == 0 {
		return ErrNoRoutes
	}
	for idx, route := range tc.Routes {
		if err := route.validate(location); err != nil {
			return fmt.Errorf("route %d: %w", idx, err)
		}
	}
	return nil
}

// Location timezone in which days are sampled
func (tc *TrackerConfig) Location() *time.Location {
	if tc.location == nil {
		return time.Local
	}
	return tc.location
}

func (tc *TrackerConfig) Timeout() time.Duration {
	if tc.requestTimeout == 0 {
		return defaultRequestTimeout
	}
	return tc.requestTimeout
}

// PublishingEnabled returns true if samples have to be published to RabbitMQ
func (tc *TrackerConfig) PublishingEnabled() bool {
	return tc.RabbitMQ.URL != ""
}

func (rc RouteConfig) validate(location *time.Location) error {
	if strings.TrimSpace(rc.From) == "" || strings.TrimSpace(rc.To) == "" {
		return ErrMissingStation
	}
	if rc.AdvanceDays < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidAdvanceDays, rc.AdvanceDays)
	}
	if _, err := rc.Start(location); err != nil {
		return err
	}
	_, err := rc.BuildPassengers()
	return err
}

// Name route key used in report file names: <from>_<to>
func (rc RouteConfig) Name() string {
	return fmt.Sprintf("%s_%s", rc.From, rc.To)
}

// Start first day of the route window, at midnight in location
func (rc RouteConfig) Start(location *time.Location) (time.Time, error) {
	start, err := utils.ParseDate(rc.StartDate, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", rc.StartDate, err)
	}
	return start, nil
}

// BuildPassengers returns a freshly built passenger set for the route
func (rc RouteConfig) BuildPassengers() ([]passenger.Passenger, error) {
	if len(rc.Passengers) == 0 {
		return nil, ErrNoPassengers
	}

	passengers := make([]passenger.Passenger, 0, len(rc.Passengers))
	for _, pc := range rc.Passengers {
		gender, err := passenger.ParseGender(pc.Gender)
		if err != nil {
			return nil, err
		}
		ageGroup, err := passenger.ParseAgeGroup(pc.AgeGroup)
		if err != nil {
			return nil, err
		}
		cards := make([]passenger.ReductionCard, 0, len(pc.Cards))
		for _, rawCard := range pc.Cards {
			card, err := passenger.ParseReductionCard(rawCard)
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
		passengers = append(passengers, passenger.NewPassenger(gender, ageGroup, cards...))
	}
	return passengers, nil
}

func getEnv(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
