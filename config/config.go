package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/evalphobia/logrus_sentry"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	GA "gadstag/integration/google_ads"
	"gadstag/taglog"
)

const DEVELOPMENT = "development"

type BigQueryConf struct {
	ProjectID       string `json:"project_id"`
	Dataset         string `json:"dataset"`
	Table           string `json:"table"`
	CredentialsFile string `json:"credentials_file"`
}

type KafkaConf struct {
	Brokers string `json:"brokers"`
	Topic   string `json:"topic"`
}

type Configuration struct {
	AppName        string       `json:"app_name"`
	Env            string       `json:"env"`
	Port           int          `json:"port"`
	GAdsAPIVersion string       `json:"gads_api_version"`
	BigQuery       BigQueryConf `json:"bigquery"`
	Kafka          KafkaConf    `json:"kafka"`
	SentryDSN      string       `json:"sentry_dsn"`
}

type Services struct {
	BigQueryClient *bigquery.Client
	KafkaSink      *taglog.KafkaSink
	TokenSource    oauth2.TokenSource
}

var configuration *Configuration = nil
var services *Services = nil
var sentryHook *logrus_sentry.SentryHook = nil
var initiated bool = false

func initLogging() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	if IsDevelopment() {
		log.SetLevel(log.DebugLevel)
	}
}

func InitSentryLogging(dsn, appName string) {
	if dsn == "" {
		return
	}

	hook, err := logrus_sentry.NewSentryHook(dsn, []log.Level{
		log.PanicLevel, log.FatalLevel, log.ErrorLevel,
	})
	if err != nil {
		log.WithError(err).Error("Failed to initialize sentry hook.")
		return
	}

	hook.SetTagsContext(map[string]string{"app_name": appName})
	hook.StacktraceConfiguration.Enable = true
	hook.Timeout = 1 * time.Second

	log.AddHook(hook)
	sentryHook = hook
}

// SafeFlushSentryHook drains buffered sentry events on shutdown.
func SafeFlushSentryHook() {
	if sentryHook != nil {
		sentryHook.Flush()
	}
}

// SafeCloseKafkaSink drains buffered tag log rows on shutdown.
func SafeCloseKafkaSink() {
	if services == nil || services.KafkaSink == nil {
		return
	}
	if err := services.KafkaSink.Close(); err != nil {
		log.WithError(err).Error("Failed to close kafka producer.")
	}
}

func initServices() error {
	services = &Services{}
	ctx := context.Background()

	if configuration.BigQuery.ProjectID != "" {
		opts := []option.ClientOption{}
		if configuration.BigQuery.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(configuration.BigQuery.CredentialsFile))
		}

		client, err := bigquery.NewClient(ctx, configuration.BigQuery.ProjectID, opts...)
		if err != nil {
			log.WithError(err).Error("Failed bigquery client initialization.")
			return err
		}
		services.BigQueryClient = client
		log.Info("BigQuery tag log service initialized.")
	}

	if configuration.Kafka.Brokers != "" {
		sink, err := taglog.NewKafkaSink(
			strings.Split(configuration.Kafka.Brokers, ","), configuration.Kafka.Topic)
		if err != nil {
			log.WithError(err).Error("Failed kafka producer initialization.")
			return err
		}
		services.KafkaSink = sink
		log.Info("Kafka tag log service initialized.")
	}

	// Application default credentials back the own auth flow. Missing
	// credentials only disable that flow, the stape proxy flow needs none.
	tokenSource, err := google.DefaultTokenSource(ctx, GA.AdwordsOAuthScope)
	if err != nil {
		log.WithError(err).Warn("No default google credentials. Own auth flow disabled.")
	} else {
		services.TokenSource = tokenSource
	}

	return nil
}

func Init(config *Configuration) error {
	if initiated {
		return fmt.Errorf("Config already initialized")
	}
	configuration = config

	initLogging()
	InitSentryLogging(config.SentryDSN, config.AppName)

	if err := initServices(); err != nil {
		return err
	}

	initiated = true
	return nil
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}

func IsDevelopment() bool {
	return configuration != nil && strings.Compare(configuration.Env, DEVELOPMENT) == 0
}
