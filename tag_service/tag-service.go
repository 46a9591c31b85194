package main

import (
	"flag"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "gadstag/config"
	H "gadstag/handler"
	mid "gadstag/middleware"
)

func main() {
	env := flag.String("env", "development", "")
	port := flag.Int("port", 8086, "")

	gadsAPIVersion := flag.String("gads_api_version", "18",
		"Google Ads API version used on the own auth flow.")

	bqProjectID := flag.String("bq_project_id", "",
		"BigQuery project for the tag log table. Empty disables the sink.")
	bqDataset := flag.String("bq_dataset", "tag_logs", "")
	bqTable := flag.String("bq_table", "gads_conversion_adjustments", "")
	bqCredentialsFile := flag.String("bq_credentials_file", "", "")

	kafkaBrokers := flag.String("kafka_brokers", "",
		"Comma separated kafka brokers for the tag log topic. Empty disables the sink.")
	kafkaTopic := flag.String("kafka_topic", "tag_logs", "")

	sentryDSN := flag.String("sentry_dsn", "", "Sentry DSN")
	flag.Parse()

	config := &C.Configuration{
		AppName:        "tag_service",
		Env:            *env,
		Port:           *port,
		GAdsAPIVersion: *gadsAPIVersion,
		BigQuery: C.BigQueryConf{
			ProjectID:       *bqProjectID,
			Dataset:         *bqDataset,
			Table:           *bqTable,
			CredentialsFile: *bqCredentialsFile,
		},
		Kafka: C.KafkaConf{
			Brokers: *kafkaBrokers,
			Topic:   *kafkaTopic,
		},
		SentryDSN: *sentryDSN,
	}

	err := C.Init(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}
	defer C.SafeFlushSentryHook()
	defer C.SafeCloseKafkaSink()

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mid.CustomCors())
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())

	H.InitTagServiceRoutes(r)
	r.Run(":" + strconv.Itoa(C.GetConfig().Port))
}
