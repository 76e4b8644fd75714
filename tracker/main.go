package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/KevinW1998/nightjetter/booking"
	"github.com/KevinW1998/nightjetter/communication"
	"github.com/KevinW1998/nightjetter/observability"
	"github.com/KevinW1998/nightjetter/report"
	"github.com/KevinW1998/nightjetter/tracker/config"
)

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(level)
	return nil
}

func main() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}
	if err := InitLogger(logLevel); err != nil {
		log.Fatalf("%s", err)
		return
	}

	runID := uuid.NewString()
	if err := run(runID); err != nil {
		log.Fatalf("[component: %s][run: %s][status: ERROR] %s", trackerStr, runID, err.Error())
	}
	log.Infof("[component: %s][run: %s][status: OK] run finished", trackerStr, runID)
}

// run protocols every configured route. Reports already written stay on disk when a route fails.
func run(runID string) error {
	trackerConfig, err := config.LoadConfig(config.DefaultConfigFilepath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("error creating metrics collector: %w", err)
	}

	client, err := booking.NewClient(ctx, booking.Config{
		BaseURL:  trackerConfig.BaseURL,
		Referer:  trackerConfig.Referer,
		Language: trackerConfig.Language,
		Country:  trackerConfig.Country,
		Timeout:  trackerConfig.Timeout(),
		Location: trackerConfig.Location(),
	}, metrics)
	if err != nil {
		return err
	}

	writer := report.NewWriter(report.Config{
		OutputDir:       trackerConfig.OutputDir,
		NoDataLiteral:   trackerConfig.NoDataLiteral,
		TimestampFormat: trackerConfig.TimestampFormat,
	})

	var publisher WindowPublisher
	if trackerConfig.PublishingEnabled() {
		rabbitMQ, err := communication.NewRabbitMQ(trackerConfig.RabbitMQ.URL)
		if err != nil {
			return fmt.Errorf("error connecting to RabbitMQ: %w", err)
		}
		defer func() {
			if err := rabbitMQ.KillBadBunny(); err != nil {
				log.Errorf("[component: %s][run: %s][status: ERROR] %s", trackerStr, runID, err.Error())
			}
		}()

		samplePublisher := communication.NewSamplePublisher(rabbitMQ, trackerConfig.RabbitMQ.Exchange, trackerConfig.RabbitMQ.Publishing)
		if err := samplePublisher.DeclareExchanges(); err != nil {
			return err
		}
		publisher = samplePublisher
	}

	log.Infof("[component: %s][run: %s][status: OK] protocolling %d routes", trackerStr, runID, len(trackerConfig.Routes))
	runner := NewRunner(runID, client, writer, publisher, metrics, trackerConfig.Location())
	runErr := runner.Run(ctx, trackerConfig.Routes)
	metrics.MarkRunFinished(time.Now())

	if trackerConfig.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(trackerConfig.MetricsTextfile); err != nil {
			log.Errorf("[component: %s][run: %s][status: ERROR] %s", trackerStr, runID, err.Error())
		}
	}

	return runErr
}
