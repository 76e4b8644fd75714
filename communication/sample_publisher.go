package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/KevinW1998/nightjetter/domain/business/classifier"
	"github.com/KevinW1998/nightjetter/domain/business/timeseries"
	"github.com/KevinW1998/nightjetter/domain/entities"
	"github.com/KevinW1998/nightjetter/domain/entities/eof"
	"github.com/KevinW1998/nightjetter/domain/entities/sample"
	"github.com/KevinW1998/nightjetter/utils"
)

const (
	publisherStr            = "sample-publisher"
	contentTypeJson         = "application/json"
	defaultRoutingKeyPrefix = "samples"
	defaultPublishTimeout   = 5 * time.Second
)

// MessageBroker broker operations needed to publish samples. Implemented by RabbitMQ.
type MessageBroker interface {
	DeclareExchanges(exchangesConfig []ExchangeDeclarationConfig) error
	PublishMessageInExchange(ctx context.Context, exchange string, routingKey string, message []byte, contentType string) error
}

// SamplePublisher publishes every day sample of a window, followed by an EOF message, on a topic exchange.
// Routing key: <prefix>.<route>
type SamplePublisher struct {
	broker   MessageBroker
	exchange ExchangeDeclarationConfig
	config   PublishingConfig
}

func NewSamplePublisher(broker MessageBroker, exchange ExchangeDeclarationConfig, config PublishingConfig) *SamplePublisher {
	if exchange.Type == "" {
		exchange.Type = "topic"
	}
	if config.Exchange == "" {
		config.Exchange = exchange.Name
	}
	if config.RoutingKeyPrefix == "" {
		config.RoutingKeyPrefix = defaultRoutingKeyPrefix
	}
	if config.ContentType == "" {
		config.ContentType = contentTypeJson
	}
	return &SamplePublisher{
		broker:   broker,
		exchange: exchange,
		config:   config,
	}
}

// DeclareExchanges declares the output exchange
func (sp *SamplePublisher) DeclareExchanges() error {
	err := sp.broker.DeclareExchanges([]ExchangeDeclarationConfig{sp.exchange})
	if err != nil {
		return err
	}
	log.Infof("[component: %s][status: OK] exchange %s declared correctly!", publisherStr, sp.exchange.Name)
	return nil
}

// RoutingKey routing key of the messages of a route
func (sp *SamplePublisher) RoutingKey(route string) string {
	return fmt.Sprintf("%s.%s", sp.config.RoutingKeyPrefix, strings.ReplaceAll(route, ".", "_"))
}

// PublishWindow publishes the samples of the window in date order and closes the stream with an EOF message
func (sp *SamplePublisher) PublishWindow(ctx context.Context, runID string, route string, window *timeseries.Window) error {
	routingKey := sp.RoutingKey(route)

	for idx, daySample := range window.Samples() {
		message := NewSampleMessage(entities.NewMetadata(runID, route, sample.SampleType, publisherStr, ""), idx, daySample)
		if err := sp.publish(ctx, routingKey, message); err != nil {
			log.Errorf("[component: %s][route: %s][status: ERROR] error publishing sample of %s: %s", publisherStr, route, message.Date, err.Error())
			return err
		}
	}

	eofMessage := fmt.Sprintf("eof.%s.%s", sp.config.RoutingKeyPrefix, utils.FormatDate(window.Start))
	if err := sp.publish(ctx, routingKey, eof.NewEOF(runID, route, publisherStr, eofMessage)); err != nil {
		log.Errorf("[component: %s][route: %s][status: ERROR] error publishing EOF message: %s", publisherStr, route, err.Error())
		return err
	}

	log.Infof("[component: %s][route: %s][status: OK] published %d samples", publisherStr, route, window.Len())
	return nil
}

func (sp *SamplePublisher) publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("error marshalling message: %w", err)
	}

	timeout := defaultPublishTimeout
	if sp.config.PublishTimeoutSec > 0 {
		timeout = time.Duration(sp.config.PublishTimeoutSec) * time.Second
	}
	publishCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return sp.broker.PublishMessageInExchange(publishCtx, sp.config.Exchange, routingKey, body, sp.config.ContentType)
}

// NewSampleMessage builds the published form of a day sample
func NewSampleMessage(metadata entities.Metadata, index int, daySample timeseries.DaySample) sample.SampleMessage {
	message := sample.SampleMessage{
		Metadata:  metadata,
		Date:      utils.FormatDate(daySample.Date),
		Index:     index,
		Available: daySample.HasData(),
	}

	level, ok := daySample.Level()
	if !ok {
		return message
	}

	message.Level = level.String()
	message.Prices = make(map[string]map[string]float64)
	for _, tier := range classifier.Tiers() {
		prices := make(map[string]float64)
		for category, price := range daySample.Classification.Prices(tier) {
			prices[category] = price
		}
		message.Prices[tier.Tag()] = prices
	}
	return message
}
