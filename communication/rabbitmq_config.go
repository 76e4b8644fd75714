package communication

// ExchangeDeclarationConfig contains the parameters to declare a RabbitMQ exchange
type ExchangeDeclarationConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Durable     bool   `yaml:"durable"`
	AutoDeleted bool   `yaml:"auto_deleted"`
	Internal    bool   `yaml:"internal"`
	NoWait      bool   `yaml:"no_wait"`
}

// PublishingConfig config use it for publishing messages in a RabbitMQ exchange
type PublishingConfig struct {
	Exchange          string `yaml:"exchange"`
	RoutingKeyPrefix  string `yaml:"routing_key_prefix"`
	ContentType       string `yaml:"content_type"`
	PublishTimeoutSec int    `yaml:"publish_timeout_sec"`
}
