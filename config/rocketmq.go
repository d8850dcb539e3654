package config

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

// Enabled 未配置 nameserver 时事件只落日志，不投递
func (c *RocketMQConfig) Enabled() bool {
	return c != nil && len(c.NameServer) > 0
}
