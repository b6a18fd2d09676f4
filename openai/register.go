package openai

import "github.com/zakharsmirnoff/lloom/provider"

func init() {
	provider.Register("openai", newFromProviderConfig)
}

// newFromProviderConfig is the factory registered with the provider registry.
func newFromProviderConfig(cfg provider.Config) (provider.Client, error) {
	return NewFromConfig(cfg)
}
