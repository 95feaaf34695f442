package helpers

import (
	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient initializes an Elasticsearch client. Returns nil without error
// when no addresses are configured so callers can treat search as optional.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
	}
	return elasticsearch.NewClient(cfg)
}
