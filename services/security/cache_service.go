package security

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache holds short-lived security material, currently the OAuth state
// nonces handed out when a login flow starts. A nonce that isn't redeemed
// within the default expiration simply vanishes.
type Cache struct {
	c *cache.Cache
}

func NewCache() *Cache {
	// Create a cache with a default expiration time of 5 minutes, and which
	// purges expired items every 10 minutes
	return &Cache{
		c: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (cm *Cache) Insert(k string, x interface{}) {
	cm.c.Set(k, x, cache.DefaultExpiration)
}

func (cm *Cache) Get(key string) (interface{}, error) {
	val, found := cm.c.Get(key)
	if found {
		return val, nil
	}

	return nil, fmt.Errorf("value not found")
}

// Take returns the value and removes it, so a state nonce can only be
// redeemed once.
func (cm *Cache) Take(key string) (interface{}, error) {
	val, err := cm.Get(key)
	if err != nil {
		return nil, err
	}
	cm.c.Delete(key)
	return val, nil
}

func (cm *Cache) Stop() error {
	cm.c.Flush()
	return nil
}
