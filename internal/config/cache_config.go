package config

import "time"

type Cache struct{}

var _ CacheConfig = Cache{}

func (Cache) GetListCacheTTL() time.Duration {
	return GetEnvDuration("LIST_CACHE_TTL", 5*time.Minute)
}

func (Cache) GetPageSize() int {
	size := GetEnvInt("PAGE_SIZE", 20)
	if size <= 0 {
		return 20
	}
	return size
}
