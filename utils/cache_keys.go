package utils

// Cache keys shared between the HTTP service and the consumer workers.

func MemorialViewCacheKey(slug string) string {
	return "memorial:view:" + slug
}

func TributeCountCacheKey(slug string) string {
	return "memorial:tribute_count:" + slug
}
