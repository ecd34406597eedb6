package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	LockBackendLocal = "local"
	LockBackendRedis = "redis"
)

const RequestIDHeader = "X-Request-ID"
