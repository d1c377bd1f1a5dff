package config

type StorageMode string

const (
	StorageModeLocal StorageMode = "local"
	StorageModeS3    StorageMode = "s3"
)

type StorageConfig struct {
	Mode      StorageMode
	UploadDir string
	AWSRegion string
	AWSBucket string
	S3Prefix  string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Mode:      StorageMode(getEnv("STORAGE_MODE", string(StorageModeLocal))),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		AWSBucket: getEnv("AWS_BUCKET", "agent-mem-documents"),
		S3Prefix:  getEnv("S3_PREFIX", ""),
	}
}
