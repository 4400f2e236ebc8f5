package storage

import (
	"context"
	"fmt"

	"adminhub/pkg/utils"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

func FromConfig(ctx context.Context, cfg utils.StorageConfig) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		return FactoryResult{Driver: "local", Storage: NewLocal(cfg.LocalDir)}, nil

	case "s3":
		if cfg.Region == "" || cfg.Bucket == "" {
			return FactoryResult{}, fmt.Errorf("s3 storage needs ADMINHUB_S3_REGION and ADMINHUB_S3_BUCKET")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			Prefix:        cfg.Prefix,
			PublicBaseURL: cfg.PublicBaseURL,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
