package service

import (
	"budaya_backend/internal/config"
	"budaya_backend/internal/util"
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider 将题目图片的存储 key 解析为客户端可访问的地址
type StorageProvider interface {
	GetURL(ctx context.Context, key string) (string, error)
}

// LocalStorageProvider 本地存储实现，由静态路由 /uploads 提供
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) GetURL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

type presignedURL struct {
	url      string
	signedAt time.Time
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client

	// 预签名地址按 key 复用半个有效期，同一结果多次读取返回相同地址
	mu        sync.Mutex
	presigned map[string]presignedURL
	now       func() time.Time
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{
		Config:    cfg,
		Client:    client,
		presigned: make(map[string]presignedURL),
		now:       time.Now,
	}, nil
}

// GetURL 公开桶直接拼接路径，私有桶生成预签名地址
func (p *MinioStorageProvider) GetURL(ctx context.Context, key string) (string, error) {
	expiry := p.Config.PresignExpiry
	if expiry <= 0 {
		return "/" + p.Config.MinioBucket + "/" + key, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if cached, ok := p.presigned[key]; ok && now.Sub(cached.signedAt) < expiry/2 {
		return cached.url, nil
	}

	u, err := p.Client.PresignedGetObject(ctx, p.Config.MinioBucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	p.presigned[key] = presignedURL{url: u.String(), signedAt: now}
	return u.String(), nil
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}
	return &StorageService{Provider: provider}, nil
}

// ResolveImage 空值原样返回，已是完整地址的图片不做处理
func (s *StorageService) ResolveImage(ctx context.Context, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	return s.Provider.GetURL(ctx, strings.TrimPrefix(ref, "/"))
}
