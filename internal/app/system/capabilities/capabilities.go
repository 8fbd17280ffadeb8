// Package capabilities records which optional features are switched on for
// this process. It is computed once at startup so call sites ask one struct
// instead of re-reading configuration.
package capabilities

import (
	"strings"

	"go.uber.org/zap"
)

// Set lists the optional features and whether each is available.
type Set struct {
	Email             bool `json:"email"`
	Chat              bool `json:"chat"`
	CatalogCacheRedis bool `json:"catalogCacheRedis"`
	DemoContent       bool `json:"demoContent"`
	S3Uploads         bool `json:"s3Uploads"`
}

// Inputs are the facts Compute derives the Set from.
type Inputs struct {
	MailHost    string
	MailFrom    string
	NotifyEmail string
	LLMAPIKey   string
	RedisAddr   string
	SeedDemo    bool
	StorageType string
}

// Compute derives the capability set. Values are trimmed the same way the
// components that consume them trim, so a blank setting never reads as on.
func Compute(in Inputs) Set {
	set := func(s string) bool { return strings.TrimSpace(s) != "" }
	return Set{
		Email:             set(in.MailHost) && set(in.MailFrom) && set(in.NotifyEmail),
		Chat:              set(in.LLMAPIKey),
		CatalogCacheRedis: set(in.RedisAddr),
		DemoContent:       in.SeedDemo,
		S3Uploads:         in.StorageType == "s3",
	}
}

// Log writes the set as one structured line.
func (s Set) Log(log *zap.Logger) {
	log.Info("feature capabilities",
		zap.Bool("email", s.Email),
		zap.Bool("chat", s.Chat),
		zap.Bool("catalog_cache_redis", s.CatalogCacheRedis),
		zap.Bool("demo_content", s.DemoContent),
		zap.Bool("s3_uploads", s.S3Uploads))
}
