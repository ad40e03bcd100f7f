package job

import (
	"fmt"
	"strings"
)

// Job describes one background-removal run.
type Job struct {
	ID        string `json:"id"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Threshold int    `json:"threshold"`
}

type Provider string

const (
	LocalProvider Provider = "local"
	HttpProvider  Provider = "http"
	AwsProvider   Provider = "aws"
)

func ProviderOf(path string) Provider {
	switch {
	case strings.HasPrefix(path, "s3://"):
		return AwsProvider
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return HttpProvider
	default:
		return LocalProvider
	}
}

var ErrBadS3Path = fmt.Errorf("s3 path must look like s3://bucket/key")

// SplitS3 splits "s3://bucket/key" into its bucket and key.
func SplitS3(path string) (string, string, error) {
	rest := strings.TrimPrefix(path, "s3://")
	bucket, key, ok := cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", ErrBadS3Path
	}
	return bucket, key, nil
}

func cut(s, sep string) (string, string, bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
