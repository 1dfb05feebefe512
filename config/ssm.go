package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// NewSSMClient builds a Parameter Store client from the default AWS credential chain.
func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// OverlaySSM copies every parameter under path into config. A parameter named
// "<path>/upload/bucket" becomes the key UPLOAD_BUCKET. Keys already present in
// config keep their value, so the process environment always wins.
func OverlaySSM(ctx context.Context, config map[string]string, client ssm.GetParametersByPathAPIClient, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(path),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	applied := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return applied, fmt.Errorf("get parameters by path %q: %w", path, err)
		}

		for _, param := range page.Parameters {
			key := parameterKey(path, aws.ToString(param.Name))
			if key == "" {
				continue
			}
			if val, ok := config[key]; ok && val != "" {
				log.Debug().Str("key", key).Msg("ssm parameter shadowed by environment")
				continue
			}
			config[key] = aws.ToString(param.Value)
			applied++
		}
	}

	return applied, nil
}

func parameterKey(path, name string) string {
	rel := strings.TrimPrefix(name, strings.TrimSuffix(path, "/"))
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return ""
	}
	rel = strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(rel)
	return strings.ToUpper(rel)
}
