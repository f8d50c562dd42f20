package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// LoadProfileConfig loads the SDK configuration for a named shared-config
// profile. An empty profile name falls back to the default credential chain.
func LoadProfileConfig(ctx context.Context, profile string) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}
	return cfg, nil
}
