package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// FallbackSessionName is used when the caller identity cannot be resolved.
const FallbackSessionName = "awslaunch"

// SessionName derives a role session name from the caller identity: the last
// path segment of the caller's ARN, e.g. "alice" for
// arn:aws:iam::123456789012:user/alice. Any failure falls back to
// FallbackSessionName so launching works with minimal STS permissions.
func SessionName(ctx context.Context, client *sts.Client) string {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil || out.Arn == nil {
		return FallbackSessionName
	}

	parsed, err := arn.Parse(*out.Arn)
	if err != nil {
		return FallbackSessionName
	}
	if i := strings.LastIndex(parsed.Resource, "/"); i >= 0 && i+1 < len(parsed.Resource) {
		return parsed.Resource[i+1:]
	}
	return FallbackSessionName
}
