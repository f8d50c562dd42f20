package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Credentials is one set of temporary session credentials.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
	AssumedRoleARN  string
}

// AssumeRoleInput carries everything needed to assume one role.
type AssumeRoleInput struct {
	RoleARN       string
	SessionName   string
	DurationHours int
	ExternalID    string
}

// RoleARN builds the IAM role ARN for an account and role name.
func RoleARN(accountID, roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
}

// SessionDuration converts the configured hour count to seconds. Zero or
// negative means unset and falls back to one hour.
func SessionDuration(durationHours int) int32 {
	if durationHours <= 0 {
		durationHours = 1
	}
	return int32(3600 * durationHours)
}

// AssumeRole assumes the role and returns its temporary credentials.
func AssumeRole(ctx context.Context, client *sts.Client, in AssumeRoleInput) (*Credentials, error) {
	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(in.RoleARN),
		RoleSessionName: aws.String(in.SessionName),
		DurationSeconds: aws.Int32(SessionDuration(in.DurationHours)),
	}
	if in.ExternalID != "" {
		input.ExternalId = aws.String(in.ExternalID)
	}

	result, err := client.AssumeRole(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}

	if result.Credentials == nil {
		return nil, fmt.Errorf("no credentials returned from AssumeRole")
	}

	creds := &Credentials{
		AccessKeyID:     aws.ToString(result.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(result.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(result.Credentials.SessionToken),
		Expiration:      aws.ToTime(result.Credentials.Expiration),
	}

	if result.AssumedRoleUser != nil {
		creds.AssumedRoleARN = aws.ToString(result.AssumedRoleUser.Arn)
	}

	return creds, nil
}
