package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the subset of the SSM client used to read secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMGetter builds an SSM client from the default AWS credential chain.
func NewSSMGetter(ctx context.Context, config map[string]string) (ParameterGetter, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region := GetString(config, "AWS_REGION", ""); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// ResolveSecret returns the value of key when it is set directly. Otherwise,
// when parameterKey names an SSM parameter, the decrypted parameter value is
// fetched through the getter built by newGetter.
func ResolveSecret(
	ctx context.Context,
	config map[string]string,
	key string,
	parameterKey string,
	newGetter func(context.Context, map[string]string) (ParameterGetter, error),
) (string, error) {
	if value := strings.TrimSpace(GetString(config, key, "")); value != "" {
		return value, nil
	}

	parameterName := GetString(config, parameterKey, "")
	if parameterName == "" {
		return "", fmt.Errorf("neither %s nor %s is set", key, parameterKey)
	}

	getter, err := newGetter(ctx, config)
	if err != nil {
		return "", err
	}

	out, err := getter.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(parameterName),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read SSM parameter %s: %w", parameterName, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("SSM parameter %s is empty", parameterName)
	}

	return strings.TrimSpace(aws.ToString(out.Parameter.Value)), nil
}
