package adapter

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/cockroachdb/errors"
)

// BedrockModel is the default model on Amazon Bedrock.
const BedrockModel = "anthropic.claude-3-sonnet-20240229-v1:0"

// BedrockAdapter runs Claude models through Amazon Bedrock. AWS credentials come
// from the default chain (env, shared config, instance role).
type BedrockAdapter struct {
	client anthropic.Client
}

// NewBedrockAdapter loads the AWS configuration for region and creates the adapter.
func NewBedrockAdapter(ctx context.Context, region string, opts ...option.RequestOption) (*BedrockAdapter, error) {
	if region == "" {
		return nil, errors.New("bedrock region is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}

	opts = append([]option.RequestOption{bedrock.WithConfig(awsCfg)}, opts...)
	return &BedrockAdapter{client: anthropic.NewClient(opts...)}, nil
}

// Name returns the adapter identifier.
func (a *BedrockAdapter) Name() string {
	return "bedrock"
}

// Models returns the Bedrock model IDs this adapter is used with.
func (a *BedrockAdapter) Models() []string {
	return []string{
		BedrockModel,
		"anthropic.claude-3-5-sonnet-20240620-v1:0",
		"anthropic.claude-3-haiku-20240307-v1:0",
	}
}

// Generate invokes the model once with the prompt as a single user message.
func (a *BedrockAdapter) Generate(ctx context.Context, req Request) (*Response, error) {
	return generateMessage(ctx, a.client, a.Name(), req)
}
