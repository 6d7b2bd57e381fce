package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	for input, want := range map[string]Tier{"beta": TierBeta, "PROD": TierProd, " Beta ": TierBeta} {
		got, err := ParseTier(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "staging", "production"} {
		_, err := ParseTier(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrInvalidTier))
	}
}

func TestTierRouting(t *testing.T) {
	assert.Equal(t, "beta/outputs/", TierBeta.KeyPrefix())
	assert.Equal(t, "prod/outputs/", TierProd.KeyPrefix())
	assert.Equal(t, "S3_BUCKET_BETA", TierBeta.BucketEnvVar())
	assert.Equal(t, "S3_BUCKET_PROD", TierProd.BucketEnvVar())
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	run, err := Load(TierProd, "")
	require.NoError(t, err)

	assert.Equal(t, TierProd, run.Tier)
	assert.Equal(t, "", run.Bucket)
	assert.Equal(t, Dirs{Prompts: "prompts", Templates: "prompt_templates", Outputs: "outputs"}, run.Dirs)
	assert.Equal(t, "bedrock", run.Inference.Adapter)
	assert.Equal(t, "us-east-1", run.Inference.Region)
	assert.Equal(t, "s3.amazonaws.com", run.S3.Endpoint)
	assert.Equal(t, "us-east-1", run.S3.Region)
	assert.Equal(t, "prod/outputs/out.txt", run.RemoteKey("out.txt"))
}

func TestLoadBucketFromTierEnv(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("S3_BUCKET_BETA", "beta-bucket")
	t.Setenv("S3_BUCKET_PROD", "prod-bucket")
	t.Setenv("AWS_REGION", "eu-west-1")

	beta, err := Load(TierBeta, "")
	require.NoError(t, err)
	prod, err := Load(TierProd, "")
	require.NoError(t, err)

	assert.Equal(t, "beta-bucket", beta.Bucket)
	assert.Equal(t, "prod-bucket", prod.Bucket)
	assert.Equal(t, "eu-west-1", prod.Inference.Region)
	assert.Equal(t, "beta/outputs/x.html", beta.RemoteKey("x.html"))
}

func TestLoadFileWithEnvPrecedence(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	t.Setenv("MINIO_SECRET", "s3cr3t")

	data := []byte(`dirs:
  prompts: in
  outputs: out
inference:
  adapter: mock
  model: fast
  region: ap-south-1
s3:
  endpoint: localhost:9000
  insecure: true
  access_key: minio
  secret_key: ${MINIO_SECRET}
buckets:
  prod: file-bucket
aliases:
  fast: mock-1
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), data, 0644))

	run, err := Load(TierProd, "")
	require.NoError(t, err)
	assert.Equal(t, "file-bucket", run.Bucket)
	assert.Equal(t, Dirs{Prompts: "in", Templates: "prompt_templates", Outputs: "out"}, run.Dirs)
	assert.Equal(t, "mock", run.Inference.Adapter)
	assert.Equal(t, "mock-1", run.Model())
	assert.Equal(t, "ap-south-1", run.Inference.Region)
	assert.Equal(t, "ap-south-1", run.S3.Region)
	assert.Equal(t, "localhost:9000", run.S3.Endpoint)
	assert.True(t, run.S3.Insecure)
	assert.Equal(t, "s3cr3t", run.S3.SecretKey)

	t.Setenv("S3_BUCKET_PROD", "env-bucket")
	t.Setenv("AWS_REGION", "us-west-2")
	run, err = Load(TierProd, "")
	require.NoError(t, err)
	assert.Equal(t, "env-bucket", run.Bucket)
	assert.Equal(t, "us-west-2", run.Inference.Region)
}

func TestLoadIgnoresFileAPIKeys(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("inference:\n  AnthropicAPIKey: file-key\n"), 0644))

	run, err := Load(TierBeta, "")
	require.NoError(t, err)
	assert.Empty(t, run.Inference.AnthropicAPIKey)

	t.Setenv("ANTHROPIC_API_KEY", "env-ant")
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("GOOGLE_API_KEY", "env-google")
	run, err = Load(TierBeta, "")
	require.NoError(t, err)
	assert.Equal(t, "env-ant", run.Inference.AnthropicAPIKey)
	assert.Equal(t, "env-openai", run.Inference.OpenAIAPIKey)
	assert.Equal(t, "env-google", run.Inference.GoogleAPIKey)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	_, err := Load(TierBeta, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dirs: [unclosed"), 0644))

	_, err := Load(TierBeta, path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidTier(t *testing.T) {
	chdirTemp(t)
	_, err := Load(Tier("staging"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTier))
}

func TestModelAliases(t *testing.T) {
	aliases := ModelAliases{"sonnet": "anthropic.claude-3-sonnet-20240229-v1:0"}
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", aliases.Resolve("sonnet"))
	assert.Equal(t, "other", aliases.Resolve("other"))
	assert.True(t, aliases.IsAlias("sonnet"))
	assert.False(t, ModelAliases(nil).IsAlias("sonnet"))
	assert.Equal(t, "x", ModelAliases(nil).Resolve("x"))
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"S3_BUCKET_BETA", "S3_BUCKET_PROD", "AWS_REGION",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY",
	} {
		t.Setenv(key, "")
	}
}
