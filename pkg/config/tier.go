package config

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Tier is the deployment environment a run publishes to.
type Tier string

const (
	TierBeta Tier = "beta"
	TierProd Tier = "prod"
)

// ErrInvalidTier is returned by ParseTier for anything other than beta or prod.
var ErrInvalidTier = errors.New("environment must be 'beta' or 'prod'")

// Tiers lists the valid tiers.
func Tiers() []Tier {
	return []Tier{TierBeta, TierProd}
}

// ParseTier accepts a tier name in any case.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierBeta, TierProd:
		return t, nil
	default:
		return "", errors.Wrapf(ErrInvalidTier, "got %q", s)
	}
}

func (t Tier) String() string {
	return string(t)
}

// KeyPrefix is the remote key prefix for artifacts published to this tier.
func (t Tier) KeyPrefix() string {
	return string(t) + "/outputs/"
}

// BucketEnvVar names the environment variable holding this tier's bucket.
func (t Tier) BucketEnvVar() string {
	return "S3_BUCKET_" + strings.ToUpper(string(t))
}
