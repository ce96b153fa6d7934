package shipsync

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// RequestSigner augments an outbound request with authentication headers.
// The payloadHash is the hex-encoded SHA-256 of the request body.
type RequestSigner interface {
	SignHTTP(ctx context.Context, r *http.Request, payloadHash string, signingTime time.Time) error
}

// SigV4Signer signs requests with AWS Signature Version 4 for the
// region/service pair of the run's configuration.
type SigV4Signer struct {
	signer      *v4.Signer
	credentials aws.CredentialsProvider
	service     string
	region      string
}

// NewSigV4Signer builds a signer from the run configuration. When the
// configuration carries no access key pair, credentials are resolved
// through the AWS default credential chain instead.
func NewSigV4Signer(ctx context.Context, cfg Config) (*SigV4Signer, error) {
	var provider aws.CredentialsProvider
	if cfg.AccessKey != "" {
		provider = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
		if err != nil {
			return nil, ConfigNotResolvedError{Path: "aws default credential chain", Cause: err}
		}
		provider = awsCfg.Credentials
	}
	return &SigV4Signer{
		signer:      v4.NewSigner(),
		credentials: provider,
		service:     cfg.Service,
		region:      cfg.Region,
	}, nil
}

func (s *SigV4Signer) SignHTTP(ctx context.Context, r *http.Request, payloadHash string, signingTime time.Time) error {
	creds, err := s.credentials.Retrieve(ctx)
	if err != nil {
		return RequestSigningError{Cause: err}
	}
	if err := s.signer.SignHTTP(ctx, creds, r, payloadHash, s.service, s.region, signingTime); err != nil {
		return RequestSigningError{Cause: err}
	}
	return nil
}
