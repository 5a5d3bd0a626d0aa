package gcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/IgnacioJofreGrra/deceroacien-core/internal/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	preflightCollection = "_preflight"
	preflightDoc        = "_preflight_"
)

var ErrNoProject = errors.New("GCP_PROJECT_ID not set")

// ClientFactory opens a Firestore client for a project. Tests swap it out.
type ClientFactory func(ctx context.Context, projectID string) (*firestore.Client, error)

func defaultClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	return firestore.NewClient(ctx, projectID)
}

// Preflight verifies that projectID is reachable with the ambient
// credentials by attempting a harmless read. NotFound counts as success.
func Preflight(ctx context.Context, projectID string, logger logging.Logger) error {
	return preflight(ctx, projectID, logger, defaultClient)
}

func preflight(ctx context.Context, projectID string, logger logging.Logger, newClient ClientFactory) error {
	if projectID == "" {
		return fmt.Errorf("preflight: %w", ErrNoProject)
	}
	logCredentials(logger)

	client, err := newClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("preflight: init firestore client (project=%s): %w", projectID, err)
	}
	defer client.Close()

	_, err = client.Collection(preflightCollection).Doc(preflightDoc).Get(ctx)
	if err := classify(err); err != nil {
		return fmt.Errorf("preflight: firestore doc get (project=%s): %w", projectID, err)
	}
	logger.Info("gcp: preflight ok", "project", projectID)
	return nil
}

// classify drops errors that still prove the project answered.
func classify(err error) error {
	if err == nil || status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

func logCredentials(logger logging.Logger) {
	adc := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if adc == "" {
		logger.Info("gcp: GOOGLE_APPLICATION_CREDENTIALS not set; relying on Application Default Credentials")
		return
	}
	if _, err := os.Stat(adc); err != nil {
		logger.Warn("gcp: GOOGLE_APPLICATION_CREDENTIALS points to missing file", "path", adc, "error", err)
		return
	}
	logger.Info("gcp: using GOOGLE_APPLICATION_CREDENTIALS file", "path", adc)
}
