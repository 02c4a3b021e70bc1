package database

import (
	"TravelMate/config/environment"
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go"
	"firebase.google.com/go/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var FirebaseApp *firebase.App
var FirestoreClient *firestore.Client
var AuthClient *auth.Client

// InitFirebase initializes the Firebase app, Firestore and Auth clients
func InitFirebase(ctx context.Context, logger *zap.Logger) error {
	// Get Base64 encoded credentials from env
	encodedCredentials := environment.GetFirebaseKey()
	if encodedCredentials == "" {
		return errors.New("FIREBASE_CREDENTIALS_BASE64 environment variable is missing")
	}

	decodedCredentials, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		return fmt.Errorf("decode firebase credentials: %w", err)
	}

	projectID := environment.GetFirebaseProjectID()
	if projectID == "" {
		return errors.New("FIREBASE_PROJECT_ID environment variable is missing")
	}

	config := &firebase.Config{
		ProjectID: projectID,
	}
	app, err := firebase.NewApp(ctx, config, option.WithCredentialsJSON(decodedCredentials))
	if err != nil {
		return fmt.Errorf("initialize firebase: %w", err)
	}
	FirebaseApp = app

	FirestoreClient, err = app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("create firestore client: %w", err)
	}
	logger.Info("Firestore initialized", zap.String("project", projectID))

	AuthClient, err = app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("create firebase auth client: %w", err)
	}
	logger.Info("Firebase Auth initialized")

	return nil
}

// GetFirestoreClient returns the Firestore client instance
func GetFirestoreClient() *firestore.Client {
	return FirestoreClient
}

func GetFirebaseAuthClient() *auth.Client {
	return AuthClient
}

// CloseFirebase releases the Firestore connection
func CloseFirebase() error {
	if FirestoreClient == nil {
		return nil
	}
	return FirestoreClient.Close()
}
