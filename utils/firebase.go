// utils/firebase.go
package utils

import (
	"context"
	"log"

	"uprocket/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

var (
	AuthClient *auth.Client
	DBClient   *db.Client
)

// FirebaseInit initializes the Firebase App plus the Auth and Realtime
// Database clients. Auth verifies session cookies; the database holds the
// user directory.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)
	conf := &firebase.Config{DatabaseURL: config.AppConfig.FirebaseDatabaseURL}

	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Database client: %v", err)
	}

	AuthClient = authClient
	DBClient = dbClient
}

// GetAuthClient returns the Firebase Auth client.
func GetAuthClient() *auth.Client {
	return AuthClient
}

// GetDBClient returns the Firebase Realtime Database client.
func GetDBClient() *db.Client {
	return DBClient
}
