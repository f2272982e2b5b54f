// Package constants holds shared domain constants.
package constants

const (
	// EnvDevelop marks a local development environment.
	EnvDevelop = "develop"

	// PubSubProviderLocal selects the local HTTP publisher.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)
