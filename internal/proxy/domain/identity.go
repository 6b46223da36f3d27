package domain

// AppIdentity is one sandbox app registration: the credentials and token
// endpoint for a named upstream application. Loaded once from configuration
// at process start and immutable afterwards.
type AppIdentity struct {
	Name           string
	TokenURL       string
	ConsumerKey    string
	ConsumerSecret string
}
