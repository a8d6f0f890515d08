package ports

// Storage is the key-value medium behind the session token store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// CredentialSource hands the current bearer credential to a fetch client.
// ClearIf drops the credential only while it is still token, so a rejected
// request never removes a credential stored after it was sent.
type CredentialSource interface {
	Get() (string, bool)
	ClearIf(token string) bool
}
