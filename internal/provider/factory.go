package provider

// New builds the adapter for a provider with the given credentials and
// optional container selector. Credential validation happens here, before
// any network call is attempted.
func New(p Provider, creds Credentials, containerURI string) (Adapter, error) {
	switch p {
	case Vimeo:
		return NewVimeo(creds, containerURI)
	case BunnyStorage:
		return NewBunnyStorage(creds, containerURI)
	case BunnyStream:
		return NewBunnyStream(creds, containerURI)
	case Wistia:
		return NewWistia(creds, containerURI)
	case VdoCipher:
		return NewVdoCipher(creds)
	case Zoom:
		return NewZoom(creds)
	}
	_, err := Parse(string(p))
	return nil, err
}
