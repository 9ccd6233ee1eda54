package contracts

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type FileSystem interface {
	FileReader
	FileWriter
}

// KeyLocator returns the PEM bytes found at path. A path naming a zip archive
// is searched for the first member whose name ends with suffix.
type KeyLocator interface {
	Locate(path, suffix string) ([]byte, error)
}

const (
	PrivateKeySuffix = "private.pem"
	PublicKeySuffix  = "public.pem"
)
