package minecraft

// Console is the server command-execution primitive. Implementations are not
// required to be safe for concurrent use; the Gateway serializes all access.
type Console interface {
	Execute(command string) (string, error)
	Close() error
}
