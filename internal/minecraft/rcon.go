package minecraft

import (
	"fmt"

	"github.com/gorcon/rcon"
)

type RconConsole struct {
	conn *rcon.Conn
}

// NewRconConsole connects to the server's RCON port. The connection is held
// open for the process lifetime and owned by the gateway worker.
func NewRconConsole(address, password string) (*RconConsole, error) {
	conn, err := rcon.Dial(address, password)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rcon at %s: %w", address, err)
	}
	return &RconConsole{conn: conn}, nil
}

func (c *RconConsole) Execute(command string) (string, error) {
	out, err := c.conn.Execute(command)
	if err != nil {
		return "", fmt.Errorf("rcon command failed: %w", err)
	}
	return out, nil
}

func (c *RconConsole) Close() error {
	return c.conn.Close()
}
