// Package sshutil provides the SSH/SFTP primitives used to bootstrap a
// self-hosted registry/substrate host before a real deployment points
// REGISTRY and TEMPORAL_URL at it: dial, run a remote command, and upload a
// file. There is no interactive session or rsync-style sync here; a
// headless CI/CD engine has no interactive developer shell to drive
// against an app host (see DESIGN.md).
package sshutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Client is a connected SSH session with an SFTP channel for file transfer.
type Client struct {
	conn *ssh.Client
	sftp *sftp.Client
	host string
	port int
	user string
}

// Dial connects to host:port as user, authenticating with the private key
// at keyPath (tilde-expanded) and trusting the connection's host key
// (bootstrap runs against freshly provisioned hosts with no prior
// known_hosts entry).
func Dial(host string, port int, user, keyPath string) (*Client, error) {
	actualKeyPath := keyPath
	if strings.HasPrefix(keyPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to get home directory: %w", err)
		}
		actualKeyPath = filepath.Join(home, keyPath[2:])
	}

	key, err := os.ReadFile(actualKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect: %w", err)
	}

	sftpClient, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to start sftp: %w", err)
	}

	return &Client{conn: conn, sftp: sftpClient, host: host, port: port, user: user}, nil
}

// RunCommand executes cmd on the remote host, streaming stdout/stderr.
func (c *Client) RunCommand(cmd string, stdout, stderr io.Writer) error {
	session, err := c.conn.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	session.Stdout = stdout
	session.Stderr = stderr
	return session.Run(cmd)
}

// UploadFile copies a local file to a remote path over SFTP.
func (c *Client) UploadFile(local, remote string) error {
	src, err := os.Open(local)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := c.sftp.Create(remote)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Close releases the SFTP and SSH connections.
func (c *Client) Close() {
	if c.sftp != nil {
		c.sftp.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
