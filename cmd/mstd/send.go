package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newSendCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "send [line]...",
		Short: "Send request lines to a running server and print the replies",
		Long: `Send each argument as one request line (or stdin when no arguments are
given), half-close the connection and print everything the server answers.`,
		Example: `  mstd send "Newgraph 4" "Newedge 1,2,1" "Newedge 2,3,2" "MST Prim 1"
  printf 'MST KRUSKAL 1 2 3 2 3 1\n' | mstd send`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) > 0 {
				in = strings.NewReader(strings.Join(args, "\n") + "\n")
			}

			return send(addr, timeout, in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:9034", "server address")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall I/O deadline")

	return cmd
}

// send streams in to the server at addr and copies the replies to out.
func send(addr string, timeout time.Duration, in io.Reader, out io.Writer) error {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()
	if err = conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err = fmt.Fprintf(conn, "%s\n", line); err != nil {
			return fmt.Errorf("failed to send %q: %w", line, err)
		}
	}
	if err = scanner.Err(); err != nil {
		return err
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}

	if _, err = io.Copy(out, conn); err != nil && !isClosed(err) {
		return fmt.Errorf("failed to read replies: %w", err)
	}

	return nil
}

// isClosed reports errors that only mean the server hung up first.
func isClosed(err error) bool {
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, net.ErrClosed)
}
