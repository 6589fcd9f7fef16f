package source

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"go.uber.org/zap"

	"github.com/logtide/logtide/internal/logging"
)

// Docker tails container logs via the Docker API.
type Docker struct {
	cli    *client.Client
	logger *logging.Logger
}

// NewDocker creates a Docker source. An empty host uses the SDK's
// standard environment resolution (DOCKER_HOST et al).
func NewDocker(host string, logger *logging.Logger) (*Docker, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	return &Docker{cli: cli, logger: logger}, nil
}

// Open starts following the container's combined stdout/stderr stream
// with daemon-side timestamps. Only lines emitted after this call are
// produced; there is no replay.
func (d *Docker) Open(ctx context.Context, id string) (<-chan Line, error) {
	inspect, err := d.cli.ContainerInspect(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: inspect container %q: %v", ErrUnavailable, id, err)
	}

	rc, err := d.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Timestamps: true,
		Tail:       "0",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open log stream for %q: %v", ErrUnavailable, id, err)
	}

	// Without a TTY the daemon multiplexes stdout/stderr into framed
	// chunks; demux both onto one combined stream.
	var stream io.Reader = rc
	if inspect.Config == nil || !inspect.Config.Tty {
		pr, pw := io.Pipe()
		go func() {
			_, copyErr := stdcopy.StdCopy(pw, pw, rc)
			pw.CloseWithError(copyErr)
		}()
		stream = pr
	}

	lines := make(chan Line)
	go func() {
		defer rc.Close()
		readLines(ctx, stream, lines)
		d.logger.Debug("log stream ended", zap.String("source", id))
	}()

	return lines, nil
}

// Close releases the underlying API client.
func (d *Docker) Close() error {
	return d.cli.Close()
}
