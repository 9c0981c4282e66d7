// Package localnet manages a throwaway local chain container so deployments
// can be rehearsed before touching a shared network.
package localnet

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/moby/go-archive"

	"astroctl/pkg/ui"
)

const (
	// ContainerName is the fixed name of the local chain container.
	ContainerName = "astroctl-localnet"
	// DefaultImage runs a single-validator wasm chain.
	DefaultImage = "cosmwasm/wasmd:v0.53.0"
	// LocalChainID is the chain id the container is started with.
	LocalChainID = "astroctl-local-1"
)

// ports exposed from the container to the host.
var ports = []string{"26657", "1317", "9090"}

// Client wraps the Docker API for localnet lifecycle operations.
type Client struct {
	docker client.APIClient
}

// New connects to the Docker daemon using the standard environment settings.
func New() (*Client, error) {
	docker, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}
	return &Client{docker: docker}, nil
}

// Up pulls the image if needed and starts the localnet container. A
// container that is already running is left alone.
func (c *Client) Up(ctx context.Context, imageRef string) error {
	if imageRef == "" {
		imageRef = DefaultImage
	}

	if running, err := c.Running(ctx); err == nil && running {
		ui.Info.Printf("%s localnet already running\n", ui.ChainEmoji)
		return nil
	}

	spinner, _ := ui.Spin(fmt.Sprintf("%s Pulling %s...", ui.ChainEmoji, imageRef))
	reader, err := c.docker.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		spinner.Fail("Failed to pull image")
		return fmt.Errorf("pulling %s: %w", imageRef, err)
	}
	_, _ = io.Copy(io.Discard, reader)
	_ = reader.Close()
	spinner.Success(fmt.Sprintf("Pulled %s", imageRef))

	exposed, bindings, err := portBindings()
	if err != nil {
		return err
	}

	// Remove a stopped leftover so the fixed name is free.
	_ = c.docker.ContainerRemove(ctx, ContainerName, container.RemoveOptions{Force: true})

	created, err := c.docker.ContainerCreate(ctx,
		&container.Config{
			Image:        imageRef,
			ExposedPorts: exposed,
			Env:          []string{"CHAIN_ID=" + LocalChainID},
		},
		&container.HostConfig{PortBindings: bindings},
		nil, nil, ContainerName)
	if err != nil {
		return fmt.Errorf("creating localnet container: %w", err)
	}

	if err := c.docker.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("starting localnet container: %w", err)
	}

	ui.Success.Printf("%s localnet up (chain id %s, rpc :26657)\n", ui.ChainEmoji, LocalChainID)
	return nil
}

// Down stops and removes the localnet container. Missing container is fine.
func (c *Client) Down(ctx context.Context) error {
	if err := c.docker.ContainerStop(ctx, ContainerName, container.StopOptions{}); err != nil {
		if client.IsErrNotFound(err) {
			return nil
		}
		return fmt.Errorf("stopping localnet container: %w", err)
	}
	if err := c.docker.ContainerRemove(ctx, ContainerName, container.RemoveOptions{}); err != nil && !client.IsErrNotFound(err) {
		return fmt.Errorf("removing localnet container: %w", err)
	}
	ui.Success.Printf("%s localnet down\n", ui.CleanEmoji)
	return nil
}

// Running reports whether the localnet container exists and is running.
func (c *Client) Running(ctx context.Context) (bool, error) {
	inspect, err := c.docker.ContainerInspect(ctx, ContainerName)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("inspecting localnet container: %w", err)
	}
	return inspect.State != nil && inspect.State.Running, nil
}

// State returns a short human-readable container state.
func (c *Client) State(ctx context.Context) string {
	inspect, err := c.docker.ContainerInspect(ctx, ContainerName)
	if err != nil {
		return "absent"
	}
	if inspect.State == nil {
		return "unknown"
	}
	return inspect.State.Status
}

// BuildImage builds a custom localnet image from a directory holding a
// Dockerfile, e.g. a genesis pre-seeded with the deployer account.
func (c *Client) BuildImage(ctx context.Context, dir, tag string) error {
	buildContext, err := archive.TarWithOptions(dir, &archive.TarOptions{})
	if err != nil {
		return fmt.Errorf("packing build context %s: %w", dir, err)
	}
	defer buildContext.Close()

	resp, err := c.docker.ImageBuild(ctx, buildContext, build.ImageBuildOptions{
		Tags:       []string{tag},
		Dockerfile: "Dockerfile",
		Remove:     true,
	})
	if err != nil {
		return fmt.Errorf("building image %s: %w", tag, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	ui.Success.Printf("%s built image %s\n", ui.ChainEmoji, tag)
	return nil
}

// portBindings maps the chain's standard ports 1:1 onto the host.
func portBindings() (nat.PortSet, nat.PortMap, error) {
	exposed := nat.PortSet{}
	bindings := nat.PortMap{}
	for _, p := range ports {
		port, err := nat.NewPort("tcp", p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid port %s: %w", p, err)
		}
		exposed[port] = struct{}{}
		bindings[port] = []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: p}}
	}
	return exposed, bindings, nil
}
