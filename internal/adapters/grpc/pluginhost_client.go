// Package grpc provides the out-of-process implementation of
// domain/pluginhost.Host, the remote half of spec.md §6's plugin
// contract. It depends on a generated stub package
// (github.com/cyclus-go/cyclus/pkg/proto/pluginhost) produced by
// protoc/buf generate from pkg/proto/pluginhost/pluginhost.proto; that
// stub is not checked into source, mirroring the teacher's own
// pkg/proto/routing gap.
package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/cyclus-go/cyclus/internal/domain/pluginhost"
	pb "github.com/cyclus-go/cyclus/pkg/proto/pluginhost"
)

// PluginHostClient implements pluginhost.Host over gRPC against an
// externally hosted facility process.
type PluginHostClient struct {
	conn   *grpc.ClientConn
	client pb.PluginHostServiceClient
}

// NewPluginHostClient dials address and returns a ready client.
func NewPluginHostClient(address string, dialTimeout time.Duration) (*PluginHostClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to plugin host at %s: %w", address, err)
	}

	return &PluginHostClient{
		conn:   conn,
		client: pb.NewPluginHostServiceClient(conn),
	}, nil
}

// Close tears down the underlying connection.
func (c *PluginHostClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Construct implements pluginhost.Host.
func (c *PluginHostClient) Construct(ctx context.Context, spec pluginhost.Spec) (pluginhost.Handle, error) {
	resp, err := c.client.Construct(ctx, &pb.ConstructRequest{
		Kind:       spec.Kind,
		Name:       spec.Name,
		Parameters: spec.Parameters,
	})
	if err != nil {
		return pluginhost.Handle{}, fmt.Errorf("gRPC Construct failed: %w", err)
	}
	if !resp.Success {
		return pluginhost.Handle{}, fmt.Errorf("plugin host construct failed: %s", errorMessage(resp.ErrorMessage))
	}
	return pluginhost.Handle{ID: resp.HandleId}, nil
}

// Init implements pluginhost.Host.
func (c *PluginHostClient) Init(ctx context.Context, handle pluginhost.Handle) error {
	resp, err := c.client.Init(ctx, &pb.InitRequest{HandleId: handle.ID})
	if err != nil {
		return fmt.Errorf("gRPC Init failed: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("plugin host init failed: %s", errorMessage(resp.ErrorMessage))
	}
	return nil
}

// Destruct implements pluginhost.Host.
func (c *PluginHostClient) Destruct(ctx context.Context, handle pluginhost.Handle) error {
	resp, err := c.client.Destruct(ctx, &pb.DestructRequest{HandleId: handle.ID})
	if err != nil {
		return fmt.Errorf("gRPC Destruct failed: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("plugin host destruct failed: %s", errorMessage(resp.ErrorMessage))
	}
	return nil
}

func errorMessage(msg *string) string {
	if msg == nil {
		return "unknown error"
	}
	return *msg
}
