// Package client provides command line access to the rpg-sheets gRPC services
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/handlers/sheets/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the rpg-sheets server",
	Long:  `Client commands manage character sheets and run battles against a running server.`,
}

func init() {
	// Add persistent flags for all client commands
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(charactersCmd)
	ClientCmd.AddCommand(battleCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createCharacterClient creates a character service client
func createCharacterClient() (v1alpha1.CharacterServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewCharacterServiceClient(conn), cleanup, nil
}

// createBattleClient creates a battle service client
func createBattleClient() (v1alpha1.BattleServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewBattleServiceClient(conn), cleanup, nil
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// describeError turns a status error into the server's message, with any
// field errors listed after it
func describeError(action string, err error) error {
	converted := errors.FromGRPCError(err)
	msg := errors.GetMessage(converted)

	var details []string
	for k, v := range errors.GetMeta(converted) {
		details = append(details, fmt.Sprintf("%s=%v", k, v))
	}
	if len(details) == 0 {
		return fmt.Errorf("%s: %s", action, msg)
	}
	return fmt.Errorf("%s: %s %v", action, msg, details)
}
