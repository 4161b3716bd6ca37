package hub_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/projecthub/projecthub/pkg/hubsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for hub service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "projecthub-hub-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminName      = "Administrator"
	adminEmail     = "admin@example.com"
	adminPassword  = "Admin123!secret"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Hub Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Hub Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/hub/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupHubContainer starts the hub service in a container and returns the
// base URL. Rate limits are relaxed so rapid test requests don't trip them.
func setupHubContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"HUB_BOOTSTRAP_TOKEN":   bootstrapToken,
			"HUB_DATABASE_FILE":     "/tmp/hub.db",
			"HUB_ISSUER":            "projecthub-test",
			"HUB_FRONTEND_BASE_URL": "http://localhost:3000",
			"ENV":                   "test",
			"LOG_LEVEL":             "info",
			"LOG_FORMAT":            "json",
			// Relax rate limits so rapid test requests don't hit the
			// strict production defaults.
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// setupHubContainerWithDefaultRateLimits starts the hub service with DEFAULT
// rate limits, specifically for testing that rate limiting works.
func setupHubContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"HUB_BOOTSTRAP_TOKEN":   bootstrapToken,
			"HUB_DATABASE_FILE":     "/tmp/hub.db",
			"HUB_ISSUER":            "projecthub-test",
			"HUB_FRONTEND_BASE_URL": "http://localhost:3000",
			"ENV":                   "test",
			"LOG_LEVEL":             "info",
			"LOG_FORMAT":            "json",
			// NOTE: No rate limit overrides - production defaults on purpose
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// bootstrapAdmin creates the first admin account and returns an
// authenticated session for it.
func bootstrapAdmin(t *testing.T, client *hubsdk.SDKClient) *hubsdk.Session {
	t.Helper()

	resp, err := client.Bootstrap(t.Context(), hubsdk.BootstrapRequest{
		SetupToken: bootstrapToken,
		Name:       adminName,
		Email:      adminEmail,
		Password:   adminPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token, "bootstrap should return a session token")
	require.Equal(t, "admin", resp.User.Role)

	return client.WithToken(resp.Token)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *hubsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertAPIError verifies an error is a typed APIError carrying the given
// code.
func assertAPIError(t *testing.T, err error, code string, context string) {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *hubsdk.APIError
	require.ErrorAs(t, err, &apiErr, context)
	require.Equal(t, code, apiErr.Code, context)
}
