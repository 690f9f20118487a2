package main

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kompox/mashup/adapters/platform"
	"github.com/kompox/mashup/adapters/ui"
	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/internal/metrics"
	"github.com/kompox/mashup/usecase/workspace"
)

// metricsRegistry collects the metrics of this process.
var (
	metricsRegistry = prometheus.NewRegistry()
	recorderOnce    sync.Once
	recorder        metrics.Recorder
)

func metricsRecorder() metrics.Recorder {
	recorderOnce.Do(func() {
		recorder = metrics.NewPrometheusRecorder(metricsRegistry)
	})
	return recorder
}

// writeMetrics exports the registry in the node-exporter textfile format.
func writeMetrics(path string) error {
	return prometheus.WriteToTextfile(path, metricsRegistry)
}

// buildPlatformClient creates the API client from the resolved configuration.
func buildPlatformClient() (*platform.Client, error) {
	if runConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	return platform.New(runConfig.Server.URL,
		platform.WithHTTPClient(&http.Client{Timeout: runConfig.Server.Timeout}),
		platform.WithToken(runConfig.Server.Token),
		platform.WithUserAgent("mashupctl/"+version),
		platform.WithEndpoints(runConfig.Endpoints),
		platform.WithRecorder(metricsRecorder()),
	)
}

// buildWorkspaceUseCase creates the workspace use case with its store, API
// client and session collaborators.
func buildWorkspaceUseCase(cmd *cobra.Command) (*workspace.UseCase, error) {
	if runConfig == nil {
		return nil, errors.New("configuration not loaded")
	}
	if err := runConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	store, err := buildLocalStore(runConfig)
	if err != nil {
		return nil, err
	}
	client, err := buildPlatformClient()
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return &workspace.UseCase{
		Repos:     &workspace.Repos{Workspace: store.cache},
		API:       client,
		Activator: store.session,
		Navigator: &ui.Navigator{Visitor: client, Session: store.session, Cache: store.cache},
		Username:  runConfig.Session.Username,
		LogoutURL: client.LogoutURL(),
		Preferences: func() (domain.PreferencesPanel, error) {
			return ui.NewPreferencesWindow(client, out)
		},
		Recorder: metricsRecorder(),
	}, nil
}
