package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pluginrpc "github.com/SdReum/classmood-cli/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type point struct {
	T     float64 `json:"t"`
	Value float64 `json:"value"`
}

type payload struct {
	Series []point `json:"series"`
	Window int     `json:"window"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "smooth",
		Version:      "1.0.0",
		Capabilities: []string{"transform", "export"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{
			ID:              "moving-average",
			Title:           "Moving average",
			Description:     "Smooths the engagement series with a trailing window",
			Kind:            "transform",
			InputSchemaJSON: `{"series":[{"t":0,"value":0}],"window":3}`,
			TimeoutMS:       2000,
		},
		{
			ID:          "csv-export",
			Title:       "CSV export",
			Description: "Writes the engagement series as a CSV file",
			Kind:        "export",
			TimeoutMS:   2000,
		},
	}}, nil
}

func (s *server) Execute(_ context.Context, in *pluginrpc.ExecuteRequest) (*pluginrpc.ExecuteResponse, error) {
	var input payload
	if strings.TrimSpace(in.InputJSON) != "" {
		if err := json.Unmarshal([]byte(in.InputJSON), &input); err != nil {
			return nil, fmt.Errorf("decode input: %w", err)
		}
	}

	switch in.CommandID {
	case "moving-average":
		window := input.Window
		if window <= 0 {
			window = 3
		}
		smoothed := movingAverage(input.Series, window)
		raw, err := json.Marshal(payload{Series: smoothed, Window: window})
		if err != nil {
			return nil, fmt.Errorf("encode output: %w", err)
		}
		return &pluginrpc.ExecuteResponse{
			Stdout:     fmt.Sprintf("smoothed %d points with window %d", len(smoothed), window),
			OutputJSON: string(raw),
			ExitCode:   0,
		}, nil
	case "csv-export":
		path := filepath.Join(in.Context.Cwd, fmt.Sprintf("engagement-%d.csv", in.Context.FileID))
		if err := writeCSV(path, input.Series); err != nil {
			return &pluginrpc.ExecuteResponse{Stderr: err.Error(), ExitCode: 1}, nil
		}
		raw, _ := json.Marshal(map[string]any{"path": path, "rows": len(input.Series)})
		return &pluginrpc.ExecuteResponse{
			Stdout:     fmt.Sprintf("wrote %d rows to %s", len(input.Series), path),
			OutputJSON: string(raw),
			ExitCode:   0,
		}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

// movingAverage replaces each value with the mean of the trailing
// window ending at it, keeping timestamps untouched.
func movingAverage(series []point, window int) []point {
	out := make([]point, len(series))
	for i := range series {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += series[j].Value
		}
		out[i] = point{T: series[i].T, Value: sum / float64(i-start+1)}
	}
	return out
}

func writeCSV(path string, series []point) error {
	var b strings.Builder
	b.WriteString("t,value\n")
	for _, p := range series {
		fmt.Fprintf(&b, "%g,%g\n", p.T, p.Value)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
