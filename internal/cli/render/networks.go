package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/wrappedfriendtech/ftdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

// RenderNetworksList renders the configured networks with their chain IDs
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in ftdeploy.toml [networks] or foundry.toml [rpc_endpoints]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := "  "
		if network.Name == result.Current {
			marker = color.New(color.FgGreen, color.Bold).Sprint("* ")
		}

		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "%s❌ %s - Error: %v\n", marker, network.Name, network.Error)
		case network.ChainID == 0:
			fmt.Fprintf(r.out, "%s❔ %s - %s\n", marker, network.Name, network.RPCURL)
		default:
			fmt.Fprintf(r.out, "%s✅ %s - Chain ID: %d\n", marker, network.Name, network.ChainID)
		}
	}

	return nil
}
