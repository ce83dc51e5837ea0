package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
)

type OSLauncher struct{}

func NewOSLauncher() mediaout.Launcher {
	return &OSLauncher{}
}

func (l *OSLauncher) Open(_ context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("external open is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open external target: %w", err)
	}
	return nil
}
