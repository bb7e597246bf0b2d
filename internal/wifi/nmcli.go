package wifi

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// NMCLIScanner lists networks through NetworkManager's nmcli tool.
type NMCLIScanner struct {
	// Path overrides the nmcli binary, mainly for tests.
	Path string
}

func NewNMCLIScanner() *NMCLIScanner {
	return &NMCLIScanner{Path: "nmcli"}
}

func (n *NMCLIScanner) Enabled(ctx context.Context) (bool, error) {
	out, err := n.run(ctx, "radio", "wifi")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "enabled", nil
}

func (n *NMCLIScanner) VisibleNetworks(ctx context.Context) ([]string, error) {
	out, err := n.run(ctx, "-t", "-f", "SSID", "device", "wifi", "list")
	if err != nil {
		return nil, err
	}
	return ParseTerseSSIDs(out), nil
}

func (n *NMCLIScanner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, n.Path, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrUnavailable
		}
		msg := strings.ToLower(string(out))
		if strings.Contains(msg, "not authorized") || strings.Contains(msg, "permission") {
			return "", ErrPermissionDenied
		}
		if strings.Contains(msg, "networkmanager is not running") {
			return "", ErrUnavailable
		}
		return "", fmt.Errorf("nmcli %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// ParseTerseSSIDs parses `nmcli -t -f SSID device wifi list` output: one
// SSID per line with colons and backslashes escaped. Blank lines (hidden
// networks) are dropped; duplicates are kept.
func ParseTerseSSIDs(out string) []string {
	var ssids []string
	for _, line := range strings.Split(out, "\n") {
		ssid := unescapeTerse(strings.TrimRight(line, "\r"))
		if ssid == "" {
			continue
		}
		ssids = append(ssids, ssid)
	}
	return ssids
}

func unescapeTerse(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
