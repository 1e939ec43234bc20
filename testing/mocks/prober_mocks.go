package mocks

import (
	"context"

	"github.com/sgaunet/auto-merger/pkg/git"
)

// Prober is a mock remote prober. URLs listed in Errors fail.
type Prober struct {
	recorder

	Info   git.RemoteInfo
	Errors map[string]error
}

// NewProber creates a new mock prober answering with default branch main.
func NewProber() *Prober {
	return &Prober{
		Info:   git.RemoteInfo{DefaultBranch: "main"},
		Errors: make(map[string]error),
	}
}

// Probe implements platform.RemoteProber.
func (m *Prober) Probe(_ context.Context, url string) (git.RemoteInfo, error) {
	m.trackCall("Probe", map[string]any{"url": url})
	if err, ok := m.Errors[url]; ok {
		return git.RemoteInfo{}, err
	}
	info := m.Info
	info.URL = url
	return info, nil
}
