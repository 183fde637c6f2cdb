package toolchain

import (
	"context"
	"fmt"
)

// MockToolchain is a test double recording every invocation in order.
//
// It satisfies the pipeline's Toolchain interface. Set FailOn to a call name
// ("clean", "build", "buildfs", "upload", "uploadfs", "monitor") to make that
// call return an error.
type MockToolchain struct {
	// Calls records invocation names in execution order.
	Calls []string

	// Envs records the environment passed to each non-monitor call.
	Envs []string

	// MonitorBaud records the baud rate of the last Monitor call.
	MonitorBaud int

	// FailOn names the call that should return an error.
	FailOn string
}

func (m *MockToolchain) record(name, env string) error {
	m.Calls = append(m.Calls, name)
	if env != "" {
		m.Envs = append(m.Envs, env)
	}
	if m.FailOn == name {
		return fmt.Errorf("%s returned exit status 1", name)
	}
	return nil
}

func (m *MockToolchain) Clean(ctx context.Context, env string) error {
	return m.record("clean", env)
}

func (m *MockToolchain) Build(ctx context.Context, env string) error {
	return m.record("build", env)
}

func (m *MockToolchain) BuildFilesystem(ctx context.Context, env string) error {
	return m.record("buildfs", env)
}

func (m *MockToolchain) Upload(ctx context.Context, env string) error {
	return m.record("upload", env)
}

func (m *MockToolchain) UploadFilesystem(ctx context.Context, env string) error {
	return m.record("uploadfs", env)
}

func (m *MockToolchain) Monitor(ctx context.Context, baud int) error {
	m.MonitorBaud = baud
	return m.record("monitor", "")
}
