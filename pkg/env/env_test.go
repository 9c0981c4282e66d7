package env

import (
	"testing"
)

func TestEngineSelectionWithEnvVar(t *testing.T) {
	tests := []struct {
		name        string
		envVar      string
		hasDocker   bool
		hasPodman   bool
		expected    string
		expectError bool
	}{
		{
			name:      "Prefers podman when env says podman and both installed",
			envVar:    "podman",
			hasDocker: true,
			hasPodman: true,
			expected:  "podman",
		},
		{
			name:      "Prefers docker when env says docker and both installed",
			envVar:    "docker",
			hasDocker: true,
			hasPodman: true,
			expected:  "docker",
		},
		{
			name:      "Ignores env preference when podman isn't installed",
			envVar:    "podman",
			hasDocker: true,
			hasPodman: false,
			expected:  "docker",
		},
		{
			name:      "Default precedence prefers docker if both installed",
			envVar:    "",
			hasDocker: true,
			hasPodman: true,
			expected:  "docker",
		},
		{
			name:      "Returns podman if only podman installed",
			envVar:    "",
			hasDocker: false,
			hasPodman: true,
			expected:  "podman",
		},
		{
			name:        "Returns error if neither installed",
			envVar:      "",
			hasDocker:   false,
			hasPodman:   false,
			expected:    "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ASTROCTL_ENGINE", tt.envVar)

			res := &CheckResult{
				HasDocker: tt.hasDocker,
				HasPodman: tt.hasPodman,
			}

			engine, err := res.Engine()

			if tt.expectError && err == nil {
				t.Errorf("Expected an error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Did not expect an error, got: %v", err)
			}
			if engine != tt.expected {
				t.Errorf("Expected engine %s, got %s", tt.expected, engine)
			}
		})
	}
}

func TestIsPortAvailable(t *testing.T) {
	// Port 0 asks the kernel for a free port, so this should always succeed.
	if !IsPortAvailable(0) {
		t.Errorf("Expected port 0 to be available")
	}
}
