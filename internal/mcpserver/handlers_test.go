package mcpserver

import (
	"testing"

	"github.com/cppintel/mcp-cpp-bridge/internal/build"
)

func TestDirectoryPayloadsMapsFieldsAndPrefixesIssues(t *testing.T) {
	dirs := []build.Directory{
		{
			Path:                "/proj/build",
			BuildType:           build.BuildTypeDebug,
			CompileCommandsPath: "/proj/build/compile_commands.json",
			Generator:           "Ninja",
			Issues:              []string{"stale cache"},
		},
		{
			Path:      "/proj/build2",
			BuildType: build.BuildTypeUnknown,
			Issues:    nil,
		},
	}

	payloads, issues := directoryPayloads(dirs)
	if len(payloads) != 2 {
		t.Fatalf("len(payloads) = %d, want 2", len(payloads))
	}
	if payloads[0].Path != "/proj/build" || payloads[0].BuildType != "Debug" || !payloads[0].HasCompileCommands {
		t.Fatalf("payloads[0] = %+v, unexpected", payloads[0])
	}
	if payloads[1].HasCompileCommands {
		t.Fatalf("payloads[1].HasCompileCommands = true, want false (no compile_commands.json)")
	}
	if len(issues) != 1 || issues[0] != "/proj/build: stale cache" {
		t.Fatalf("issues = %v, want [\"/proj/build: stale cache\"]", issues)
	}
}

func TestDirectoryPayloadsEmptyInputProducesEmptyOutput(t *testing.T) {
	payloads, issues := directoryPayloads(nil)
	if len(payloads) != 0 {
		t.Fatalf("len(payloads) = %d, want 0", len(payloads))
	}
	if issues != nil {
		t.Fatalf("issues = %v, want nil", issues)
	}
}
