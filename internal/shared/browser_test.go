package shared

import (
	"errors"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tc := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "darwin", want: "open"},
		{goos: "linux", want: "xdg-open"},
		{goos: "windows", want: "rundll32"},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := browserCommand(tt.goos, "https://www.twitch.tv/freecodecamp")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cmd.Args[0] != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cmd.Args[0])
			}
			if cmd.Args[len(cmd.Args)-1] != "https://www.twitch.tv/freecodecamp" {
				t.Errorf("expected URL as last argument, got %v", cmd.Args)
			}
		})
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("rejects non-http schemes", func(t *testing.T) {
		for _, target := range []string{"file:///etc/passwd", "javascript:alert(1)", "::"} {
			if err := OpenBrowser(target); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("OpenBrowser(%q) = %v, want ErrInvalidArgument", target, err)
			}
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		if err := OpenBrowser("https://www.twitch.tv/"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
