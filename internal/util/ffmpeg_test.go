package util

import "testing"

func TestParseProbeOutput(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "audio"},
			{"codec_type": "video", "width": 1280, "height": 720}
		],
		"format": {"duration": "12.500000", "size": "2048", "format_name": "mov,mp4,m4a,3gp,3g2,mj2"}
	}`

	info, err := parseProbeOutput(out, 1)
	if err != nil {
		t.Fatalf("parseProbeOutput: %v", err)
	}
	if info.Duration != 12.5 || info.Width != 1280 || info.Height != 720 {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Format != "mov" || info.Size != 2048 {
		t.Errorf("format/size = %q/%d", info.Format, info.Size)
	}
}

func TestParseProbeOutputFallbackSize(t *testing.T) {
	info, err := parseProbeOutput(`{"streams": [], "format": {}}`, 99)
	if err != nil {
		t.Fatalf("parseProbeOutput: %v", err)
	}
	if info.Size != 99 || info.Format != "unknown" || info.Duration != 0 {
		t.Errorf("unexpected info %+v", info)
	}

	if _, err := parseProbeOutput("not json", 0); err == nil {
		t.Error("expected error for invalid json")
	}
}
