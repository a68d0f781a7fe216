package youtube

import "testing"

func TestParseJSON3(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "joins segments",
			in:   `{"events":[{"segs":[{"utf8":"hello"},{"utf8":"world"}]},{"segs":[{"utf8":"again"}]}]}`,
			want: "hello world again",
		},
		{
			name: "skips newline-only segments",
			in:   `{"events":[{"segs":[{"utf8":"\n"}]},{"segs":[{"utf8":"text"},{"utf8":" "}]}]}`,
			want: "text",
		},
		{
			name: "events without segs",
			in:   `{"events":[{},{"segs":[{"utf8":"only"}]}]}`,
			want: "only",
		},
		{
			name: "empty events",
			in:   `{"events":[]}`,
			want: "",
		},
		{
			name:    "invalid json",
			in:      `{"events":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJSON3([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseJSON3() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseJSON3() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPickTrack(t *testing.T) {
	en := captionTrack{Ext: "json3", URL: "http://example.com/en"}
	de := captionTrack{Ext: "json3", URL: "http://example.com/de"}

	tracks := map[string][]captionTrack{
		"de": {de},
		"en": {{Ext: "vtt", URL: "http://example.com/en.vtt"}, en},
	}
	got, ok := pickTrack(tracks)
	if !ok || got.URL != en.URL {
		t.Errorf("pickTrack() = %+v, %v; want english json3 track", got, ok)
	}

	// Without english, any json3 track will do.
	got, ok = pickTrack(map[string][]captionTrack{"de": {de}})
	if !ok || got.URL != de.URL {
		t.Errorf("pickTrack() = %+v, %v; want german track", got, ok)
	}

	// No json3 variant at all.
	if _, ok := pickTrack(map[string][]captionTrack{"en": {{Ext: "vtt", URL: "u"}}}); ok {
		t.Error("pickTrack() found a track where none qualifies")
	}
}
