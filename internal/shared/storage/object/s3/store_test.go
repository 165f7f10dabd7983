package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "client/chat.pdf", want: "client/chat.pdf"},
		{name: "simple prefix", prefix: "root", key: "client/chat.pdf", want: "root/client/chat.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "client/chat.pdf", want: "root/client/chat.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/client/chat.pdf", want: "root/client/chat.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "client/chat.pdf", want: "root/sub/client/chat.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
