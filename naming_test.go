package haveup_test

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aither64/haveup"
)

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestTargetName_Plain(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "cat.png", want: "cat.png"},
		{path: "/tmp/cat.png", want: "cat.png"},
		{path: "a/b/report.final.tar.gz", want: "report.final.tar.gz"},
		{path: "./README", want: "README"},
		{path: "/home/user/.bashrc", want: ".bashrc"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, haveup.TargetName(tt.path, false))
		})
	}
}

func TestTargetName_Hashed(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "known vector without suffix",
			path: "dir/abc",
			want: "a9993e364706816aba3e25717850c26c9cd0d89d",
		},
		{
			name: "suffix after last dot",
			path: "a/b/report.final.tar.gz",
			want: sha1Hex("report.final.tar.gz") + ".gz",
		},
		{
			name: "hidden file keeps whole name as suffix",
			path: "/home/user/.bashrc",
			want: sha1Hex(".bashrc") + ".bashrc",
		},
		{
			name: "trailing dot",
			path: "notes.",
			want: sha1Hex("notes.") + ".",
		},
		{
			name: "only basename is hashed",
			path: "/some/where/else/cat.png",
			want: sha1Hex("cat.png") + ".png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haveup.TargetName(tt.path, true)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetName_HashedShape(t *testing.T) {
	got := haveup.TargetName("a/b/report.final.tar.gz", true)

	assert.Len(t, got, 40+len(".gz"))
	assert.Regexp(t, `^[0-9a-f]{40}\.gz$`, got)
}

func TestTargetName_Idempotent(t *testing.T) {
	for _, hash := range []bool{false, true} {
		first := haveup.TargetName("x/y/photo.jpeg", hash)
		second := haveup.TargetName("x/y/photo.jpeg", hash)
		assert.Equal(t, first, second)
	}
}

func TestTargetName_SameBasenameSameHash(t *testing.T) {
	assert.Equal(t,
		haveup.TargetName("/one/cat.png", true),
		haveup.TargetName("/two/cat.png", true),
	)
}
