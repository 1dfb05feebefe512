package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":          "9090",
		"BAD_INT":       "nine",
		"EMPTY":         "",
		"SEED":          "false",
		"ORIGINS":       " https://a.example , ,https://b.example",
		"ONLY_COMMAS":   ", ,",
		"SPACED_NUMBER": " 42 ",
	}

	if got := GetString(c, "PORT", "8080"); got != "9090" {
		t.Fatalf("GetString = %q", got)
	}
	if got := GetString(c, "EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("empty value should fall back, got %q", got)
	}
	if got := GetString(nil, "PORT", "8080"); got != "8080" {
		t.Fatalf("nil config should fall back, got %q", got)
	}
	if got := GetInt(c, "PORT", 1); got != 9090 {
		t.Fatalf("GetInt = %d", got)
	}
	if got := GetInt(c, "BAD_INT", 7); got != 7 {
		t.Fatalf("unparsable int should fall back, got %d", got)
	}
	if got := GetInt(c, "SPACED_NUMBER", 0); got != 42 {
		t.Fatalf("GetInt with spaces = %d", got)
	}
	if got := GetBool(c, "SEED", true); got {
		t.Fatal("GetBool should read false")
	}
	if got := GetBool(c, "MISSING", true); !got {
		t.Fatal("missing bool should fall back to true")
	}

	wantOrigins := []string{"https://a.example", "https://b.example"}
	if got := GetList(c, "ORIGINS", nil); !reflect.DeepEqual(got, wantOrigins) {
		t.Fatalf("GetList = %v", got)
	}
	if got := GetList(c, "ONLY_COMMAS", []string{"*"}); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("GetList fallback = %v", got)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "BLOG_TEST_FROM_FILE=file\nBLOG_TEST_OVERRIDDEN=file\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("BLOG_TEST_OVERRIDDEN", "env")
	t.Setenv("BLOG_TEST_FROM_FILE", "")
	os.Unsetenv("BLOG_TEST_FROM_FILE")

	c := Load(envFile)
	t.Cleanup(func() { os.Unsetenv("BLOG_TEST_FROM_FILE") })

	if got := c["BLOG_TEST_FROM_FILE"]; got != "file" {
		t.Fatalf("value from .env = %q", got)
	}
	if got := c["BLOG_TEST_OVERRIDDEN"]; got != "env" {
		t.Fatalf("environment should win, got %q", got)
	}

	// a missing file is not fatal
	if c := Load(filepath.Join(dir, "missing.env")); c == nil {
		t.Fatal("expected a config map even without a .env file")
	}
}

func TestParameterKey(t *testing.T) {
	tests := []struct {
		path, name, want string
	}{
		{"/blog", "/blog/upload/bucket", "UPLOAD_BUCKET"},
		{"/blog/", "/blog/PORT", "PORT"},
		{"/blog", "/blog/log-level", "LOG_LEVEL"},
		{"/blog", "/blog", ""},
	}
	for _, tt := range tests {
		if got := parameterKey(tt.path, tt.name); got != tt.want {
			t.Fatalf("parameterKey(%q, %q) = %q, want %q", tt.path, tt.name, got, tt.want)
		}
	}
}

type fakeSSM struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestOverlaySSM(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{
			{Name: aws.String("/blog/upload/bucket"), Value: aws.String("images")},
			{Name: aws.String("/blog/PORT"), Value: aws.String("7000")},
		},
		{
			{Name: aws.String("/blog/log-level"), Value: aws.String("debug")},
		},
	}}

	c := map[string]string{"PORT": "8080"}
	applied, err := OverlaySSM(context.Background(), c, client, "/blog")
	if err != nil {
		t.Fatalf("OverlaySSM: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	if client.calls != 2 {
		t.Fatalf("expected both pages to be read, got %d calls", client.calls)
	}

	want := map[string]string{"PORT": "8080", "UPLOAD_BUCKET": "images", "LOG_LEVEL": "debug"}
	if !reflect.DeepEqual(c, want) {
		t.Fatalf("config = %v, want %v", c, want)
	}
}

func TestOverlaySSMErrors(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}
	if _, err := OverlaySSM(context.Background(), map[string]string{}, client, "/blog"); err == nil {
		t.Fatal("expected error from failing client")
	}

	applied, err := OverlaySSM(context.Background(), map[string]string{}, client, "")
	if err != nil || applied != 0 {
		t.Fatalf("empty path should be a no-op, got %d, %v", applied, err)
	}
}
