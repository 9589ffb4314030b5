package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetTextWithDefault_EmptyUsesDefault(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("\n"))
	var out bytes.Buffer
	got, err := GetTextWithDefault(in, "Server URL", "http://localhost:8069", &out)
	if err != nil || got != "http://localhost:8069" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "[http://localhost:8069]") {
		t.Fatalf("default not shown in prompt: %q", out.String())
	}
}

func TestGetTextWithDefault_InputWins(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("https://other\n"))
	var out bytes.Buffer
	got, err := GetTextWithDefault(in, "Server URL", "http://localhost:8069", &out)
	if err != nil || got != "https://other" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}
