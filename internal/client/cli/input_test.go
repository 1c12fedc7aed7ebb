package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("soc-alpha\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Operator id?", &out)
	if err != nil || got != "soc-alpha" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Operator id?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextTrimsWhitespace(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  soc-alpha  \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Operator id?", &out)
	if err != nil || got != "soc-alpha" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPasskey_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPasskey(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPasskey_Success(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("hunter2"), nil
	}
	var out bytes.Buffer
	pw, err := GetPasskey(&out)
	if err != nil {
		t.Fatal(err)
	}
	if string(pw) != "hunter2" {
		t.Fatalf("got %q", string(pw))
	}
}
