// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeIdentity(t *testing.T, identity string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "identity.txt")
	content := "# toolshed test identity\n" + identity + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSealOpenRoundtrip(t *testing.T) {
	identity, recipient, err := GenerateIdentity()
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	identities, err := LoadIdentities(writeIdentity(t, identity))
	if err != nil {
		t.Fatalf("LoadIdentities: %v", err)
	}

	var sealed bytes.Buffer
	plaintext := []byte("drill-04 checked out by ana")
	if err := Seal(&sealed, plaintext, []string{recipient}); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if bytes.Contains(sealed.Bytes(), plaintext) {
		t.Fatal("ciphertext contains the plaintext")
	}

	opened, err := Open(&sealed, identities)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("Open = %q, want %q", opened, plaintext)
	}
}

func TestOpenWithWrongIdentity(t *testing.T) {
	_, recipient, err := GenerateIdentity()
	if err != nil {
		t.Fatal(err)
	}
	other, _, err := GenerateIdentity()
	if err != nil {
		t.Fatal(err)
	}
	identities, err := LoadIdentities(writeIdentity(t, other))
	if err != nil {
		t.Fatal(err)
	}

	var sealed bytes.Buffer
	if err := Seal(&sealed, []byte("secret"), []string{recipient}); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(bytes.NewReader(sealed.Bytes()), identities); err == nil {
		t.Error("Open succeeded with the wrong identity")
	}
	if _, err := Open(bytes.NewReader(sealed.Bytes()), nil); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("Open without identities = %v, want ErrNoIdentity", err)
	}
}

func TestParseRecipients(t *testing.T) {
	if _, err := ParseRecipients(nil); err == nil {
		t.Error("no recipients accepted")
	}
	if _, err := ParseRecipients([]string{"age1notakey"}); err == nil {
		t.Error("malformed recipient accepted")
	}
}

func TestIsSealed(t *testing.T) {
	if !IsSealed("tools.cbor.zst.age") || IsSealed("tools.cbor.zst") {
		t.Error("IsSealed misclassified a path")
	}
}
