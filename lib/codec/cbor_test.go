// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"

	"github.com/warden-project/warden/lib/schema"
)

func sampleSnapshot() schema.EngineSnapshot {
	return schema.EngineSnapshot{
		Marker:            "warden.insecure.plugin",
		SyntheticLocation: "file:///any-old-plugin",
		Delta: []schema.PermissionSpec{
			{Type: "file", Target: "/var/**", Actions: []string{"write"}},
			{Type: "net", Target: "localhost:9200", Actions: []string{"connect"}},
		},
		Excluded:   []string{"file:///generated/script", "file:///opt/warden/core"},
		Heuristics: []string{"test-classes"},
	}
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleSnapshot()

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded schema.EngineSnapshot
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Marker != original.Marker {
		t.Errorf("Marker = %q, want %q", decoded.Marker, original.Marker)
	}
	if len(decoded.Delta) != len(original.Delta) {
		t.Fatalf("Delta length = %d, want %d", len(decoded.Delta), len(original.Delta))
	}
	for i := range original.Delta {
		if decoded.Delta[i].Type != original.Delta[i].Type ||
			decoded.Delta[i].Target != original.Delta[i].Target {
			t.Errorf("Delta[%d] = %+v, want %+v", i, decoded.Delta[i], original.Delta[i])
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	snapshot := sampleSnapshot()

	first, err := Marshal(snapshot)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(snapshot)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	specs := []schema.PermissionSpec{
		{Type: "file", Target: "/tmp/**", Actions: []string{"read"}},
		{Type: "runtime", Target: "env", Actions: []string{"read", "write"}},
		{Type: "net", Target: "**"},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, spec := range specs {
		if err := encoder.Encode(spec); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range specs {
		var got schema.PermissionSpec
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode spec %d: %v", i, err)
		}
		if got.Type != want.Type || got.Target != want.Target {
			t.Errorf("spec %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestOmitemptyRespected(t *testing.T) {
	// A zero-value omitempty field should not appear in output.
	withTarget := schema.PermissionSpec{Type: "file", Target: "/tmp", Actions: []string{"read"}}
	withoutTarget := schema.PermissionSpec{Type: "file", Actions: []string{"read"}}

	dataWith, err := Marshal(withTarget)
	if err != nil {
		t.Fatal(err)
	}
	dataWithout, err := Marshal(withoutTarget)
	if err != nil {
		t.Fatal(err)
	}

	if len(dataWithout) >= len(dataWith) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(dataWithout), len(dataWith))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var snapshot schema.EngineSnapshot
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &snapshot)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func BenchmarkMarshal(b *testing.B) {
	snapshot := sampleSnapshot()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Marshal(snapshot)
	}
}
