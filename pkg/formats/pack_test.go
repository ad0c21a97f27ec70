package formats

import (
	"errors"
	"testing"
)

func TestPack_RoundTrip(t *testing.T) {
	want := testFrames(t)
	codec := NewPackCodec()

	data, err := codec.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	assertSameContent(t, want, got)
}

func TestPack_UncompressedRoundTrip(t *testing.T) {
	want := testFrames(t)
	codec := PackCodec{Compression: packCompNone}

	data, err := codec.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := codec.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	assertSameContent(t, want, got)
}

func TestPack_InvalidMagic(t *testing.T) {
	codec := NewPackCodec()
	data, _ := codec.Marshal(testFrames(t))
	data[0] = 'X'
	if _, err := codec.Unmarshal(data); !errors.Is(err, ErrPackMagic) {
		t.Errorf("expected ErrPackMagic, got %v", err)
	}
}

func TestPack_NewerVersionFails(t *testing.T) {
	codec := NewPackCodec()
	data, _ := codec.Marshal(testFrames(t))
	data[4] = packVersion + 1
	if _, err := codec.Unmarshal(data); !errors.Is(err, ErrPackVersion) {
		t.Errorf("expected ErrPackVersion, got %v", err)
	}
}

func TestPack_ChecksumDetectsCorruption(t *testing.T) {
	codec := PackCodec{Compression: packCompNone}
	data, _ := codec.Marshal(testFrames(t))
	// Flip a payload byte; the digest must catch it before decoding.
	data[len(data)-1] ^= 0x01
	if _, err := codec.Unmarshal(data); !errors.Is(err, ErrPackChecksum) {
		t.Errorf("expected ErrPackChecksum, got %v", err)
	}
}

func TestPack_Truncated(t *testing.T) {
	codec := NewPackCodec()
	data, _ := codec.Marshal(testFrames(t))
	for _, n := range []int{0, 4, 17, len(data) - 3} {
		if _, err := codec.Unmarshal(data[:n]); !errors.Is(err, ErrPackTruncated) {
			t.Errorf("truncation at %d: expected ErrPackTruncated, got %v", n, err)
		}
	}
}

func TestPack_UnknownCompression(t *testing.T) {
	codec := PackCodec{Compression: 7}
	if _, err := codec.Marshal(testFrames(t)); !errors.Is(err, ErrPackCompression) {
		t.Errorf("expected ErrPackCompression, got %v", err)
	}
}
