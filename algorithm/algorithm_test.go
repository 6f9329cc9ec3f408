package algorithm

import (
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(SHA256D)
	if info.Name != "sha256d" {
		t.Errorf("expected sha256d, got %s", info.Name)
	}
	if !info.Enabled {
		t.Error("sha256d should be enabled")
	}

	info = GetInfo(GHOSTRIDER)
	if info.Enabled {
		t.Error("ghostrider is reserved and must be disabled")
	}

	info = GetInfo(INVALID)
	if info.Enabled {
		t.Error("invalid must never be enabled")
	}
	if info.Name != "invalid" {
		t.Errorf("expected invalid, got %s", info.Name)
	}

	// arbitrary unknown bytes resolve to the invalid record, not a panic
	info = GetInfo(Algorithm(0x42))
	if info.Algo != INVALID {
		t.Errorf("expected INVALID for unknown byte, got %s", info.Name)
	}
}

func TestByName(t *testing.T) {
	for _, tc := range []struct {
		name string
		algo Algorithm
	}{
		{"sha256d", SHA256D},
		{"SHA256D", SHA256D},
		{"sha-256", SHA256D},
		{"scrypt", SCRYPT},
		{"ltc", SCRYPT},
		{"ethash", ETHASH},
		{"eth", ETHASH},
		{"randomx", RANDOMX},
		{"monero", RANDOMX},
		{"rx", RANDOMX},
		{"equihash", EQUIHASH},
		{"zhash", EQUIHASH},
		{"zcash", EQUIHASH},
		{"x11", X11},
		{"dash", X11},
		{"kheavyhash", KHEAVYHASH},
		{"kaspa", KHEAVYHASH},
		{"heavyhash", KHEAVYHASH},
		{"ghostrider", GHOSTRIDER},
		{"nonexistent", INVALID},
		{"", INVALID},
	} {
		if got := ByName(tc.name); got != tc.algo {
			t.Errorf("ByName(%q) = %s, expected %s", tc.name, got, tc.algo)
		}
	}
}

func TestEnabled(t *testing.T) {
	enabled := Enabled()

	for _, algo := range enabled {
		if algo == INVALID {
			t.Error("invalid listed as enabled")
		}
		if algo == GHOSTRIDER {
			t.Error("ghostrider listed as enabled")
		}
	}

	if len(enabled) != 7 {
		t.Errorf("expected 7 enabled algorithms, got %d", len(enabled))
	}
}

func TestVersionRoundTrip(t *testing.T) {
	for _, algo := range []Algorithm{SHA256D, SCRYPT, ETHASH, RANDOMX, EQUIHASH, X11, GHOSTRIDER, KHEAVYHASH} {
		for _, base := range []int32{0, 1, 0x7f, 0x20000000} {
			v := SetVersion(base, algo)
			if got := FromVersion(v); got != algo {
				t.Errorf("FromVersion(SetVersion(%#x, %s)) = %s", base, algo, got)
			}
			// bits outside 8-15 unchanged
			if v&^algorithmMask != base&^algorithmMask {
				t.Errorf("SetVersion(%#x, %s) clobbered bits outside the algorithm byte: %#x", base, algo, v)
			}
		}
	}
}

func TestVersionUnknownByteFallsBackToSHA256D(t *testing.T) {
	for _, b := range []int32{0x08, 0x42, 0xFE} {
		v := b << algorithmShift
		if got := FromVersion(v); got != SHA256D {
			t.Errorf("FromVersion with algorithm byte %#x = %s, expected sha256d", b, got)
		}
	}
}

func TestVersionReservedByteDecodesToInvalid(t *testing.T) {
	v := SetVersion(1, INVALID)
	got := FromVersion(v)
	if got != INVALID {
		t.Fatalf("FromVersion with the reserved byte = %s, expected invalid", got)
	}
	if IsEnabled(got) {
		t.Error("the reserved byte must never decode to an enabled algorithm")
	}
}

func TestAuxPowFlag(t *testing.T) {
	v := SetVersion(1, RANDOMX)
	if HasAuxPow(v) {
		t.Error("flag set on plain version")
	}

	v = SetAuxPow(v, true)
	if !HasAuxPow(v) {
		t.Error("flag not set")
	}
	if FromVersion(v) != RANDOMX {
		t.Error("setting the aux flag changed the algorithm byte")
	}

	v = SetAuxPow(v, false)
	if HasAuxPow(v) {
		t.Error("flag not cleared")
	}
}

func TestDecodeVersion(t *testing.T) {
	v := SetAuxPow(SetVersion(0x2000007f, KHEAVYHASH), true)

	d := DecodeVersion(v)
	if d.BaseBits != 0x7f {
		t.Errorf("base bits %#x", d.BaseBits)
	}
	if d.Algo != KHEAVYHASH {
		t.Errorf("algo %s", d.Algo)
	}
	if !d.HasAuxPow {
		t.Error("aux flag lost")
	}
}
