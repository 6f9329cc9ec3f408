package transaction

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/wattx-core/consensus/crypto"
)

func testCoinbase() *Coinbase {
	return &Coinbase{
		Version: 1,
		Inputs: []Input{{
			PrevIndex: 0xffffffff,
			ScriptSig: []byte{0x03, 0x01, 0x02, 0x03},
			Sequence:  0xffffffff,
		}},
		Outputs: []Output{
			{Value: 50_0000_0000, ScriptPubKey: []byte{0x51}},
			{Value: 0, ScriptPubKey: []byte{0x6a, 0x01, 0x02}},
		},
		LockTime: 0,
	}
}

func TestCoinbaseRoundtrip(t *testing.T) {
	tx := testCoinbase()

	buf, err := tx.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != tx.BufferLength() {
		t.Errorf("buffer length %d, serialized %d", tx.BufferLength(), len(buf))
	}

	var tx2 Coinbase
	if err = tx2.FromReader(bytes.NewReader(buf)); err != nil {
		t.Fatal(err)
	}

	buf2, err := tx2.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf, buf2) {
		t.Error("roundtrip mismatch")
	}
	if tx2.TxID() != tx.TxID() {
		t.Error("txid changed across roundtrip")
	}
}

func TestCoinbaseTxID(t *testing.T) {
	tx := testCoinbase()
	id := tx.TxID()

	buf, _ := tx.MarshalBinary()
	if id != crypto.DoubleSHA256(buf) {
		t.Error("txid is not sha256d of the serialization")
	}

	tx.Inputs[0].ScriptSig[0]++
	if tx.TxID() == id {
		t.Error("txid must cover the scriptSig")
	}
}

func TestCoinbaseOversized(t *testing.T) {
	// an input count past the cap must be rejected before allocation
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 1)
	buf = binary.AppendUvarint(buf, maxTxSlots+1)

	var tx Coinbase
	if err := tx.FromReader(bytes.NewReader(buf)); !errors.Is(err, ErrOversizedField) {
		t.Errorf("input count: %v", err)
	}

	// same for a script length
	buf = buf[:0]
	buf = binary.LittleEndian.AppendUint32(buf, 1)
	buf = binary.AppendUvarint(buf, 1)
	var prev [36]byte
	buf = append(buf, prev[:]...)
	buf = binary.AppendUvarint(buf, maxScriptSize+1)

	if err := tx.FromReader(bytes.NewReader(buf)); !errors.Is(err, ErrOversizedField) {
		t.Errorf("script size: %v", err)
	}
}

func TestCoinbaseTruncated(t *testing.T) {
	tx := testCoinbase()
	buf, _ := tx.MarshalBinary()

	var tx2 Coinbase
	for _, cut := range []int{0, 3, 10, len(buf) - 1} {
		if err := tx2.FromReader(bytes.NewReader(buf[:cut])); err == nil {
			t.Errorf("accepted truncation to %d bytes", cut)
		}
	}
}
