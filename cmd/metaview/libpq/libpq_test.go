package libpq

import (
	"encoding/binary"
	"testing"

	"github.com/jackc/pgx/v5/pgproto3"
)

func TestEncode(t *testing.T) {
	buffer, err := encode(nil, []pgproto3.Message{
		&pgproto3.RowDescription{Fields: []pgproto3.FieldDescription{
			textField("table_name"),
		}},
		&pgproto3.DataRow{Values: [][]byte{[]byte("jdbc.columns")}},
		&pgproto3.CommandComplete{CommandTag: []byte("SELECT 1")},
		&pgproto3.ReadyForQuery{TxStatus: 'I'},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var tags []byte
	for pos := 0; pos < len(buffer); {
		if pos+5 > len(buffer) {
			t.Fatalf("truncated message header at offset %d", pos)
		}
		tags = append(tags, buffer[pos])
		length := int(binary.BigEndian.Uint32(buffer[pos+1 : pos+5]))
		pos += 1 + length
	}
	got := string(tags)
	want := "TDCZ"
	if got != want {
		t.Errorf("message tags: got %q; want %q", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	buffer, err := encode(nil, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(buffer) != 0 {
		t.Errorf("buffer length: got %d; want 0", len(buffer))
	}
}
