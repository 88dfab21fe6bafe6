package signature_test

import (
	"encoding/json"
	"testing"

	"github.com/ardanlabs/hashchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Digest(t *testing.T) {
	type table struct {
		name string
		data []byte
		hex  string
	}

	tt := []table{
		{
			name: "empty",
			data: nil,
			hex:  "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "abc",
			data: []byte("abc"),
			hex:  "0xba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	t.Log("Given the need to hash data with SHA-256.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s data.", testID, tst.name)
			{
				f := func(t *testing.T) {
					got := signature.Digest(tst.data).Hex()
					if got != tst.hex {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.hex)
						t.Fatalf("\t%s\tTest %d:\tShould get the standard digest.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the standard digest.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_LeadingZeroBits(t *testing.T) {
	type table struct {
		name   string
		prefix []byte
		zeros  uint
	}

	tt := []table{
		{name: "high-bit", prefix: []byte{0x80}, zeros: 0},
		{name: "one-bit", prefix: []byte{0x40}, zeros: 1},
		{name: "four-bits", prefix: []byte{0x0f}, zeros: 4},
		{name: "seven-bits", prefix: []byte{0x01}, zeros: 7},
		{name: "one-byte", prefix: []byte{0x00, 0xff}, zeros: 8},
		{name: "stop-at-first", prefix: []byte{0x00, 0x10, 0x00, 0x00}, zeros: 11},
		{name: "all-zero", prefix: nil, zeros: 256},
	}

	t.Log("Given the need to count leading zero bits in a hash.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s prefix.", testID, tst.name)
			{
				f := func(t *testing.T) {
					var h signature.Hash
					copy(h[:], tst.prefix)

					if tst.name != "all-zero" {
						h[signature.HashLength-1] = 0xff
					}

					got := signature.LeadingZeroBits(h)
					if got != tst.zeros {
						t.Logf("\t%s\tTest %d:\tgot: %d", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %d", failed, testID, tst.zeros)
						t.Fatalf("\t%s\tTest %d:\tShould count the leading zero bits.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould count the leading zero bits.", success, testID)

					if !signature.IsHashSolved(tst.zeros, h) {
						t.Fatalf("\t%s\tTest %d:\tShould solve a difficulty equal to the count.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould solve a difficulty equal to the count.", success, testID)

					if signature.IsHashSolved(tst.zeros+1, h) {
						t.Fatalf("\t%s\tTest %d:\tShould not solve a difficulty above the count.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not solve a difficulty above the count.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_HashText(t *testing.T) {
	t.Log("Given the need to carry hashes as hex text.")
	{
		t.Logf("\tTest 0:\tWhen marshaling and unmarshaling a hash.")
		{
			h := signature.Digest([]byte("abc"))

			data, err := json.Marshal(h)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal a hash: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to marshal a hash.", success)

			if exp := `"` + h.Hex() + `"`; string(data) != exp {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, data)
				t.Logf("\t%s\tTest 0:\texp: %s", failed, exp)
				t.Fatalf("\t%s\tTest 0:\tShould marshal to the hex form.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould marshal to the hex form.", success)

			var got signature.Hash
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to unmarshal a hash: %v", failed, err)
			}
			if got != h {
				t.Fatalf("\t%s\tTest 0:\tShould get back the same hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get back the same hash.", success)
		}

		t.Logf("\tTest 1:\tWhen unmarshaling a hash of the wrong size.")
		{
			var got signature.Hash
			if err := json.Unmarshal([]byte(`"0x0011"`), &got); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a short hash.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a short hash.", success)

			if err := json.Unmarshal([]byte(`"00"`), &got); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a hash without the 0x prefix.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a hash without the 0x prefix.", success)
		}
	}
}
