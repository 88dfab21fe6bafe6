package chain

import (
	"errors"
	"math"
	"testing"

	"github.com/ardanlabs/hashchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_PerformPOWRange(t *testing.T) {
	t.Log("Given the need to search a bounded nonce range.")
	{
		t.Logf("\tTest 0:\tWhen no nonce in the range can solve the puzzle.")
		{
			b := Block{Payload: []byte("unsolvable")}

			err := b.performPOW(maxDifficulty, 0, 15, t.Logf)
			if !errors.Is(err, ErrNonceSpaceExhausted) {
				t.Fatalf("\t%s\tTest 0:\tShould report the nonce space exhausted, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould report the nonce space exhausted.", success)
		}

		t.Logf("\tTest 1:\tWhen the range ends at the largest nonce.")
		{
			b := Block{Payload: []byte("top of the range")}

			err := b.performPOW(maxDifficulty, math.MaxUint32-3, math.MaxUint32, t.Logf)
			if !errors.Is(err, ErrNonceSpaceExhausted) {
				t.Fatalf("\t%s\tTest 1:\tShould stop after the largest nonce, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould stop after the largest nonce.", success)
		}

		t.Logf("\tTest 2:\tWhen the range starts past zero.")
		{
			b := Block{Payload: []byte("offset")}

			const first = 1000
			if err := b.performPOW(0, first, first+10, t.Logf); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould solve at difficulty 0: %v", failed, err)
			}
			if b.Nonce != first {
				t.Fatalf("\t%s\tTest 2:\tShould start at the first nonce, got %d.", failed, b.Nonce)
			}
			t.Logf("\t%s\tTest 2:\tShould start at the first nonce.", success)

			if !signature.IsHashSolved(0, b.Hash()) {
				t.Fatalf("\t%s\tTest 2:\tShould leave a solved block.", failed)
			}
		}
	}
}
