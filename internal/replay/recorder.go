// Package replay fingerprints a session's event stream so two runs can be
// compared without keeping their logs.
package replay

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/wavecrawl/internal/model"
)

// Digest is a BLAKE2b-256 fingerprint of an event stream.
type Digest [blake2b.Size256]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Recorder folds turns of battle events into a running digest.
// Each turn is written as its number, its event count and the JSON form of
// every event, so both order and turn boundaries change the result.
//
// Not safe for concurrent use.
type Recorder struct {
	h      hash.Hash
	buf    []byte
	turns  int
	events int
}

// NewRecorder returns a recorder with an empty stream.
func NewRecorder() *Recorder {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only a key longer than 64 bytes fails
		panic(fmt.Sprintf("blake2b: %v", err))
	}
	return &Recorder{h: h}
}

// Record appends one turn of events to the stream.
func (r *Recorder) Record(turn int32, events []model.BattleEvent) error {
	r.buf = binary.BigEndian.AppendUint32(r.buf[:0], uint32(turn))
	r.buf = binary.BigEndian.AppendUint32(r.buf, uint32(len(events)))
	r.h.Write(r.buf)

	for i := range events {
		raw, err := json.Marshal(&events[i])
		if err != nil {
			return fmt.Errorf("encoding event %d of turn %d: %w", i, turn, err)
		}
		r.buf = binary.BigEndian.AppendUint32(r.buf[:0], uint32(len(raw)))
		r.h.Write(r.buf)
		r.h.Write(raw)
	}

	r.turns++
	r.events += len(events)
	return nil
}

// Sum returns the digest of everything recorded so far. Recording may
// continue afterwards.
func (r *Recorder) Sum() Digest {
	var d Digest
	r.h.Sum(d[:0])
	return d
}

// Turns returns how many turns were recorded.
func (r *Recorder) Turns() int { return r.turns }

// Events returns how many events were recorded.
func (r *Recorder) Events() int { return r.events }
