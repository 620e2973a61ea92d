// Package network streams game snapshots to read-only spectators and records
// them to disk for later playback.
package network

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/1siamBot/bughunt/engine/core"
)

// Frame is one published snapshot. Seq increases by one per publish, so a
// gap means frames were dropped.
type Frame struct {
	Seq      uint64        `msgpack:"seq"`
	Snapshot core.Snapshot `msgpack:"snap"`
}

func EncodeFrame(f Frame) ([]byte, error) {
	data, err := msgpack.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", f.Seq, err)
	}
	return data, nil
}

func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

// Multi fans one snapshot out to several publishers
type Multi []interface{ Publish(core.Snapshot) }

func (m Multi) Publish(s core.Snapshot) {
	for _, p := range m {
		p.Publish(s)
	}
}
