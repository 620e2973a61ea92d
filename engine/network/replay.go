package network

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/1siamBot/bughunt/engine/core"
)

// Replay records published snapshots to a file as a stream of msgpack frames.
// Frames is only filled by LoadReplay; a recorder streams straight to disk.
type Replay struct {
	Frames []Frame
	seq    uint64
	file   *os.File
	writer *bufio.Writer
	enc    *msgpack.Encoder
	err    error
}

// NewReplayRecorder creates a replay file for recording
func NewReplayRecorder(path string) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	return &Replay{
		file:   f,
		writer: w,
		enc:    msgpack.NewEncoder(w),
	}, nil
}

// Publish records a snapshot. After the first write error recording stops.
func (r *Replay) Publish(s core.Snapshot) {
	if r.err != nil {
		return
	}
	r.seq++
	f := Frame{Seq: r.seq, Snapshot: s}
	if err := r.enc.Encode(&f); err != nil {
		r.err = fmt.Errorf("record frame %d: %w", f.Seq, err)
		log.Printf("[replay] %v", r.err)
	}
}

// Seq returns the sequence number of the last frame recorded or loaded
func (r *Replay) Seq() uint64 { return r.seq }

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	var errs []error
	if r.writer != nil {
		errs = append(errs, r.writer.Flush())
	}
	if r.file != nil {
		errs = append(errs, r.file.Close())
	}
	errs = append(errs, r.err)
	return errors.Join(errs...)
}

// LoadReplay reads every frame from a replay file
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay %s: %w", path, err)
	}
	defer f.Close()

	replay := &Replay{}
	dec := msgpack.NewDecoder(bufio.NewReader(f))
	for {
		var fr Frame
		if err := dec.Decode(&fr); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return replay, fmt.Errorf("read replay %s after %d frames: %w", path, len(replay.Frames), err)
		}
		replay.Frames = append(replay.Frames, fr)
		replay.seq = fr.Seq
	}
	return replay, nil
}

// FrameAtTick returns the last frame recorded at or before tick
func (r *Replay) FrameAtTick(tick uint64) (Frame, bool) {
	var found Frame
	ok := false
	for _, f := range r.Frames {
		if f.Snapshot.Tick > tick {
			break
		}
		found, ok = f, true
	}
	return found, ok
}
